package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrAdminCredentialsMissing error if the admin credential pair is not configured.
	ErrAdminCredentialsMissing = errors.New("toml config admin.username and admin.password can not be empty")

	// ErrUnknownDBEngine error if db.engine is not one of sqlite, mysql, postgres.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be sqlite, mysql or postgres")

	// ErrUnknownStorageBackend error if storage.backend is not db or file.
	ErrUnknownStorageBackend = errors.New("toml config storage.backend must be db or file")
)
