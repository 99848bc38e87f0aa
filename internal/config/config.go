// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

// Storage backends and database engines accepted in the configuration.
const (
	StorageBackendDB   = "db"
	StorageBackendFile = "file"

	DBEngineSQLite   = "sqlite"
	DBEngineMySQL    = "mysql"
	DBEnginePostgres = "postgres"
)

const (
	defaultShutDownTime   = 5
	defaultSessionExpiry  = 24 * time.Hour
	defaultUploadMaxSize  = 5 * 1024 * 1024
	defaultUploadDir      = "./data/uploads"
	defaultUploadPath     = "/uploads"
	defaultDataDir        = "./data"
	defaultSQLitePath     = "./data/kochwerk.db"
	defaultStorageBackend = StorageBackendDB
	defaultDBEngine       = DBEngineSQLite
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("KOCHWERK_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// the base url is needed to compute outbound image URLs
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.Wrap(ErrAdminCredentialsMissing, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Uploads.MaxSize == 0 {
		c.Uploads.MaxSize = defaultUploadMaxSize
	}

	if c.Uploads.Dir == "" {
		c.Uploads.Dir = defaultUploadDir
	}

	if c.Uploads.PublicPath == "" {
		c.Uploads.PublicPath = defaultUploadPath
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultStorageBackend
	}

	if c.Storage.Backend != StorageBackendDB && c.Storage.Backend != StorageBackendFile {
		return errors.Wrap(ErrUnknownStorageBackend, invalidErrMessage)
	}

	if c.Storage.DataDir == "" {
		c.Storage.DataDir = defaultDataDir
	}

	if c.DB.Engine == "" {
		c.DB.Engine = defaultDBEngine
	}

	switch c.DB.Engine {
	case DBEngineSQLite:
		if c.DB.Path == "" {
			c.DB.Path = defaultSQLitePath
		}
	case DBEngineMySQL, DBEnginePostgres:
		// host based engines keep whatever the operator configured
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	return nil
}
