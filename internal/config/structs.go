package config

import (
	"time"

	"github.com/kochwerk/kochwerk/internal/logger"
)

// Session settings.
type Session struct {
	// ExpiryTime is how long a login session stays valid, counted from
	// login, independent of activity.
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	DB        DB
	Storage   Storage
	Uploads   Uploads
	Admin     Admin
	Log       logger.Log
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath      bool    // use clean path middleware to allow multi slash requests
	DisableRecover bool    // disable recover middleware
	Domain         string  // domain name for the webserver
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver, used for outbound image URLs
	Session        Session // session settings
}

// DB holds the relational database settings.
type DB struct {
	// Engine selects the database driver: "sqlite", "mysql" or "postgres".
	Engine   string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Path is the database file location when Engine is "sqlite".
	Path string
}

// Storage selects the storage adapter realization.
type Storage struct {
	// Backend is "db" for the relational adapter or "file" for the
	// legacy JSON-file-backed adapter.
	Backend string
	// DataDir is where the file backend keeps its collection files.
	DataDir string
}

// Uploads holds the image upload settings.
type Uploads struct {
	// Dir is the directory uploaded image files are stored in.
	Dir string
	// PublicPath is the URL path the upload directory is served under.
	PublicPath string
	// MaxSize is the maximum accepted upload size in bytes.
	MaxSize int64
}

// Admin holds the single configured admin credential pair. It is seeded
// into the users table at startup.
type Admin struct {
	Username string
	Password string
}
