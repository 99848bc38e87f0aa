package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// RouterRootPath is the root path within a route group.
	RouterRootPath = "/"

	// APIPath is the prefix all JSON routes live under.
	APIPath = "/api"

	// ErrNilACFatalLogMsg is used if the app or cfg pointer is nil.
	ErrNilACFatalLogMsg = "app or cfg is nil"
)
