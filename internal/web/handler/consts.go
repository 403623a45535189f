package handler

const (
	// RouterRootPath is the root path within a route group.
	RouterRootPath = "/"

	// ErrNilACAFatalLogMsg is used if app, cfg or authenticator pointer is nil.
	ErrNilACAFatalLogMsg = "app, cfg or authenticator is nil"
)
