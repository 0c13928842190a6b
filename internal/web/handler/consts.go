package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath is the root path of the json api.
	APIPath = RootPath + "api/"

	// ErrNilASFatalLogMsg is used if the app, cfg or settings service pointer is nil.
	ErrNilASFatalLogMsg = "app, cfg or settings service is nil"
)
