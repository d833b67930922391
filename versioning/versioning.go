package versioning

// set with -ldflags at build time
var (
	Commit    string
	Branch    string
	BuildTime string
	Version   = "dev"
)
