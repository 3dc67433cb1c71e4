package version

// Version is set at build time with -ldflags "-X zinnia/version.Version=...".
var Version = "dev"
