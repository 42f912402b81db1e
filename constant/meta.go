// Package constant defines immutable application-level identifiers.
package constant

const (
	// App is the canonical application identifier used for filesystem paths, env prefix and CLI branding.
	App = "djecho"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent identifies djecho to streaming servers and speech APIs.
	UserAgent = App + "/" + Version
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// DJName is the persona used in commentary prompts and status lines.
const DJName = "DJ Echo"

// Repository is the GitHub owner/name releases are published under.
const Repository = "djecho/djecho"
