package main

// Exit codes returned by pubgen commands.
const (
	ExitSuccess     = 0 // Success, including runs that skipped malformed entries
	ExitError       = 1 // General error (invalid arguments, filesystem failure)
	ExitConfigError = 2 // Configuration error (bad site.yml, invalid paths)
	ExitDataError   = 3 // Data error (unreadable bibliography, duplicate slug, broken links)
)
