package main

// Exit codes returned by the wordvec CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Configuration error (bad config file, unknown charset)
	ExitDataError   = 3 // Data error (malformed or truncated embedding file)
	ExitNotFound    = 4 // Word not in vocabulary
)
