package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by .env, TODOLIST_* environment variables or CLI flags

# Filter shown when a session starts: all, active or completed
default_filter = "all"

# Go time layout used to display due dates
date_layout = "January 2, 2006"

# Task ids: "clock" (millisecond timestamps) or "sequence" (1, 2, 3, ...)
ids = "clock"

# Output format for "todolist script": text or html
output = "text"

# Logging
log_level = "info"    # debug, info, warn, error
log_format = "text"   # text, json, logfmt
# log_file = "~/.todolist/todolist.log"
`
}
