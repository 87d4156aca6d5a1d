// Package config loads extsort run settings.
//
// Settings come from built-in defaults, optionally overlaid by a TOML file
// given with --config, and finally by command-line flags that were set
// explicitly. The file is never looked up implicitly and no environment
// variables are read.
//
// Example file:
//
//	workers   = 16
//	log_level = "warn"
//	strict    = true
//	lock      = true
//	lock_dir  = "/run/lock"
//	report    = "/var/log/extsort/last-run.json"
//	summary   = true
package config
