// Package main hosts the cropall CLI entrypoint and command graph.
//
// The root command runs a crop session over one folder: it resolves the
// folder (argument or directory picker), scans it, checks the folders, and
// hands the images to the session driver with either the terminal editor or
// the automatic selector. Subcommands cover scanning, crop history,
// configuration scaffolding, and environment checks.
package main
