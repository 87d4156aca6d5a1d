// Package cmd provides the command-line interface implementation for extsort.
//
// It uses the Cobra library for command structure; main hands the root
// command to Fang for styling and execution.
//
// The package is organized into the following commands:
//   - root: sort SRC into extension buckets under DST
//   - count: show the buckets a sort would produce, without copying
//   - verify: check a destination tree against its source
//   - seed: generate a random source tree for trying things out
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Exit statuses travel back to main
// as *ExitError values.
package cmd
