// Package main provides the entry point for the eigenangi CLI.
//
// Eigenangi discovers the EC2 instance types available to an AWS account.
// Credentials and region are resolved from environment variables, a .env file
// in the working directory, and a user-level TOML config file, in that order.
//
// Usage:
//
//	eigenangi list-machine-types [flags]
//	eigenangi version
//
// For detailed usage information, run: eigenangi --help
package main

import (
	"fmt"
	"os"

	"eigenangi/cmd"
	"eigenangi/errors"
)

// main executes the CLI commands and handles error formatting and exit codes.
func main() {
	if err := cmd.Execute(); err != nil {
		if discoveryErr, ok := err.(*errors.DiscoveryError); ok {
			fmt.Fprint(os.Stderr, errors.FormatErrorForUser(discoveryErr))
			os.Exit(errors.GetExitCode(discoveryErr))
		} else {
			// Flag parsing and other unexpected errors
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
