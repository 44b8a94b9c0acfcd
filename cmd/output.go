package cmd

import (
	"fmt"

	"eigenangi/ec2"
	"eigenangi/internal/output"
)

// outputResults renders machine types in the requested format and writes them
// to stdout.
func outputResults(machines []ec2.MachineType, format string) error {
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}

	rendered, err := formatter.Format(machines)
	if err != nil {
		return err
	}

	fmt.Print(rendered)
	return nil
}
