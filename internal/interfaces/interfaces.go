package interfaces

import (
	"eigenangi/ec2"
)

// OutputFormatter defines the interface for rendering machine type listings
type OutputFormatter interface {
	// Format renders the machine type records according to the formatter's type
	Format(machines []ec2.MachineType) (string, error)

	// FormatType returns the format type (e.g., "table", "json", "csv")
	FormatType() string
}
