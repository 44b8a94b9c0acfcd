// Package output renders machine type listings for the CLI.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"eigenangi/ec2"
	"eigenangi/errors"
	"eigenangi/internal/interfaces"
)

// GetFormatter returns the formatter for the given format type
func GetFormatter(formatType string) (interfaces.OutputFormatter, error) {
	switch strings.ToLower(formatType) {
	case "table":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, errors.ValidationErrorf("unsupported output format: %s", formatType).
			WithSuggestion("Use one of: table, json, csv")
	}
}

// TableFormatter formats output as a human-readable table
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter
func NewTableFormatter() interfaces.OutputFormatter {
	return &TableFormatter{}
}

// FormatType returns the format type
func (f *TableFormatter) FormatType() string {
	return "table"
}

// Format formats the machine type records as an aligned table
func (f *TableFormatter) Format(machines []ec2.MachineType) (string, error) {
	if len(machines) == 0 {
		return "No machine types returned.\n", nil
	}

	var output strings.Builder

	w := tabwriter.NewWriter(&output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INSTANCE TYPE\tVCPUS\tMEMORY (MIB)\tFAMILY\tARCH\tNETWORK\tENA\tBURSTABLE")

	for _, m := range machines {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%t\t%t\n",
			m.InstanceType,
			m.VCPUs,
			m.MemoryMiB,
			m.Family,
			strings.Join(m.Architectures, ","),
			m.NetworkPerformance,
			m.ENASupport,
			m.Burstable)
	}

	if err := w.Flush(); err != nil {
		return "", errors.WrapError(err, errors.ValidationErrorType, "failed to render table")
	}

	return output.String(), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() interfaces.OutputFormatter {
	return &JSONFormatter{}
}

// FormatType returns the format type
func (f *JSONFormatter) FormatType() string {
	return "json"
}

// Format formats the machine type records as indented JSON
func (f *JSONFormatter) Format(machines []ec2.MachineType) (string, error) {
	if machines == nil {
		machines = []ec2.MachineType{}
	}

	data, err := json.MarshalIndent(machines, "", "  ")
	if err != nil {
		return "", errors.WrapError(err, errors.ValidationErrorType, "failed to marshal machine types to JSON")
	}

	return string(data) + "\n", nil
}

// CSVFormatter formats output as CSV
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter() interfaces.OutputFormatter {
	return &CSVFormatter{}
}

// FormatType returns the format type
func (f *CSVFormatter) FormatType() string {
	return "csv"
}

// Format formats the machine type records as CSV with a header row
func (f *CSVFormatter) Format(machines []ec2.MachineType) (string, error) {
	var output strings.Builder

	writer := csv.NewWriter(&output)

	header := []string{"instance_type", "vcpus", "memory_mib", "family", "architectures", "network_performance", "ena_support", "burstable"}
	if err := writer.Write(header); err != nil {
		return "", errors.WrapError(err, errors.ValidationErrorType, "failed to write CSV header")
	}

	for _, m := range machines {
		record := []string{
			m.InstanceType,
			strconv.FormatInt(int64(m.VCPUs), 10),
			strconv.FormatInt(m.MemoryMiB, 10),
			m.Family,
			strings.Join(m.Architectures, " "),
			m.NetworkPerformance,
			strconv.FormatBool(m.ENASupport),
			strconv.FormatBool(m.Burstable),
		}
		if err := writer.Write(record); err != nil {
			return "", errors.WrapError(err, errors.ValidationErrorType, "failed to write CSV record")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.WrapError(err, errors.ValidationErrorType, "failed to render CSV")
	}

	return output.String(), nil
}
