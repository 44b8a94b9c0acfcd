package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"eigenangi/ec2"
	"eigenangi/internal/logger"
	"eigenangi/internal/version"
)

var (
	// Global flags
	outputFormat string
	region       string
	verbose      bool

	// list-machine-types flags
	families         []string
	arch             string
	burstableOnly    bool
	nonBurstableOnly bool
	limit            int

	// Root command
	rootCmd = &cobra.Command{
		Use:   "eigenangi",
		Short: "EC2 machine type discovery",
		Long: `Eigenangi discovers the EC2 instance types available to your account.
Credentials and region are resolved from environment variables, a .env file
in the working directory, and ~/.config/eigenangi/config.toml, in that order.`,
		Example: `  # List every machine type in the configured region
  eigenangi list-machine-types

  # Graviton burstable types only, as JSON
  eigenangi list-machine-types --family t4g --arch arm64 --burstable-only --output json

  # Override the region and cap the result count
  eigenangi list-machine-types --region us-west-2 --limit 50`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// list-machine-types command
	listMachineTypesCmd = &cobra.Command{
		Use:   "list-machine-types",
		Short: "List EC2 machine types available in the configured region",
		Long: `List the EC2 instance types available to the account in the resolved region.
Family, architecture, and burstable filters are combined: a machine type is
shown only when it satisfies all of them.`,
		Example: `  # All machine types
  eigenangi list-machine-types

  # Repeatable family filter
  eigenangi list-machine-types --family t4g --family m7g

  # Exclude burstable types
  eigenangi list-machine-types --non-burstable-only`,
		Args: cobra.NoArgs,
		RunE: runListMachineTypes,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information for eigenangi.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetFullVersionString())
		},
	}
)

func init() {
	// Add persistent flags to root command
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, csv)")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region (overrides environment and config files)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	listMachineTypesCmd.Flags().StringArrayVarP(&families, "family", "f", nil, "Filter by instance family prefix (repeatable)")
	listMachineTypesCmd.Flags().StringVarP(&arch, "arch", "a", "", "Filter by architecture (arm64, x86_64)")
	listMachineTypesCmd.Flags().BoolVar(&burstableOnly, "burstable-only", false, "Only show burstable machine types")
	listMachineTypesCmd.Flags().BoolVar(&nonBurstableOnly, "non-burstable-only", false, "Exclude burstable machine types")
	listMachineTypesCmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of results (0 = no limit)")
	listMachineTypesCmd.MarkFlagsMutuallyExclusive("burstable-only", "non-burstable-only")

	// Add subcommands
	rootCmd.AddCommand(listMachineTypesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runListMachineTypes handles the list-machine-types command
func runListMachineTypes(cmd *cobra.Command, args []string) error {
	logger.Initialize(verbose)

	ctx := cmd.Context()

	client, err := ec2.NewClient(ctx, &ec2.ClientConfig{Region: region})
	if err != nil {
		return err
	}

	slog.Debug("client ready", "region", client.Region())

	machines, err := client.ListMachineTypes(ctx, listOptions())
	if err != nil {
		return err
	}

	return outputResults(machines, outputFormat)
}

// listOptions translates the command flags into query options. The two
// burstable flags collapse into the tri-state filter; cobra rejects setting
// both.
func listOptions() *ec2.ListOptions {
	opts := &ec2.ListOptions{
		Families:     families,
		Architecture: arch,
		MaxResults:   limit,
	}

	switch {
	case burstableOnly:
		value := true
		opts.BurstableOnly = &value
	case nonBurstableOnly:
		value := false
		opts.BurstableOnly = &value
	}

	return opts
}
