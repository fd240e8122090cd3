// slurmspec generates an OpenAPI 3.0 specification from the Slurm REST
// API HTML documentation.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "slurmspec",
		Short:         "Generate an OpenAPI specification from Slurm REST API documentation",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newGenerateCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
