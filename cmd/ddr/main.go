// Command ddr generates a Detailed Diagnostic Report from an inspection
// report and a thermal survey without going through the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "ddr",
		Short:         "Generate Detailed Diagnostic Reports from inspection documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
