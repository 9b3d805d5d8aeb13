// Package cli wires the agricare subcommands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configFile string

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "agricare",
		Short: "Crop disease detection and advisory reports",
		Long: `agricare classifies crop-leaf images with a pretrained model, drafts an
advisory report for the detected disease with a hosted language model, and
renders reports as PDF documents.`,
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (default $AGRICARE_CONFIG)")

	rootCmd.AddCommand(
		NewServeCmd(),
		NewAnalyzeCmd(),
		NewRenderCmd(),
		newVersionCmd(version),
	)
	return rootCmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agricare version %s\n", version)
		},
	}
}
