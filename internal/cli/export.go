package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all trigger settings",
		Long:  "Export patterns, quick-jump entries and personas as one JSON or YAML document (see --format).",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	emit(cmd.OutOrStdout(), s.engine.Export())
}
