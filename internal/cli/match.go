package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "match [text]",
		Short: "Match a buffer against the active trigger patterns",
		Long:  "Match text against the active trigger patterns. Text can be a positional arg or piped via stdin; a trailing newline is kept.",
		Run:   runMatch,
	}

	RootCmd.AddCommand(cmd)
}

func runMatch(cmd *cobra.Command, args []string) {
	buffer := readText(args)

	s := mustSession(cmd)
	defer s.Close()

	action, ok := s.engine.Process(buffer)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), `{"match":false}`)
		return
	}
	if formatFlag == "text" {
		printActionText(cmd, action.Kind, action.Prompt, action.URL, action.SystemMessage)
		return
	}
	emit(cmd.OutOrStdout(), action)
}

func printActionText(cmd *cobra.Command, kind, prompt, url, system string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "kind: %s\n", kind)
	if prompt != "" {
		fmt.Fprintf(out, "prompt: %s\n", prompt)
	}
	if system != "" {
		fmt.Fprintf(out, "system: %s\n", system)
	}
	if url != "" {
		fmt.Fprintf(out, "url: %s\n", url)
	}
}
