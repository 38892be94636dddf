package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write raw settings values",
	}

	getCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print a raw setting",
		Args:  cobra.ExactArgs(1),
		Run:   runConfigGet,
	}
	getCmd.Flags().Bool("history", false, "Return all versions (newest first)")

	setCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Store a raw setting",
		Long:  "Store a raw setting. The value can be a positional arg or piped via stdin.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runConfigSet,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings keys",
		Run:   runConfigList,
	}

	configCmd.AddCommand(getCmd, setCmd, listCmd)
	RootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) {
	history, _ := cmd.Flags().GetBool("history")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if history {
		entries, err := s.History(cmd.Context(), args[0], 0)
		if err != nil {
			exitErr("get", err)
		}
		emit(cmd.OutOrStdout(), entries)
		return
	}

	v, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), v)
}

func runConfigSet(cmd *cobra.Command, args []string) {
	value := strings.TrimSpace(readText(args[1:]))

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Put(cmd.Context(), args[0], value); err != nil {
		exitErr("set", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"key":%q}`+"\n", args[0])
}

func runConfigList(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.List(cmd.Context())
	if err != nil {
		exitErr("list", err)
	}
	if formatFlag == "text" {
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tv%d\n", e.Key, e.Version)
		}
		return
	}
	emit(cmd.OutOrStdout(), entries)
}
