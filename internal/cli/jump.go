package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/textrigger/internal/quickjump"
)

func init() {
	jumpCmd := &cobra.Command{
		Use:   "jump",
		Short: "Manage quick-jump URL shortcuts",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List quick-jump entries",
		Run:   runJumpList,
	}
	listCmd.Flags().Bool("triggers-only", false, "Only output trigger/url pairs")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a quick-jump entry",
		Run:   runJumpAdd,
	}
	addCmd.Flags().String("name", "", "Display name")
	addCmd.Flags().StringP("trigger", "t", "", "Keyword typed between the symbols")
	addCmd.Flags().StringP("url", "u", "", "URL template with {q}, %s or "+quickjump.LegacyPlaceholder+" (required)")
	addCmd.MarkFlagRequired("url")

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a quick-jump entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJumpEdit,
	}
	editCmd.Flags().String("name", "", "Display name")
	editCmd.Flags().StringP("trigger", "t", "", "Keyword")
	editCmd.Flags().StringP("url", "u", "", "URL template")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a quick-jump entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJumpRm,
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Enable or disable a quick-jump entry",
		Args:  cobra.ExactArgs(1),
		Run:   runJumpToggle,
	}

	importCmd := &cobra.Command{
		Use:   "import [config]",
		Short: "Replace the entries from a config in any supported format",
		Long:  "Replace all entries. Accepts a JSON array, a {\"items\":[...]} object, or legacy text (## or newline separated, optional 【name】 prefix). Reads stdin when no arg is given.",
		Run:   runJumpImport,
	}

	urlCmd := &cobra.Command{
		Use:   "url [template] [query...]",
		Short: "Build a URL from a template and a query",
		Args:  cobra.MinimumNArgs(1),
		Run:   runJumpURL,
	}

	jumpCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd, toggleCmd, importCmd, urlCmd)
	RootCmd.AddCommand(jumpCmd)
}

func runJumpList(cmd *cobra.Command, args []string) {
	triggersOnly, _ := cmd.Flags().GetBool("triggers-only")

	s := mustSession(cmd)
	defer s.Close()

	entries := s.engine.QuickJumps()
	if triggersOnly || formatFlag == "text" {
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Trigger, e.URL)
		}
		return
	}
	emit(cmd.OutOrStdout(), entries)
}

func runJumpAdd(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	trigger, _ := cmd.Flags().GetString("trigger")
	url, _ := cmd.Flags().GetString("url")

	if strings.TrimSpace(url) == "" {
		exitErr("add", fmt.Errorf("url is required"))
	}

	s := mustSession(cmd)
	defer s.Close()

	entries, e := quickjump.Add(s.engine.QuickJumps(), name, trigger, url)
	if err := s.engine.SaveQuickJumps(cmd.Context(), entries); err != nil {
		exitErr("save", err)
	}
	emit(cmd.OutOrStdout(), e)
}

func runJumpEdit(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	entries := s.engine.QuickJumps()
	e, ok := quickjump.Find(entries, args[0])
	if !ok {
		exitErr("edit", fmt.Errorf("%w: %s", quickjump.ErrNotFound, args[0]))
	}
	if cmd.Flags().Changed("name") {
		e.Name, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("trigger") {
		e.Trigger, _ = cmd.Flags().GetString("trigger")
	}
	if cmd.Flags().Changed("url") {
		e.URL, _ = cmd.Flags().GetString("url")
	}

	entries, err := quickjump.Update(entries, e)
	if err != nil {
		exitErr("edit", err)
	}
	if err := s.engine.SaveQuickJumps(cmd.Context(), entries); err != nil {
		exitErr("save", err)
	}
	emit(cmd.OutOrStdout(), e)
}

func runJumpRm(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	entries, err := quickjump.Remove(s.engine.QuickJumps(), args[0])
	if err != nil {
		exitErr("rm", err)
	}
	if err := s.engine.SaveQuickJumps(cmd.Context(), entries); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}

func runJumpToggle(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	entries, err := quickjump.Toggle(s.engine.QuickJumps(), args[0])
	if err != nil {
		exitErr("toggle", err)
	}
	if err := s.engine.SaveQuickJumps(cmd.Context(), entries); err != nil {
		exitErr("save", err)
	}
	e, _ := quickjump.Find(entries, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q,"enabled":%t}`+"\n", e.ID, e.Enabled)
}

func runJumpImport(cmd *cobra.Command, args []string) {
	config := readText(args)
	entries := quickjump.Load(config)

	s := mustSession(cmd)
	defer s.Close()

	if err := s.engine.SaveQuickJumps(cmd.Context(), entries); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", len(entries))
}

func runJumpURL(cmd *cobra.Command, args []string) {
	query := strings.Join(args[1:], " ")
	fmt.Fprintln(cmd.OutOrStdout(), quickjump.BuildURL(args[0], query))
}
