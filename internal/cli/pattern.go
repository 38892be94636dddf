package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/textrigger/internal/pattern"
)

func init() {
	symbolCmd := &cobra.Command{
		Use:   "symbol",
		Short: "Convert between trigger symbols and regexes",
	}

	encodeCmd := &cobra.Command{
		Use:   "encode [symbol]",
		Short: "Build the regex for a trigger symbol",
		Args:  cobra.ExactArgs(1),
		Run:   runSymbolEncode,
	}
	encodeCmd.Flags().IntP("groups", "g", 1, "Capture groups: 0, 1 or 2")

	decodeCmd := &cobra.Command{
		Use:   "decode [regex]",
		Short: "Recover the trigger symbol from a regex",
		Args:  cobra.ExactArgs(1),
		Run:   runSymbolDecode,
	}

	symbolCmd.AddCommand(encodeCmd, decodeCmd)

	patternCmd := &cobra.Command{
		Use:   "pattern",
		Short: "Manage trigger patterns",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List patterns in priority order",
		Run:   runPatternList,
	}

	setCmd := &cobra.Command{
		Use:   "set [kind] [symbol]",
		Short: "Change the trigger symbol of a pattern",
		Args:  cobra.ExactArgs(2),
		Run:   runPatternSet,
	}

	enableCmd := &cobra.Command{
		Use:   "enable [kind]",
		Short: "Enable a pattern",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runPatternEnable(cmd, args[0], true) },
	}

	disableCmd := &cobra.Command{
		Use:   "disable [kind]",
		Short: "Disable a pattern",
		Args:  cobra.ExactArgs(1),
		Run:   func(cmd *cobra.Command, args []string) { runPatternEnable(cmd, args[0], false) },
	}

	resetCmd := &cobra.Command{
		Use:   "reset [kind]",
		Short: "Restore the default regex of a pattern, or of all patterns",
		Args:  cobra.MaximumNArgs(1),
		Run:   runPatternReset,
	}

	patternCmd.AddCommand(listCmd, setCmd, enableCmd, disableCmd, resetCmd)
	RootCmd.AddCommand(symbolCmd, patternCmd)
}

func runSymbolEncode(cmd *cobra.Command, args []string) {
	groups, _ := cmd.Flags().GetInt("groups")
	re, ok := pattern.EncodeSymbol(args[0], groups)
	if !ok {
		exitErr("encode", fmt.Errorf("cannot encode %q with %d groups", args[0], groups))
	}
	fmt.Fprintln(cmd.OutOrStdout(), re)
}

func runSymbolDecode(cmd *cobra.Command, args []string) {
	sym, ok := pattern.DecodeSymbol(args[0])
	if !ok {
		exitErr("decode", fmt.Errorf("no symbol in %q", args[0]))
	}
	fmt.Fprintln(cmd.OutOrStdout(), sym)
}

type patternRow struct {
	Kind        string `json:"kind" yaml:"kind"`
	Symbol      string `json:"symbol" yaml:"symbol"`
	Regex       string `json:"regex" yaml:"regex"`
	Groups      int    `json:"groups" yaml:"groups"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Custom      bool   `json:"custom" yaml:"custom"`
	Description string `json:"description" yaml:"description"`
}

func runPatternList(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	var rows []patternRow
	for _, p := range s.engine.Patterns() {
		d := p.Kind.Describe()
		rows = append(rows, patternRow{
			Kind:        d.Title,
			Symbol:      p.Symbol(),
			Regex:       p.Expr(),
			Groups:      d.GroupCount,
			Enabled:     p.Enabled,
			Custom:      !p.IsDefault(),
			Description: d.Description,
		})
	}

	if formatFlag == "text" {
		for _, r := range rows {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-6s enabled=%s  %s\n",
				r.Kind, r.Symbol, strconv.FormatBool(r.Enabled), r.Description)
		}
		return
	}
	emit(cmd.OutOrStdout(), rows)
}

func lookupKind(title string) pattern.Kind {
	k, ok := pattern.ParseKind(title)
	if !ok {
		exitErr("pattern", fmt.Errorf("%w: %s", pattern.ErrUnknownKind, title))
	}
	return k
}

func runPatternSet(cmd *cobra.Command, args []string) {
	kind := lookupKind(args[0])

	s := mustSession(cmd)
	defer s.Close()

	l := s.engine.Patterns()
	if err := l.SetSymbol(kind, args[1]); err != nil {
		exitErr("set symbol", err)
	}
	if err := s.engine.SavePatterns(cmd.Context(), l); err != nil {
		exitErr("save", err)
	}
	p, _ := l.Get(kind)
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"regex":%q}`+"\n", kind.String(), p.Expr())
}

func runPatternEnable(cmd *cobra.Command, title string, enabled bool) {
	kind := lookupKind(title)

	s := mustSession(cmd)
	defer s.Close()

	l := s.engine.Patterns()
	if err := l.SetEnabled(kind, enabled); err != nil {
		exitErr("pattern", err)
	}
	if err := s.engine.SavePatterns(cmd.Context(), l); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"kind":%q,"enabled":%t}`+"\n", kind.String(), enabled)
}

func runPatternReset(cmd *cobra.Command, args []string) {
	s := mustSession(cmd)
	defer s.Close()

	l := s.engine.Patterns()
	if len(args) == 0 {
		l = pattern.Defaults()
	} else if err := l.Reset(lookupKind(args[0])); err != nil {
		exitErr("reset", err)
	}
	if err := s.engine.SavePatterns(cmd.Context(), l); err != nil {
		exitErr("save", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
