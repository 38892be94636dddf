package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/textrigger/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trigger settings from JSON or YAML",
		Long:  "Import settings from stdin. Expects the document produced by export, in either format. Existing settings are replaced.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var bundle model.Bundle
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		err = json.Unmarshal(data, &bundle)
	} else {
		err = yaml.Unmarshal(data, &bundle)
	}
	if err != nil {
		exitErr("parse bundle", err)
	}

	s := mustSession(cmd)
	defer s.Close()

	if err := s.engine.Import(cmd.Context(), bundle); err != nil {
		exitErr("import", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"patterns":%d,"quick_jumps":%d,"roles":%d}`+"\n",
		len(bundle.Patterns), len(bundle.QuickJumps), len(bundle.Roles))
}
