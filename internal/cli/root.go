// Package cli implements the textrigger CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/textrigger/internal/engine"
	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/store"
)

var (
	dbPath     string
	formatFlag string
	logLevel   string
)

// shutdownSignals cancel the command context.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Execute runs RootCmd with a context that is canceled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := notifyContext(context.Background())
	defer stop()
	return RootCmd.ExecuteContext(ctx)
}

func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "textrigger",
	Short: "Trigger patterns for text input",
	Long:  "Recognize trigger symbols at the end of typed text and turn them into assistant prompts, quick jumps and persona switches. SQLite-backed, single binary.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !model.ValidFormats[formatFlag] {
			return fmt.Errorf("invalid --format %q (use json, yaml or text)", formatFlag)
		}
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $TEXTRIGGER_DB or ~/.textrigger/settings.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, yaml or text")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("TEXTRIGGER_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".textrigger", "settings.db")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func newLogger() *zap.Logger {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// session is an open store plus the engine reading from it.
type session struct {
	store  *store.SQLiteStore
	engine *engine.Engine
	log    *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	log := newLogger()
	e, err := engine.New(ctx, s, log)
	if err != nil {
		s.Close()
		return nil, err
	}
	return &session{store: s, engine: e, log: log}, nil
}

func (s *session) Close() {
	s.engine.Close()
	s.store.Close()
	s.log.Sync()
}

func mustSession(cmd *cobra.Command) *session {
	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	return s
}

// emit writes v in the selected structured format. Text output falls back to
// indented JSON.
func emit(w io.Writer, v interface{}) {
	if formatFlag == "yaml" {
		b, err := yaml.Marshal(v)
		if err != nil {
			exitErr("encode yaml", err)
		}
		fmt.Fprint(w, string(b))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// readText returns args joined by spaces, or stdin when no args are given.
func readText(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitErr("read stdin", err)
		}
		return string(b)
	}
	return ""
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
