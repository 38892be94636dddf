package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Watch a file and report triggers as it is edited",
		Long:  "Re-read the file on every write and print an action whenever its contents end with a trigger.",
		Args:  cobra.ExactArgs(1),
		Run:   runWatch,
	}

	RootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	path, err := filepath.Abs(args[0])
	if err != nil {
		exitErr("resolve path", err)
	}

	s := mustSession(cmd)
	defer s.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		exitErr("create watcher", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		exitErr("watch", err)
	}

	check := func() {
		b, err := os.ReadFile(path)
		if err != nil {
			s.log.Debug("read buffer failed", zap.String("path", path), zap.Error(err))
			return
		}
		if action, ok := s.engine.Process(string(b)); ok {
			emit(cmd.OutOrStdout(), action)
		}
	}
	check()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				check()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}
}
