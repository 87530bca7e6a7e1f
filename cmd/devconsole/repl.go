package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"devconsole/internal/appconfig"
	"devconsole/internal/consolewidget"
	"devconsole/internal/layout"
	"devconsole/internal/scrollback"

	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

const replHelp = `Statements are evaluated in a scope that persists across lines.
  .clear          clear output and reset the scope
  .show / .hide   show or hide console output
  .history        list command history
  .up / .down     recall history entries; Enter on an empty line runs the recalled entry
  .load <file>    run a script file
  .exit           leave the console`

func newReplCmd(cfgPath *string) *cobra.Command {
	var ephemeral bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive console session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(*cfgPath)
			if err != nil {
				return err
			}
			logger := pslog.Ctx(cmd.Context())
			store, err := consolewidget.OpenStore(cfg, ephemeral)
			if err != nil {
				return err
			}

			opts := consolewidget.OptionsFromConfig(cfg, store, logger)
			if cfg.Notify.HiddenErrors {
				opts.OnHiddenError = func(line scrollback.Line) {
					go func() {
						if err := beeep.Notify("devconsole", line.Text, ""); err != nil {
							logger.Debug("notification failed", "err", err)
						}
					}()
				}
			}
			widget := consolewidget.New(opts)
			view := newTerminalView(cmd.OutOrStdout())
			if err := widget.Attach(cmd.Context(), view, layout.Full()); err != nil {
				return err
			}
			defer widget.Detach()

			s := &session{widget: widget, view: view, out: cmd.OutOrStdout()}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "keep history and panel state in memory only")
	return cmd
}

type session struct {
	widget *consolewidget.Widget
	view   *terminalView
	out    io.Writer
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	done := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		done <- scanner.Err()
		close(lines)
	}()

	for {
		if s.view.Visible() {
			_, _ = fmt.Fprint(s.out, "> ")
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-done
			}
			if s.handle(line) {
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether the session should end.
func (s *session) handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		if recalled := s.view.Input(); recalled != "" {
			s.widget.Submit(recalled)
		}
		return false
	}
	if !isDotCommand(trimmed) {
		s.widget.Submit(line)
		return false
	}

	name, arg, _ := strings.Cut(trimmed, " ")
	switch name {
	case ".exit", ".quit":
		return true
	case ".clear":
		s.widget.Clear()
	case ".show":
		s.widget.Show()
	case ".hide":
		s.widget.Hide()
	case ".up":
		s.widget.HistoryUp(s.view.Input())
	case ".down":
		s.widget.HistoryDown()
	case ".history":
		for i, entry := range s.widget.History() {
			_, _ = fmt.Fprintf(s.out, "%4d  %s\n", i+1, entry)
		}
	case ".load":
		path := strings.TrimSpace(arg)
		if path == "" {
			_, _ = fmt.Fprintln(s.out, "usage: .load <file>")
			break
		}
		content, err := os.ReadFile(path)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "load %s: %v\n", path, err)
			break
		}
		s.widget.Submit(string(content))
	case ".help":
		_, _ = fmt.Fprintln(s.out, replHelp)
	default:
		_, _ = fmt.Fprintf(s.out, "unknown command %s (.help lists commands)\n", name)
	}
	return false
}

// isDotCommand reports whether line is a console command rather than a
// statement. Statements such as ".5 + 1" start with a dot and a digit.
func isDotCommand(line string) bool {
	return len(line) > 1 && line[0] == '.' && (line[1] >= 'a' && line[1] <= 'z')
}
