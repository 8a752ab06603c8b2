// Package shell implements the interactive session opened by `kamctl
// connect`. Commands are dispatched through a handler map; an unknown
// command reports an error and the session continues.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	json "github.com/goccy/go-json"

	"github.com/kamctl/kamctl/internal/api"
	"github.com/kamctl/kamctl/internal/auth"
	"github.com/kamctl/kamctl/internal/backup"
	"github.com/kamctl/kamctl/internal/ui"
)

// errExit is a sentinel error used to signal shell exit
var errExit = errors.New("exit")

// Shell is the interactive Kameleoon session.
type Shell struct {
	gateway         *api.Client
	auth            *auth.Manager
	backups         *backup.Store
	logger          *ui.Logger
	commandHandlers map[string]commandHandler
}

// NewShell creates a shell over the gateway and stores.
func NewShell(gateway *api.Client, authMgr *auth.Manager, backups *backup.Store, logger *ui.Logger) *Shell {
	s := &Shell{
		gateway: gateway,
		auth:    authMgr,
		backups: backups,
		logger:  logger,
	}
	s.commandHandlers = s.buildCommandHandlers()
	return s
}

// Run starts the interactive loop. One readline instance lives for the whole
// session so history survives across commands.
func (s *Shell) Run(ctx context.Context) error {
	historyFile := filepath.Join(os.TempDir(), ".kamctl_history")

	config := &readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    s.createCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.logger.Info("Connected as %s. Type 'help' for available commands.", s.auth.ActiveClient())
	fmt.Println()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shell shutting down...")
			return nil
		default:
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			s.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if err := s.executeCommand(ctx, input); err != nil {
			if errors.Is(err, errExit) {
				s.logger.Info("Goodbye!")
				return nil
			}
			s.logger.Error("Error: %v", err)
		}

		rl.SetPrompt(s.prompt())
		fmt.Println()
	}
}

func (s *Shell) prompt() string {
	return fmt.Sprintf("%s> ", s.auth.ActiveClient())
}

// commandHandler defines a shell command with its handler and argument
// requirements.
type commandHandler struct {
	minArgs int
	usage   string
	hidden  bool
	handler func(ctx context.Context, parts []string) error
}

// executeCommand parses and executes one command line.
func (s *Shell) executeCommand(ctx context.Context, input string) error {
	parts := splitCommand(input)
	if len(parts) == 0 {
		return nil
	}

	command := strings.ToLower(parts[0])

	handler, exists := s.commandHandlers[command]
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", command)
	}

	if len(parts) < handler.minArgs {
		return errors.New(handler.usage)
	}

	return handler.handler(ctx, parts)
}

// splitCommand splits on whitespace but keeps a trailing JSON object intact,
// so `goals:create {"name": "My goal", ...}` parses as two parts.
func splitCommand(input string) []string {
	if i := strings.Index(input, "{"); i >= 0 {
		head := strings.Fields(input[:i])
		return append(head, strings.TrimSpace(input[i:]))
	}
	return strings.Fields(input)
}

// createCompleter builds tab completion from the visible command set.
func (s *Shell) createCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(s.commandHandlers))
	for name, h := range s.commandHandlers {
		if h.hidden {
			continue
		}
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// filterInput filters input characters for readline
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// parseID parses a numeric entity ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: expected a number", arg)
	}
	return id, nil
}

// printJSON pretty-prints an API result.
func (s *Shell) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// decodeJSONArg decodes the JSON argument of a create command.
func decodeJSONArg(arg string, out interface{}) error {
	if err := json.Unmarshal([]byte(arg), out); err != nil {
		return fmt.Errorf("invalid JSON argument: %w", err)
	}
	return nil
}
