// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the top-level command to run.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdKB
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool
	APIURL  string

	// KB starts the TUI on the knowledge tab.
	KB bool

	// Query is the question for ask.
	Query string

	// Subcommand is the first argument after kb or config.
	Subcommand string

	// Name is the command word as typed.
	Name string

	// Raw holds every argument after the command word.
	Raw []string
}

const usageText = `jarvis - terminal client for the Jarvis knowledge assistant

Usage:
  jarvis                         Start the TUI on the chat tab
  jarvis tui [--kb]              Start the TUI, optionally on the knowledge tab
  jarvis ask "question"          Ask a single question
  jarvis chat                    Line-mode chat with input history
  jarvis status, s               Show backend health
  jarvis kb <subcommand>         Manage knowledge entries
  jarvis config <subcommand>     Manage configuration
  jarvis version                 Show version information
  jarvis help                    Show this help

Knowledge Commands:
  jarvis kb list [--category C]          List entries
  jarvis kb get <id>                     Show one entry
  jarvis kb search <query> [--top-k N] [--category C]
                                         Semantic search
  jarvis kb add --title T --content C [--category C] [--tags "a, b"] [--source S]
                                         Create an entry
  jarvis kb edit <id> [--title T] [--content C] [--category C] [--tags "a, b"] [--source S]
                                         Update the given fields
  jarvis kb rm <id> [--yes]              Delete an entry
  jarvis kb import <file> [--format text|markdown|json] [--category C] [--rate N] [--dry-run]
                                         Bulk import entries
  jarvis kb seed                         Add the built-in sample entries

  Categories: general, technical, business, personal, imported

Config Commands:
  jarvis config show             Print the effective configuration
  jarvis config get <key>        Print one value (e.g. api.base_url)
  jarvis config set <key> <val>  Update the config file
  jarvis config keys             List every key
  jarvis config path             Print the config file path
  jarvis config init [--force]   Write a default config file

Global Flags:
  --api-url URL                  Backend URL (overrides config and JARVIS_API_URL)
  --json                         Print results as JSON
  -q, --quiet                    Minimal output
  -v, --verbose                  Log requests (and write ~/.jarvis/debug.log in the TUI)

Environment:
  JARVIS_API_URL, JARVIS_TOP_K, JARVIS_THEME, JARVIS_EXPORT_DIR
  JARVIS_CONFIG_DIR              Config directory (default ~/.jarvis)
  JARVIS_DEBUG                   Write TUI debug log
  NO_COLOR                       Disable colors

Exit Codes:
  0 success, 1 error, 2 usage, 3 config, 5 backend unreachable, 7 not found
`

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := remaining[0]
	rest := remaining[1:]
	args.Name = cmd
	args.Raw = rest
	if len(rest) > 0 {
		args.Subcommand = rest[0]
	}

	switch cmd {
	case "tui":
		p := NewArgParser(rest, "kb", "knowledge")
		args.KB = p.BoolFlag("kb", "knowledge")
		return CmdTUI, args
	case "ask":
		args.Query = strings.TrimSpace(strings.Join(NewArgParser(rest).PositionalFrom(0), " "))
		return CmdAsk, args
	case "chat":
		return CmdChat, args
	case "status", "s":
		return CmdStatus, args
	case "kb", "knowledge":
		return CmdKB, args
	case "config":
		return CmdConfig, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		return CmdUnknown, args
	}
}

// parseGlobalFlags extracts global flags wherever they appear and returns
// the remaining arguments in order.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var (
		remaining []string
		args      Args
	)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "-q" || arg == "--quiet":
			args.Quiet = true
		case arg == "-v" || arg == "--verbose":
			args.Verbose = true
		case arg == "--json":
			args.JSON = true
		case arg == "--api-url":
			if i+1 < len(argv) {
				i++
				args.APIURL = argv[i]
			}
		case strings.HasPrefix(arg, "--api-url="):
			args.APIURL = strings.TrimPrefix(arg, "--api-url=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Env carries what a command needs to run.
type Env struct {
	Out io.Writer
	Err io.Writer
	In  io.Reader

	Config *config.Config
	Client *api.Client

	JSON     bool
	Quiet    bool
	Verbose  bool
	Markdown bool
	Width    int
}

// NewEnv builds an Env over stdio from the global config and args.
// --api-url wins over the config file and JARVIS_API_URL.
func NewEnv(args Args) (*Env, error) {
	cfg := config.Global().Clone()
	if args.APIURL != "" {
		if err := config.ValidateBaseURL(args.APIURL); err != nil {
			return nil, &ValidationError{
				Field:   "api-url",
				Value:   args.APIURL,
				Reason:  err.Error(),
				Example: "jarvis --api-url http://localhost:8000 status",
			}
		}
		cfg.API.BaseURL = strings.TrimRight(args.APIURL, "/")
	}

	return &Env{
		Out:    os.Stdout,
		Err:    os.Stderr,
		In:     os.Stdin,
		Config: cfg,
		Client: api.NewClientWithConfig(&api.ClientConfig{
			BaseURL:      cfg.API.BaseURL,
			ContextLimit: cfg.API.ContextLimit,
			Verbose:      args.Verbose,
		}),
		JSON:     args.JSON,
		Quiet:    args.Quiet,
		Verbose:  args.Verbose,
		Markdown: cfg.UI.RenderMarkdown && IsStdoutTTY() && !args.JSON,
		Width:    GetTerminalWidth(),
	}, nil
}

// emit prints data as a JSON envelope in JSON mode, otherwise calls human.
func (e *Env) emit(command string, data any, human func()) error {
	if e.JSON {
		return NewJSONResponse(command, data).Print(e.Out)
	}
	human()
	return nil
}

// info prints a progress line unless quiet or in JSON mode.
func (e *Env) info(format string, a ...any) {
	if e.Quiet || e.JSON {
		return
	}
	fmt.Fprintf(e.Out, format+"\n", a...)
}

// =============================================================================
// HANDLERS
// =============================================================================

// run executes fn with an interrupt-aware context and exits non-zero on
// failure.
func run(args Args, fn func(ctx context.Context, env *Env) error) {
	env, err := NewEnv(args)
	if err == nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = fn(ctx, env)
		stop()
	}
	if err != nil {
		out := io.Writer(os.Stderr)
		if args.JSON {
			out = os.Stdout
		}
		DisplayError(out, err, args.JSON)
		os.Exit(GetExitCode(err))
	}
}

// HandleAsk handles "jarvis ask".
func HandleAsk(args Args) {
	run(args, func(ctx context.Context, env *Env) error { return RunAsk(ctx, env, args.Query) })
}

// HandleChat handles "jarvis chat". Interrupts are handled per request
// inside the loop.
func HandleChat(args Args) {
	env, err := NewEnv(args)
	if err == nil {
		err = RunChat(context.Background(), env)
	}
	if err != nil {
		DisplayError(os.Stderr, err, args.JSON)
		os.Exit(GetExitCode(err))
	}
}

// HandleStatus handles "jarvis status".
func HandleStatus(args Args) {
	run(args, RunStatus)
}

// HandleKB handles "jarvis kb".
func HandleKB(args Args) {
	run(args, func(ctx context.Context, env *Env) error { return RunKB(ctx, env, args.Raw) })
}

// HandleConfig handles "jarvis config". It does not need a backend, so
// a broken config file still reaches the config subcommands.
func HandleConfig(args Args) {
	env := &Env{Out: os.Stdout, Err: os.Stderr, In: os.Stdin, JSON: args.JSON, Quiet: args.Quiet}
	if err := RunConfig(env, args.Raw); err != nil {
		DisplayError(os.Stderr, err, args.JSON)
		os.Exit(GetExitCode(err))
	}
}

// HandleVersion prints version information.
func HandleVersion(args Args) {
	data := VersionData{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if args.JSON {
		_ = NewJSONResponse("version", data).Print(os.Stdout)
		return
	}
	fmt.Printf("jarvis %s (commit %s, built %s, %s)\n", data.Version, data.GitCommit, data.BuildDate, data.GoVersion)
}

// HandleHelp prints usage.
func HandleHelp() {
	PrintUsage(os.Stdout)
}

// HandleUnknown reports an unknown command and exits with the usage code.
func HandleUnknown(args Args) {
	err := &UsageError{Message: fmt.Sprintf("unknown command %q", args.Name), Usage: "jarvis help"}
	DisplayError(os.Stderr, err, args.JSON)
	os.Exit(GetExitCode(err))
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
