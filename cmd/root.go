// Package cmd implements the CLI command structure for todolist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/todolist-go/internal/command"
	"github.com/nibzard/todolist-go/internal/config"
	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/render"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams are the process's standard files, swapped out in tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the todolist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, st streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todolist", flag.ContinueOnError)
	fs.SetOutput(st.err)
	fs.Usage = func() {
		printUsage(fs, st.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, st.out)
		return nil
	}
	if *showVersion {
		return versionCommand(st.out)
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "tui" as default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, st)
	case "script":
		return scriptCommand(ctx, cfg, remainingArgs, st)
	case "config":
		return configCommand(cws, remainingArgs, st)
	case "version":
		return versionCommand(st.out)
	case "help":
		printUsage(fs, st.out)
		return nil
	default:
		fmt.Fprintf(st.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, st.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive task list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("todolist tui", flag.ContinueOnError)
	fs.SetOutput(st.err)
	inline := fs.Bool("inline", false, "Draw inline instead of using the alternate screen")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	// The TUI owns the terminal, so logs go to the log file or nowhere.
	logger, closeLog, err := logging.Open(cfg.LogFile, io.Discard, cfg.LoggingOptions())
	if err != nil {
		return err
	}
	defer closeLog()

	factory := func(s todo.Surface) *todo.Controller {
		return todo.NewController(s, append(cfg.ControllerOptions(), todo.WithLogger(logger))...)
	}
	return ui.RunTUI(ctx, factory,
		ui.WithOutput(st.out),
		ui.WithAltScreen(!*inline),
	)
}

// scriptCommand replays JSON-lines commands against a fresh list and
// prints the resulting view.
func scriptCommand(ctx context.Context, cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("todolist script", flag.ContinueOnError)
	fs.SetOutput(st.err)
	output := fs.String("output", cfg.Output, "Output format (text|html)")
	trace := fs.Bool("trace", false, "Print the view after every command")
	keepGoing := fs.Bool("keep-going", false, "Skip lines that fail to decode")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	renderer, err := render.ForFormat(*output)
	if err != nil {
		return err
	}

	in := st.in
	if len(remaining) == 1 && remaining[0] != "-" {
		f, err := os.Open(remaining[0])
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		in = f
	}

	logger, closeLog, err := logging.Open(cfg.LogFile, st.err, cfg.LoggingOptions())
	if err != nil {
		return err
	}
	defer closeLog()

	buf := render.NewBuffer()
	ctrl := todo.NewController(buf, append(cfg.ControllerOptions(), todo.WithLogger(logger))...)
	ctrl.Start()

	runner := &command.Runner{
		Controller: ctrl,
		Logger:     logger,
		KeepGoing:  *keepGoing,
	}
	if *trace {
		runner.AfterEach = func(line int, c command.Command) error {
			fmt.Fprintf(st.out, "--- line %d: %s\n", line, c.Op)
			return buf.RenderTo(st.out, renderer)
		}
	}

	res, err := runner.Run(ctx, in)
	if err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	logger.Info("script finished", "applied", res.Applied, "rejected", res.Rejected, "invalid", res.Invalid)

	if *trace {
		fmt.Fprintln(st.out, "--- final")
	}
	return buf.RenderTo(st.out, renderer)
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string, st streams) error {
	fs := flag.NewFlagSet("todolist config", flag.ContinueOnError)
	fs.SetOutput(st.err)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	if *example {
		_, err := io.WriteString(st.out, config.ExampleConfig())
		return err
	}

	fmt.Fprintln(st.out, "Configuration")
	fmt.Fprintln(st.out, "=============")
	fmt.Fprintln(st.out)
	for _, key := range config.Keys() {
		value := cws.Config.Value(key)
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(st.out, "  %-15s %-20s [%s]\n", key, value, cws.Sources[key])
	}
	fmt.Fprintln(st.out)

	files := config.ConfigFiles()
	if len(files) == 0 {
		fmt.Fprintln(st.out, "No config files found.")
		return nil
	}
	fmt.Fprintln(st.out, "Config files:")
	for _, f := range files {
		fmt.Fprintf(st.out, "  %s\n", f)
	}
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todolist version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todolist - a small in-memory task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todolist [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui            Interactive task list (default command)")
	fmt.Fprintln(w, "  script [file]  Apply JSON-lines commands from file or stdin")
	fmt.Fprintln(w, "  config         Show effective configuration and sources")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -inline")
	fmt.Fprintln(w, "        Draw inline instead of using the alternate screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Script Options:")
	fmt.Fprintln(w, "  -output string")
	fmt.Fprintln(w, "        Output format (text|html)")
	fmt.Fprintln(w, "  -trace")
	fmt.Fprintln(w, "        Print the view after every command")
	fmt.Fprintln(w, "  -keep-going")
	fmt.Fprintln(w, "        Skip lines that fail to decode")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Script lines:")
	fmt.Fprintln(w, `  {"op":"add","description":"Buy milk","due":"2025-06-01"}`)
	fmt.Fprintln(w, `  {"op":"toggle","id":1}`)
	fmt.Fprintln(w, `  {"op":"delete","id":1}`)
	fmt.Fprintln(w, `  {"op":"filter","filter":"active"}`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
}
