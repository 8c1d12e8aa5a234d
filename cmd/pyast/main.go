package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/afs"
	"github.com/viant/pyast"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/interpreter"
)

const appName = "pyast"

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

// app carries the parser and streams shared by commands.
type app struct {
	config *pyast.Config
	parser *pyast.Parser
	logger *slog.Logger
	fs     afs.Service
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	// interpreterVersion reports the version of the configured interpreter.
	interpreterVersion func(ctx context.Context) (string, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	cmd, args := args[0], args[1:]
	var handler func(ctx context.Context, a *app, args []string) int
	switch cmd {
	case "parse":
		handler = cmdParse
	case "inspect":
		handler = cmdInspect
	case "repl":
		handler = cmdRepl
	case "serve":
		handler = cmdServe
	case "version":
		handler = cmdVersion
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, cmd)
		usage(stderr)
		return 2
	}
	a, args, err := newApp(ctx, cmd, args, stdin, stdout, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 2
	}
	return handler(ctx, a, args)
}

// newParser builds the parser of a command; tests replace it.
var newParser = func(config *pyast.Config, logger *slog.Logger) *pyast.Parser {
	return pyast.New(pyast.WithConfig(config), pyast.WithLogger(logger))
}

// newApp strips the common flags from args and loads the configuration.
func newApp(ctx context.Context, cmd string, args []string, stdin io.Reader, stdout, stderr io.Writer) (*app, []string, error) {
	var configURL, python, logLevel string
	var rest []string
	for i := 0; i < len(args); i++ {
		name, value, hasValue := splitFlag(args[i])
		switch name {
		case "config", "python", "log-level":
			if !hasValue {
				if i+1 >= len(args) {
					return nil, nil, fmt.Errorf("%s: flag needs an argument: -%s", cmd, name)
				}
				i++
				value = args[i]
			}
			switch name {
			case "config":
				configURL = value
			case "python":
				python = value
			case "log-level":
				logLevel = value
			}
		default:
			rest = append(rest, args[i])
		}
	}
	config := pyast.DefaultConfig()
	if configURL != "" {
		var err error
		if config, err = pyast.LoadConfig(ctx, configURL); err != nil {
			return nil, nil, err
		}
	}
	if python != "" {
		config.Python = python
	}
	if logLevel != "" {
		config.Log.Level = logLevel
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(stderr)
	ret := &app{
		config: config,
		parser: newParser(config, logger),
		logger: logger,
		fs:     afs.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		interpreterVersion: func(ctx context.Context) (string, error) {
			return interpreter.NewProcess(config.Python, interpreter.WithLogger(logger)).Version(ctx)
		},
	}
	return ret, rest, nil
}

// splitFlag returns the name of a -name or -name=value argument.
func splitFlag(arg string) (string, string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", "", false
	}
	name := arg[1:]
	if name[0] == '-' {
		name = name[1:]
	}
	for i := 0; i < len(name); i++ {
		if name[i] == '=' {
			return name[:i], name[i+1:], true
		}
	}
	return name, "", false
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `pyast %s (Python %s grammar)

Usage:
  %s parse [-format dump|json|yaml|go] [-mode exec|eval|single|func_type] [file|-]
  %s inspect [-format json|yaml] [-documents] [-package] [-private] [-tests] <path>
  %s repl [-mode single|exec|eval]
  %s serve [-addr :8080]
  %s version

Common flags:
  -config <url>      YAML configuration
  -python <path>     Python interpreter
  -log-level <lvl>   debug, info, warn or error

`, version, ast.GrammarVersion, appName, appName, appName, appName, appName)
}

func cmdVersion(ctx context.Context, a *app, _ []string) int {
	fmt.Fprintf(a.stdout, "%s %s\n", appName, version)
	fmt.Fprintf(a.stdout, "grammar %s (supported %s-%s)\n", ast.GrammarVersion, ast.MinGrammarVersion, ast.MaxGrammarVersion)
	v, err := a.interpreterVersion(ctx)
	if err != nil {
		fmt.Fprintf(a.stdout, "interpreter %s: %s\n", a.config.Python, red(err.Error()))
		return 1
	}
	status := green("supported")
	if !ast.SupportedVersion(v) {
		status = red("unsupported")
	}
	fmt.Fprintf(a.stdout, "interpreter %s %s (%s)\n", a.config.Python, v, status)
	return 0
}
