package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/viant/pyast"
	"github.com/viant/pyast/ast"
	"github.com/viant/pyast/interpreter"
)

const (
	historyFile = ".pyast_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

const replHelp = `REPL commands:
  :mode <exec|eval|single|func_type>   Change the parse mode
  :indent <n>                          Dump indentation, 0 renders one line
  :attributes                          Toggle location attributes
  :quit                                Exit the REPL
`

// prompter reads one line of input.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// session holds the REPL settings changed by commands.
type session struct {
	mode       interpreter.Mode
	indent     int
	attributes bool
}

func cmdRepl(ctx context.Context, a *app, args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	mode := fs.String("mode", string(interpreter.ModeSingle), "parse mode")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if !interpreter.Mode(*mode).Valid() {
		fmt.Fprintf(a.stderr, "%s: unsupported mode %q\n", appName, *mode)
		return 2
	}
	fmt.Fprintf(a.stdout, "pyast %s REPL (Python %s grammar)\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", version, ast.GrammarVersion)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()
	return a.repl(ctx, ln, ln.AppendHistory, &session{mode: interpreter.Mode(*mode), indent: 4})
}

// repl evaluates entries until EOF or :quit.
func (a *app) repl(ctx context.Context, p prompter, history func(string), s *session) int {
	for {
		if ctx.Err() != nil {
			return 130
		}
		e, ok := a.readEntry(ctx, p, s.mode)
		if !ok {
			fmt.Fprintln(a.stdout)
			return 0
		}
		trimmed := strings.TrimSpace(e.source)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if s.command(a, trimmed) {
				return 0
			}
			continue
		}
		history(strings.ReplaceAll(e.source, "\n", " "))
		if e.err != nil {
			a.reportError(e.err)
			continue
		}
		opts := ast.DumpOptions{IncludeAttributes: s.attributes}
		if s.indent > 0 {
			opts.Indent = strings.Repeat(" ", s.indent)
		}
		fmt.Fprintln(a.stdout, blue(ast.DumpWith(e.mod, opts)))
	}
}

// command runs a REPL command and reports whether the REPL should exit.
func (s *session) command(a *app, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(a.stdout, replHelp)
	case ":mode":
		if len(fields) != 2 || !interpreter.Mode(fields[1]).Valid() {
			fmt.Fprintln(a.stderr, red("usage: :mode <exec|eval|single|func_type>"))
			break
		}
		s.mode = interpreter.Mode(fields[1])
		fmt.Fprintf(a.stdout, "mode %s\n", s.mode)
	case ":indent":
		n := -1
		if len(fields) == 2 {
			n, _ = strconv.Atoi(fields[1])
		}
		if n < 0 {
			fmt.Fprintln(a.stderr, red("usage: :indent <n>"))
			break
		}
		s.indent = n
	case ":attributes":
		s.attributes = !s.attributes
		fmt.Fprintf(a.stdout, "attributes %v\n", s.attributes)
	default:
		fmt.Fprintln(a.stderr, "unknown command. Type :help for commands.")
	}
	return false
}

// entry is one REPL input with its parse result.
type entry struct {
	source string
	mod    ast.Mod
	err    error
}

// readEntry reads lines until they form a complete entry and returns it parsed.
// A block stays open until an empty line.
func (a *app) readEntry(ctx context.Context, p prompter, mode interpreter.Mode) (*entry, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return nil, false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return nil, false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || strings.TrimSpace(src) == "" {
			return &entry{source: src}, true
		}
		if openBlock(src) {
			continue
		}
		mod, err := a.parser.ParseMode(ctx, []byte(src+"\n"), "<stdin>", mode)
		if err != nil && incomplete(err) && line != "" {
			continue
		}
		return &entry{source: src, mod: mod, err: err}, true
	}
}

// openBlock reports whether src starts a compound statement whose body has
// not been terminated by an empty line.
func openBlock(src string) bool {
	lines := strings.Split(src, "\n")
	last := lines[len(lines)-1]
	if strings.HasSuffix(strings.TrimRight(last, " \t"), "\\") {
		return true
	}
	if strings.TrimSpace(last) == "" {
		return false
	}
	for _, line := range lines {
		if strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
			return true
		}
	}
	return false
}

var incompleteMessages = []string{
	"was never closed",
	"unexpected EOF",
	"incomplete input",
	"unterminated triple-quoted string",
	"expected an indented block",
}

// incomplete reports whether err is a syntax error that more input could fix.
func incomplete(err error) bool {
	var syntaxErr *pyast.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return false
	}
	for _, message := range incompleteMessages {
		if strings.Contains(syntaxErr.Message, message) {
			return true
		}
	}
	return false
}
