package interpreter

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/viant/pyast/ast"
	"golang.org/x/sync/semaphore"
)

//go:embed dump.py
var script string

// DefaultPython is the interpreter executable used when none is configured.
const DefaultPython = "python3"

// ErrUnsupportedVersion is returned when the interpreter grammar is outside the supported range.
var ErrUnsupportedVersion = errors.New("unsupported interpreter version")

// Process runs one interpreter process per request.
type Process struct {
	python  string
	timeout time.Duration
	limit   int64
	sem     *semaphore.Weighted
	logger  *slog.Logger
}

// Option configures a Process.
type Option func(p *Process)

// WithTimeout bounds every interpreter run.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Process) {
		p.timeout = timeout
	}
}

// WithMaxProcesses bounds the number of interpreters running at once.
func WithMaxProcesses(n int) Option {
	return func(p *Process) {
		if n > 0 {
			p.limit = int64(n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Process) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcess creates a runner executing python; an empty name uses DefaultPython.
func NewProcess(python string, opts ...Option) *Process {
	if python == "" {
		python = DefaultPython
	}
	ret := &Process{python: python, limit: int64(runtime.NumCPU()), logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	ret.sem = semaphore.NewWeighted(ret.limit)
	return ret
}

// Python returns the interpreter executable.
func (p *Process) Python() string {
	return p.python
}

// Dump parses the request source with the interpreter's ast module.
func (p *Process) Dump(ctx context.Context, request *Request) (*Response, error) {
	mode := request.Mode
	if mode == "" {
		mode = ModeExec
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unsupported mode: %v", mode)
	}
	filename := request.Filename
	if filename == "" {
		filename = "<unknown>"
	}
	args := []string{"-c", script, string(mode), filename}
	if request.TypeComments {
		args = append(args, "1")
	}
	started := time.Now()
	stdout, err := p.run(ctx, bytes.NewReader(request.Source), args...)
	if err != nil {
		return nil, err
	}
	response, err := DecodeResponse(stdout)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("interpreter dump",
		"python", p.python,
		"filename", filename,
		"mode", string(mode),
		"bytes", len(request.Source),
		"version", response.Version,
		"syntaxError", response.Syntax != nil,
		"elapsed", time.Since(started))
	if !ast.SupportedVersion(response.Version) {
		return nil, fmt.Errorf("%w: %v, supported %v - %v", ErrUnsupportedVersion, response.Version, ast.MinGrammarVersion, ast.MaxGrammarVersion)
	}
	return response, nil
}

// Version returns the interpreter version, for example "3.12.1".
func (p *Process) Version(ctx context.Context) (string, error) {
	stdout, err := p.run(ctx, nil, "-c", "import platform; print(platform.python_version())")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}

func (p *Process) run(ctx context.Context, stdin *bytes.Reader, args ...string) ([]byte, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire interpreter slot: %w", err)
	}
	defer p.sem.Release(1)
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, p.python, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("interpreter %v interrupted: %w", p.python, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			p.logger.Warn("interpreter failed", "python", p.python, "exitCode", exitErr.ExitCode(), "stderr", lastLine(stderr.String()))
			return nil, fmt.Errorf("interpreter %v exited with %d: %v: %w", p.python, exitErr.ExitCode(), lastLine(stderr.String()), err)
		}
		return nil, fmt.Errorf("failed to run interpreter %v: %w", p.python, err)
	}
	return stdout.Bytes(), nil
}

func lastLine(text string) string {
	text = strings.TrimSpace(text)
	if index := strings.LastIndexByte(text, '\n'); index != -1 {
		return text[index+1:]
	}
	return text
}
