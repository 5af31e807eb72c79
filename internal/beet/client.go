package beet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"beetsedit/internal/logging"
)

// Confirmation is written to beets' stdin to accept the edited values.
const Confirmation = "A\n"

// ErrEditFailed marks a beets process that exited unsuccessfully.
var ErrEditFailed = errors.New("beet edit failed")

// Phase names the two edits performed per matching directory.
type Phase string

const (
	PhaseTracks Phase = "track edit"
	PhaseAlbum  Phase = "album edit"
)

// Invocation is one process launch.
type Invocation struct {
	Binary string
	Args   []string
	Env    []string
	Stdin  []byte
	Stdout io.Writer
	Stderr io.Writer
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, inv Invocation) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds each beets process. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithEnv adds KEY=VALUE entries to every spawned process.
func WithEnv(env ...string) Option {
	return func(c *Client) {
		c.env = append(c.env, env...)
	}
}

// WithOutput redirects the child's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Client) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "beet")
	}
}

// Client wraps beets CLI interactions.
type Client struct {
	binary  string
	editor  string
	timeout time.Duration
	env     []string
	stdout  io.Writer
	stderr  io.Writer
	exec    Executor
	logger  *slog.Logger
}

// New constructs a client for binary that installs editor as EDITOR.
func New(binary, editor string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("beet binary required")
	}
	if strings.TrimSpace(editor) == "" {
		return nil, errors.New("editor command required")
	}
	client := &Client{
		binary: binary,
		editor: editor,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exec:   commandExecutor{},
		logger: logging.NewComponentLogger(nil, "beet"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// EditTracks runs `beet edit <query>` with the editor in track mode.
func (c *Client) EditTracks(ctx context.Context, query string) error {
	return c.edit(ctx, PhaseTracks, []string{"edit", query}, "edit-tracks")
}

// EditAlbum runs `beet edit -a <query>` with the editor in album mode.
func (c *Client) EditAlbum(ctx context.Context, query string) error {
	return c.edit(ctx, PhaseAlbum, []string{"edit", "-a", query}, "edit-album")
}

func (c *Client) edit(ctx context.Context, phase Phase, args []string, mode string) error {
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	env := append([]string{"EDITOR=" + c.editor + " " + mode}, c.env...)
	inv := Invocation{
		Binary: c.binary,
		Args:   args,
		Env:    env,
		Stdin:  []byte(Confirmation),
		Stdout: c.stdout,
		Stderr: c.stderr,
	}

	c.logger.Info("starting beet", logging.String("phase", string(phase)), logging.String("args", strings.Join(args, " ")))
	started := time.Now()
	if err := c.exec.Run(runCtx, inv); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s timed out after %s: %w", ErrEditFailed, phase, c.timeout, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrEditFailed, phase, err)
	}
	c.logger.Debug("beet finished", logging.String("phase", string(phase)), logging.Duration("elapsed", time.Since(started)))
	return nil
}

// waitDelay bounds how long Wait keeps copying output after the process is
// killed, since grandchildren may still hold the pipes open.
const waitDelay = 2 * time.Second

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, inv Invocation) error {
	cmd := exec.CommandContext(ctx, inv.Binary, inv.Args...) //nolint:gosec
	cmd.Env = append(os.Environ(), inv.Env...)
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	cmd.WaitDelay = waitDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	// Wait closes stdin once the process has exited. A process that exits
	// without reading leaves a broken pipe, which its exit status supersedes.
	_, writeErr := stdin.Write(inv.Stdin)
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait: %w", err)
	}
	if writeErr != nil && !errors.Is(writeErr, syscall.EPIPE) && !errors.Is(writeErr, os.ErrClosed) {
		return fmt.Errorf("write confirmation: %w", writeErr)
	}
	return nil
}
