package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"time"
)

// State tracks the bridge lifecycle. Transitions:
// NotStarted -> Starting -> Ready <-> Busy -> Ready | Failed -> Terminated.
// Failed and Terminated are terminal for command traffic; a failed bridge is
// never restarted within a session.
type State int

const (
	StateNotStarted State = iota
	StateStarting
	StateReady
	StateBusy
	StateFailed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateStarting:
		return "starting"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	case StateFailed:
		return "failed"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Command is one request line sent to the bridge process.
type Command struct {
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one response line read back from the bridge process.
type Response struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    ErrorCode       `json:"code,omitempty"`
}

// OpErr converts an unsuccessful response into a structured OpError.
// Returns nil for successful responses.
func (r *Response) OpErr() *OpError {
	if r.Success {
		return nil
	}
	msg := r.Error
	if msg == "" {
		msg = "unknown bridge error"
	}
	return NewOpError(r.Code, "%s", msg)
}

var (
	// ErrTerminated is returned for sends after Close or process exit.
	ErrTerminated = errors.New("bridge terminated")
	// ErrFailed is returned for sends after the bridge entered the failed state.
	ErrFailed = errors.New("bridge failed")
	// ErrBusy is returned when a send overlaps an in-flight call. The
	// dispatcher serialises calls, so hitting this indicates misuse.
	ErrBusy = errors.New("bridge busy")
)

// Options configures a Bridge.
type Options struct {
	PythonPath     string
	ScriptPath     string
	StartupTimeout time.Duration
	CallTimeout    time.Duration
	Logger         *log.Logger
}

// Bridge owns the long-lived Python helper process and is the only path to
// it: callers never see the process handle. One JSON request line in, one
// JSON response line out, strictly one call at a time.
type Bridge struct {
	opts Options

	mu    sync.Mutex
	state State

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	respCh chan readResult

	logger *log.Logger
}

type readResult struct {
	line []byte
	err  error
}

// NewBridge builds an unstarted bridge. The process is spawned lazily on the
// first call that needs it.
func NewBridge(opts Options) *Bridge {
	if opts.StartupTimeout <= 0 {
		opts.StartupTimeout = 15 * time.Second
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 60 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[BRIDGE] ", log.LstdFlags)
	}
	return &Bridge{opts: opts, state: StateNotStarted, logger: logger}
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Start spawns the process and performs the check_connection handshake.
// Calling Start on an already-ready bridge is a no-op.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	switch b.state {
	case StateReady, StateBusy:
		b.mu.Unlock()
		return nil
	case StateFailed:
		b.mu.Unlock()
		return ErrFailed
	case StateTerminated:
		b.mu.Unlock()
		return ErrTerminated
	case StateStarting:
		b.mu.Unlock()
		return fmt.Errorf("bridge already starting")
	}
	b.state = StateStarting
	b.mu.Unlock()

	if err := b.spawn(); err != nil {
		b.fail()
		return NewOpError(CodePythonError, "failed to spawn python bridge: %v", err)
	}

	// Handshake: the first roundtrip both proves the process answers and
	// that Resolve itself is reachable.
	resp, err := b.roundtrip(ctx, Command{Op: "check_connection"}, b.opts.StartupTimeout)
	if err != nil {
		b.fail()
		return NewOpError(CodePythonError, "bridge handshake failed: %v", err)
	}
	if opErr := resp.OpErr(); opErr != nil {
		b.fail()
		return opErr
	}

	b.mu.Lock()
	b.state = StateReady
	b.mu.Unlock()
	b.logger.Printf("bridge ready (python=%s script=%s)", b.opts.PythonPath, b.opts.ScriptPath)
	return nil
}

func (b *Bridge) spawn() error {
	cmd := exec.Command(b.opts.PythonPath, b.opts.ScriptPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	b.cmd = cmd
	b.attach(stdin, stdout)

	// Diagnostics from the Python side go to stderr; forward them.
	go func() {
		sc := bufio.NewScanner(stderr)
		for sc.Scan() {
			b.logger.Printf("python: %s", sc.Text())
		}
	}()
	return nil
}

// attach wires the bridge to a request writer and response reader and starts
// the response pump. Split out from spawn so tests can run the protocol over
// in-memory pipes.
func (b *Bridge) attach(stdin io.WriteCloser, stdout io.Reader) {
	b.stdin = stdin
	b.respCh = make(chan readResult, 1)
	go func(ch chan readResult) {
		sc := bufio.NewScanner(stdout)
		sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
		for sc.Scan() {
			line := make([]byte, len(sc.Bytes()))
			copy(line, sc.Bytes())
			ch <- readResult{line: line}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		ch <- readResult{err: err}
		close(ch)
	}(b.respCh)
}

// roundtrip issues one request line and waits for one response line. It does
// not touch the state machine; Send wraps it with Ready/Busy bookkeeping.
func (b *Bridge) roundtrip(ctx context.Context, cmd Command, timeout time.Duration) (*Response, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("marshal bridge command: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := b.stdin.Write(payload); err != nil {
		return nil, fmt.Errorf("write to bridge: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case rr, ok := <-b.respCh:
		if !ok || rr.err != nil {
			return nil, fmt.Errorf("bridge process closed its output")
		}
		var resp Response
		if err := json.Unmarshal(rr.line, &resp); err != nil {
			return nil, fmt.Errorf("malformed bridge response %q: %w", truncate(rr.line, 200), err)
		}
		return &resp, nil
	case <-timer.C:
		return nil, fmt.Errorf("bridge call %q timed out after %s", cmd.Op, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Send executes one operation against the bridge. The returned Response may
// carry success:false with an error code; that is an operation-level outcome,
// not a bridge failure. A non-nil error means the bridge itself is unusable
// and has moved to Failed (or was already terminal).
func (b *Bridge) Send(ctx context.Context, op string, params json.RawMessage) (*Response, error) {
	if err := b.Start(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	switch b.state {
	case StateBusy:
		b.mu.Unlock()
		return nil, ErrBusy
	case StateFailed:
		b.mu.Unlock()
		return nil, ErrFailed
	case StateTerminated:
		b.mu.Unlock()
		return nil, ErrTerminated
	}
	b.state = StateBusy
	b.mu.Unlock()

	resp, err := b.roundtrip(ctx, Command{Op: op, Params: params}, b.opts.CallTimeout)
	if err != nil {
		b.logger.Printf("bridge call %s failed: %v", op, err)
		b.fail()
		return nil, NewOpError(CodePythonError, "bridge call %s: %v", op, err)
	}

	b.mu.Lock()
	b.state = StateReady
	b.mu.Unlock()
	return resp, nil
}

// CheckConnection performs the liveness control call.
func (b *Bridge) CheckConnection(ctx context.Context) (*ConnectionInfo, error) {
	resp, err := b.Send(ctx, "check_connection", nil)
	if err != nil {
		return nil, err
	}
	if opErr := resp.OpErr(); opErr != nil {
		return nil, opErr
	}
	var info ConnectionInfo
	if err := json.Unmarshal(resp.Result, &info); err != nil {
		return nil, fmt.Errorf("decode connection info: %w", err)
	}
	return &info, nil
}

// GetContext fetches a fresh context snapshot.
func (b *Bridge) GetContext(ctx context.Context) (*Context, error) {
	resp, err := b.Send(ctx, "get_context", nil)
	if err != nil {
		return nil, err
	}
	if opErr := resp.OpErr(); opErr != nil {
		return nil, opErr
	}
	var snapshot Context
	if err := json.Unmarshal(resp.Result, &snapshot); err != nil {
		return nil, fmt.Errorf("decode context snapshot: %w", err)
	}
	return &snapshot, nil
}

func (b *Bridge) fail() {
	b.mu.Lock()
	if b.state != StateTerminated {
		b.state = StateFailed
	}
	b.mu.Unlock()
	b.drain()
	b.reap()
}

// drain hands the response channel to a throwaway reader. After a timeout a
// late line would otherwise fill the one-slot buffer and wedge the pump
// before it can reach EOF and exit.
func (b *Bridge) drain() {
	b.mu.Lock()
	ch := b.respCh
	b.respCh = nil
	b.mu.Unlock()
	if ch == nil {
		return
	}
	go func() {
		for range ch {
		}
	}()
}

// Close terminates the owned process. Safe to call on every exit path and
// more than once.
func (b *Bridge) Close() error {
	b.mu.Lock()
	prev := b.state
	b.state = StateTerminated
	b.mu.Unlock()
	if prev == StateNotStarted || prev == StateTerminated {
		return nil
	}
	b.drain()
	b.reap()
	return nil
}

func (b *Bridge) reap() {
	if b.stdin != nil {
		_ = b.stdin.Close()
	}
	if b.cmd != nil && b.cmd.Process != nil {
		done := make(chan struct{})
		go func() {
			_ = b.cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			_ = b.cmd.Process.Kill()
			<-done
		}
		b.cmd = nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
