package resolve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"testing"
	"time"
)

// fakePeer emulates the Python side of the protocol over in-memory pipes:
// it reads one request line and answers with the next scripted response.
// An empty script entry means "never answer" (simulates a hang).
func fakePeer(t *testing.T, script []string) *Bridge {
	t.Helper()
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	go func() {
		sc := bufio.NewScanner(reqR)
		i := 0
		for sc.Scan() {
			var cmd Command
			if err := json.Unmarshal(sc.Bytes(), &cmd); err != nil {
				t.Errorf("peer got malformed request: %v", err)
				return
			}
			if i >= len(script) {
				return
			}
			line := script[i]
			i++
			if line == "" {
				continue // hang: no response for this request
			}
			if _, err := io.WriteString(respW, line+"\n"); err != nil {
				return
			}
		}
	}()

	b := NewBridge(Options{
		CallTimeout:    200 * time.Millisecond,
		StartupTimeout: 200 * time.Millisecond,
		Logger:         log.New(io.Discard, "", 0),
	})
	b.attach(reqW, respR)
	b.state = StateReady
	return b
}

func TestSendSuccess(t *testing.T) {
	b := fakePeer(t, []string{`{"success":true,"result":{"modified":3}}`})

	resp, err := b.Send(context.Background(), "set_clip_property", json.RawMessage(`{"selector":{"track":1,"all":true},"properties":{"Opacity":50.0}}`))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success, got %+v", resp)
	}
	var result struct {
		Modified int `json:"modified"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Modified != 3 {
		t.Fatalf("modified = %d, want 3", result.Modified)
	}
	if got := b.State(); got != StateReady {
		t.Fatalf("state after success = %s, want ready", got)
	}
}

func TestSendOperationError(t *testing.T) {
	b := fakePeer(t, []string{`{"success":false,"error":"No project is open","code":"NO_PROJECT"}`})

	resp, err := b.Send(context.Background(), "add_marker", json.RawMessage(`{"frame":10}`))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	opErr := resp.OpErr()
	if opErr == nil {
		t.Fatal("expected operation error")
	}
	if opErr.Code != CodeNoProject {
		t.Fatalf("code = %s, want NO_PROJECT", opErr.Code)
	}
	// An operation-level failure leaves the bridge usable.
	if got := b.State(); got != StateReady {
		t.Fatalf("state = %s, want ready", got)
	}
}

func TestSendTimeoutFailsBridge(t *testing.T) {
	b := fakePeer(t, []string{""})

	_, err := b.Send(context.Background(), "start_render", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	opErr, ok := err.(*OpError)
	if !ok {
		t.Fatalf("error type = %T, want *OpError", err)
	}
	if opErr.Code != CodePythonError {
		t.Fatalf("code = %s, want PYTHON_ERROR", opErr.Code)
	}
	if got := b.State(); got != StateFailed {
		t.Fatalf("state after timeout = %s, want failed", got)
	}

	// No further commands once failed.
	if _, err := b.Send(context.Background(), "save_project", nil); err != ErrFailed {
		t.Fatalf("send after failure = %v, want ErrFailed", err)
	}
}

func TestLateResponseDoesNotWedgeReader(t *testing.T) {
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()
	go func() {
		sc := bufio.NewScanner(reqR)
		for sc.Scan() {
		}
	}()

	b := NewBridge(Options{
		CallTimeout:    50 * time.Millisecond,
		StartupTimeout: 50 * time.Millisecond,
		Logger:         log.New(io.Discard, "", 0),
	})
	b.attach(reqW, respR)
	b.state = StateReady

	if _, err := b.Send(context.Background(), "start_render", nil); err == nil {
		t.Fatal("expected timeout error")
	}

	// The answer arrives after the deadline. The reader must keep consuming
	// so late lines cannot fill its buffer and block it before EOF; both
	// writes below stall forever if it stops reading.
	done := make(chan struct{})
	go func() {
		io.WriteString(respW, `{"success":true}`+"\n")
		io.WriteString(respW, `{"success":true}`+"\n")
		respW.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("late responses were never consumed")
	}
}

func TestSendMalformedResponseFailsBridge(t *testing.T) {
	b := fakePeer(t, []string{`this is not json`})

	_, err := b.Send(context.Background(), "get_render_jobs", nil)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got := b.State(); got != StateFailed {
		t.Fatalf("state = %s, want failed", got)
	}
}

func TestCloseIsTerminal(t *testing.T) {
	b := fakePeer(t, nil)
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := b.State(); got != StateTerminated {
		t.Fatalf("state = %s, want terminated", got)
	}
	if _, err := b.Send(context.Background(), "save_project", nil); err != ErrTerminated {
		t.Fatalf("send after close = %v, want ErrTerminated", err)
	}
	// Close twice is fine.
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestGetContextDecodesSnapshot(t *testing.T) {
	snapshot := `{"success":true,"result":{"product":"DaVinci Resolve","version":"19.0",` +
		`"project":{"name":"Demo","timeline_count":2},` +
		`"timeline":{"name":"Main","frame_rate":24,"resolution":[1920,1080],"start_frame":0,"end_frame":240,` +
		`"tracks":{"video":[{"index":1,"name":"V1","clips":[{"index":0,"name":"a.mov","start":0,"end":48,"duration":48}]}],"audio":[]},` +
		`"markers":[]},` +
		`"media_pool":{"clips":["a.mov"],"folders":[]}}}`
	b := fakePeer(t, []string{snapshot})

	snap, err := b.GetContext(context.Background())
	if err != nil {
		t.Fatalf("GetContext: %v", err)
	}
	if snap.Project == nil || snap.Project.Name != "Demo" {
		t.Fatalf("project = %+v", snap.Project)
	}
	track, ok := snap.Timeline.TrackByIndex("video", 1)
	if !ok || len(track.Clips) != 1 {
		t.Fatalf("video track 1 = %+v, ok=%v", track, ok)
	}
	if !snap.MediaPool.HasMediaClip("a.mov") {
		t.Fatal("media pool should contain a.mov")
	}
}
