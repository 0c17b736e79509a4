package plan

import (
	"errors"
	"reflect"
	"testing"

	"github.com/decocereus/magic-agent/internal/resolve"
)

func testSnapshot() *resolve.Context {
	return &resolve.Context{
		Product: "DaVinci Resolve",
		Version: "19.0",
		Project: &resolve.ProjectInfo{Name: "Demo", TimelineCount: 2},
		Timeline: &resolve.TimelineInfo{
			Name:      "Main",
			FrameRate: 24,
			Tracks: resolve.TrackLayout{
				Video: []resolve.Track{
					{Index: 1, Name: "Video 1", Clips: []resolve.ClipInfo{
						{Index: 0, Name: "intro.mov"},
						{Index: 1, Name: "b-roll.mov"},
					}},
				},
				Audio: []resolve.Track{
					{Index: 1, Name: "Audio 1"},
				},
			},
		},
		MediaPool: &resolve.MediaPoolInfo{Clips: []string{"intro.mov", "b-roll.mov"}},
	}
}

func mustParse(t *testing.T, payload string) *Plan {
	t.Helper()
	p, declined, err := Parse([]byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if declined != nil {
		t.Fatalf("fixture unexpectedly declined")
	}
	return p
}

func expectValidationError(t *testing.T, err error, stage string, code resolve.ErrorCode) *ValidationError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation to fail")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Stage != stage {
		t.Fatalf("expected stage %q, got %q (%v)", stage, verr.Stage, verr)
	}
	if verr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, verr.Code, verr)
	}
	return verr
}

func TestValidateHappyPath(t *testing.T) {
	p := mustParse(t, `{
        "version": "1.0",
        "preconditions": [
            {"type": "project_open"},
            {"type": "timeline_active"},
            {"type": "track_exists", "track_type": "video", "index": 1},
            {"type": "clip_exists", "track": 1, "index": 1},
            {"type": "media_exists", "name": "intro.mov"}
        ],
        "operations": [
            {"op": "add_marker", "params": {"frame": 100, "color": "Blue", "name": "review"}},
            {"op": "set_clip_property", "params": {"selector": {"index": 0}, "properties": {"Opacity": 50, "FlipX": true}}},
            {"op": "save_project"}
        ]
    }`)
	validated, err := Validate(p, testSnapshot())
	if err != nil {
		t.Fatalf("expected plan to validate: %v", err)
	}
	if got := len(validated.Operations()); got != 3 {
		t.Fatalf("expected 3 validated operations, got %d", got)
	}
}

func TestValidateRejectsVersionMismatch(t *testing.T) {
	p := mustParse(t, `{"version": "2.0", "operations": [{"op": "save_project"}]}`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "version", resolve.CodeSchemaError)
}

func TestValidateRejectsUnknownOperation(t *testing.T) {
	p := mustParse(t, `{"version": "1.0", "operations": [{"op": "add_cross_dissolve"}]}`)
	_, err := Validate(p, testSnapshot())
	verr := expectValidationError(t, err, "operation", resolve.CodeInvalidProperty)
	if verr.OpIndex != 0 {
		t.Fatalf("expected failure at operation 0, got %d", verr.OpIndex)
	}
}

func TestValidateRejectsMissingRequiredParam(t *testing.T) {
	p := mustParse(t, `{"version": "1.0", "operations": [{"op": "add_marker", "params": {"color": "Blue"}}]}`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidValue)
}

func TestValidateRejectsUnknownParam(t *testing.T) {
	p := mustParse(t, `{"version": "1.0", "operations": [{"op": "save_project", "params": {"force": true}}]}`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidProperty)
}

func TestValidateRejectsBadEnumValue(t *testing.T) {
	p := mustParse(t, `{"version": "1.0", "operations": [{"op": "add_marker", "params": {"frame": 10, "color": "Magenta"}}]}`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidValue)
}

func TestValidateRejectsOpacityOutOfRange(t *testing.T) {
	p := mustParse(t, `{
        "version": "1.0",
        "operations": [
            {"op": "set_clip_property", "params": {"selector": {"index": 0}, "properties": {"Opacity": 150}}}
        ]
    }`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidValue)
}

func TestValidateRejectsUnknownClipProperty(t *testing.T) {
	p := mustParse(t, `{
        "version": "1.0",
        "operations": [
            {"op": "set_clip_property", "params": {"selector": {"index": 0}, "properties": {"Saturation": 50}}}
        ]
    }`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidProperty)
}

func TestValidateRejectsBadSelector(t *testing.T) {
	p := mustParse(t, `{
        "version": "1.0",
        "operations": [
            {"op": "delete_clips", "params": {"selector": {"index": 0, "name": "intro.mov"}}}
        ]
    }`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidValue)
}

func TestValidatePreconditionFailureCodes(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		code    resolve.ErrorCode
	}{
		{"missing timeline", `{"version": "1.0", "preconditions": [{"type": "timeline_exists", "name": "Other"}], "operations": [{"op": "save_project"}]}`, resolve.CodeTimelineNotFound},
		{"missing track", `{"version": "1.0", "preconditions": [{"type": "track_exists", "track_type": "video", "index": 5}], "operations": [{"op": "save_project"}]}`, resolve.CodeTrackNotFound},
		{"missing clip", `{"version": "1.0", "preconditions": [{"type": "clip_exists", "track": 1, "index": 9}], "operations": [{"op": "save_project"}]}`, resolve.CodeClipNotFound},
		{"missing media", `{"version": "1.0", "preconditions": [{"type": "media_exists", "name": "outro.mov"}], "operations": [{"op": "save_project"}]}`, resolve.CodeMediaNotFound},
	}
	for _, tc := range cases {
		p := mustParse(t, tc.payload)
		_, err := Validate(p, testSnapshot())
		verr := expectValidationError(t, err, "precondition", tc.code)
		if verr.OpIndex != -1 {
			t.Errorf("%s: precondition failures carry no op index, got %d", tc.name, verr.OpIndex)
		}
	}
}

func TestValidatePreconditionsRunInOrder(t *testing.T) {
	// With no project open, the earlier project_open check must report
	// NO_PROJECT before the later timeline check gets a chance to run.
	p := mustParse(t, `{
        "version": "1.0",
        "preconditions": [
            {"type": "project_open"},
            {"type": "timeline_exists", "name": "Main"}
        ],
        "operations": [{"op": "save_project"}]
    }`)
	snapshot := &resolve.Context{Product: "DaVinci Resolve", Version: "19.0"}
	_, err := Validate(p, snapshot)
	expectValidationError(t, err, "precondition", resolve.CodeNoProject)
}

func TestValidateOperationChecksRunBeforePreconditions(t *testing.T) {
	// An invalid operation fails validation even when a precondition would
	// also fail: static checks come first.
	p := mustParse(t, `{
        "version": "1.0",
        "preconditions": [{"type": "media_exists", "name": "outro.mov"}],
        "operations": [{"op": "no_such_op"}]
    }`)
	_, err := Validate(p, testSnapshot())
	expectValidationError(t, err, "operation", resolve.CodeInvalidProperty)
}

func TestValidateDoesNotMutateSnapshot(t *testing.T) {
	before := testSnapshot()
	after := testSnapshot()
	p := mustParse(t, `{
        "version": "1.0",
        "preconditions": [{"type": "clip_exists", "track": 1, "index": 0}],
        "operations": [{"op": "set_clip_property", "params": {"selector": {"all": true}, "properties": {"ZoomX": 80}}}]
    }`)
	if _, err := Validate(p, after); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("validation mutated the snapshot")
	}
}
