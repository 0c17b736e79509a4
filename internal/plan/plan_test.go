package plan

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestParseExecutablePlan(t *testing.T) {
	payload := []byte(`{
        "version": "1.0",
        "target": {"project": "Demo", "timeline": "Main"},
        "preconditions": [
            {"type": "project_open"},
            {"type": "track_exists", "track_type": "video", "index": 1}
        ],
        "operations": [
            {"op": "append_to_timeline", "params": {"clips": ["intro.mov"]}},
            {"op": "save_project"}
        ]
    }`)
	p, declined, err := Parse(payload)
	if err != nil {
		t.Fatalf("expected payload to parse: %v", err)
	}
	if declined != nil {
		t.Fatalf("expected a plan, got a declined document")
	}
	if len(p.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(p.Operations))
	}
	if p.Operations[0].Op != "append_to_timeline" || p.Operations[1].Op != "save_project" {
		t.Fatalf("operation order not preserved: %v", p.Operations)
	}
	if p.Target == nil || p.Target.Project != "Demo" {
		t.Fatalf("target not decoded: %+v", p.Target)
	}
}

func TestParseDeclined(t *testing.T) {
	payload := []byte(`{
        "version": "1.0",
        "error": "cannot add cross dissolves",
        "suggestion": "transitions are not supported; try cutting instead"
    }`)
	p, declined, err := Parse(payload)
	if err != nil {
		t.Fatalf("expected declined document to parse: %v", err)
	}
	if p != nil {
		t.Fatalf("declined document must not produce a plan")
	}
	if declined.Error != "cannot add cross dissolves" {
		t.Fatalf("unexpected decline reason: %q", declined.Error)
	}
}

func TestParseRejectsHybridDocument(t *testing.T) {
	payload := []byte(`{
        "version": "1.0",
        "error": "nope",
        "operations": [{"op": "save_project"}]
    }`)
	if _, _, err := Parse(payload); err == nil {
		t.Fatalf("expected document with both error and operations to be rejected")
	}
}

func TestParseRejectsMissingVersion(t *testing.T) {
	payload := []byte(`{"operations": [{"op": "save_project"}]}`)
	if _, _, err := Parse(payload); err == nil {
		t.Fatalf("expected document without version to be rejected")
	}
}

func TestParseRejectsUnknownTopLevelField(t *testing.T) {
	payload := []byte(`{
        "version": "1.0",
        "operations": [{"op": "save_project"}],
        "notes": "free-form"
    }`)
	if _, _, err := Parse(payload); err == nil {
		t.Fatalf("expected unknown top-level field to be rejected")
	}
}

func TestEncodeParseRoundTripPreservesOrder(t *testing.T) {
	original := []byte(`{
        "version": "1.0",
        "operations": [
            {"op": "delete_clips", "params": {"selector": {"track": 1, "index": 3}}},
            {"op": "delete_clips", "params": {"selector": {"track": 1, "index": 2}}},
            {"op": "delete_clips", "params": {"selector": {"track": 1, "index": 1}}}
        ]
    }`)
	p, _, err := Parse(original)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	encoded, err := p.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	again, _, err := Parse(encoded)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(again.Operations) != len(p.Operations) {
		t.Fatalf("operation count changed across round trip")
	}
	for i := range p.Operations {
		if again.Operations[i].Op != p.Operations[i].Op {
			t.Fatalf("operation %d changed across round trip", i)
		}
		a, err := json.Marshal(p.Operations[i].Params)
		if err != nil {
			t.Fatalf("marshal params %d: %v", i, err)
		}
		b, err := json.Marshal(again.Operations[i].Params)
		if err != nil {
			t.Fatalf("marshal params %d: %v", i, err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("operation %d params changed across round trip: %s vs %s", i, a, b)
		}
	}
}
