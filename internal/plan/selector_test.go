package plan

import "testing"

func TestParseSelectorByIndex(t *testing.T) {
	sel, err := ParseSelector(map[string]interface{}{"track": 2.0, "index": 0.0})
	if err != nil {
		t.Fatalf("expected selector to parse: %v", err)
	}
	if sel.Track != 2 {
		t.Fatalf("expected track 2, got %d", sel.Track)
	}
	if sel.Index == nil || *sel.Index != 0 {
		t.Fatalf("expected clip index 0, got %v", sel.Index)
	}
	if sel.Name != nil || sel.All {
		t.Fatalf("only index should be set: %+v", sel)
	}
}

func TestParseSelectorDefaults(t *testing.T) {
	sel, err := ParseSelector(map[string]interface{}{"name": "intro"})
	if err != nil {
		t.Fatalf("expected selector to parse: %v", err)
	}
	if sel.Track != 1 || sel.TrackType != "video" {
		t.Fatalf("expected video track 1 defaults, got %s %d", sel.TrackType, sel.Track)
	}
}

func TestParseSelectorDiscriminants(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]interface{}
		ok   bool
	}{
		{"index only", map[string]interface{}{"index": 1.0}, true},
		{"name only", map[string]interface{}{"name": "b-roll"}, true},
		{"all only", map[string]interface{}{"all": true}, true},
		{"none", map[string]interface{}{"track": 1.0}, false},
		{"index and name", map[string]interface{}{"index": 1.0, "name": "x"}, false},
		{"index and all", map[string]interface{}{"index": 1.0, "all": true}, false},
		{"all three", map[string]interface{}{"index": 1.0, "name": "x", "all": true}, false},
		{"all false counts as absent", map[string]interface{}{"all": false}, false},
		{"all false with index", map[string]interface{}{"index": 1.0, "all": false}, true},
	}
	for _, tc := range cases {
		_, err := ParseSelector(tc.raw)
		if tc.ok && err != nil {
			t.Errorf("%s: expected valid selector, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected selector to be rejected", tc.name)
		}
	}
}

func TestParseSelectorRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]interface{}
	}{
		{"track zero", map[string]interface{}{"track": 0.0, "index": 1.0}},
		{"negative index", map[string]interface{}{"index": -1.0}},
		{"fractional index", map[string]interface{}{"index": 1.5}},
		{"subtitle track type", map[string]interface{}{"track_type": "subtitle", "index": 0.0}},
		{"unknown field", map[string]interface{}{"index": 0.0, "clip": "x"}},
		{"empty name", map[string]interface{}{"name": ""}},
	}
	for _, tc := range cases {
		if _, err := ParseSelector(tc.raw); err == nil {
			t.Errorf("%s: expected selector to be rejected", tc.name)
		}
	}
}
