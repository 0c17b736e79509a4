package catalog

import "testing"

func TestLookupKnownOps(t *testing.T) {
	for _, name := range []string{
		"check_connection", "get_context", "import_media", "append_to_timeline",
		"set_clip_property", "add_marker", "add_track", "start_render",
		"export_timeline", "apply_lut", "copy_grades", "select_take",
		"set_project_setting", "refresh_lut_list",
	} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("expected %s in catalog", name)
		}
	}
}

func TestLookupUnknownOp(t *testing.T) {
	for _, name := range []string{"", "move_clip", "add_transition", "trim_clip"} {
		if _, ok := Lookup(name); ok {
			t.Errorf("%q should not be in catalog", name)
		}
	}
}

func TestRegistrySelfConsistent(t *testing.T) {
	for _, name := range Names() {
		spec, ok := Lookup(name)
		if !ok {
			t.Fatalf("Names returned %s but Lookup misses it", name)
		}
		if spec.Name != name {
			t.Errorf("spec %q has Name %q", name, spec.Name)
		}
		if spec.Category == "" {
			t.Errorf("spec %q has no category", name)
		}
		seen := map[string]bool{}
		for _, p := range spec.Params {
			if p.Name == "" {
				t.Errorf("spec %q has unnamed param", name)
			}
			if seen[p.Name] {
				t.Errorf("spec %q declares param %q twice", name, p.Name)
			}
			seen[p.Name] = true
			if (p.Min == nil) != (p.Max == nil) {
				t.Errorf("spec %q param %q has half-open bounds", name, p.Name)
			}
			if p.Min != nil && *p.Min > *p.Max {
				t.Errorf("spec %q param %q has inverted bounds", name, p.Name)
			}
			if len(p.Enum) > 0 && p.Kind != String {
				t.Errorf("spec %q param %q has an enum on a %s param", name, p.Name, p.Kind)
			}
		}
	}
}

func TestCatalogSize(t *testing.T) {
	// The operation surface is fixed; growing it means the bridge script and
	// prompt got new handlers too.
	if Len() < 85 {
		t.Fatalf("catalog has %d ops, expected at least 85", Len())
	}
}

func TestSelectorOpsFlagged(t *testing.T) {
	withSelector := []string{
		"set_clip_property", "set_clip_enabled", "set_clip_color",
		"add_clip_marker", "delete_clips", "apply_lut", "add_flag",
		"stabilize_clip", "create_compound_clip",
	}
	for _, name := range withSelector {
		spec, ok := Lookup(name)
		if !ok {
			t.Fatalf("missing %s", name)
		}
		if !spec.HasSelector() {
			t.Errorf("%s should declare a selector param", name)
		}
	}
	noSelector := []string{"add_marker", "import_media", "save_project"}
	for _, name := range noSelector {
		spec, _ := Lookup(name)
		if spec.HasSelector() {
			t.Errorf("%s should not declare a selector param", name)
		}
	}
}

func TestClipPropertyRanges(t *testing.T) {
	op, ok := ClipProperties["Opacity"]
	if !ok || op.Min != 0 || op.Max != 100 {
		t.Fatalf("Opacity range = %+v", op)
	}
	rot := ClipProperties["RotationAngle"]
	if rot.Min != -360 || rot.Max != 360 {
		t.Fatalf("RotationAngle range = %+v", rot)
	}
	if !ClipProperties["FlipX"].Bool {
		t.Fatal("FlipX should be boolean")
	}
}

func TestPalettes(t *testing.T) {
	if len(MarkerColors) != 16 {
		t.Fatalf("marker palette has %d colors, want 16", len(MarkerColors))
	}
	if len(ClipColors) != 16 {
		t.Fatalf("clip palette has %d colors, want 16", len(ClipColors))
	}
	if len(Pages) != 7 {
		t.Fatalf("pages = %v", Pages)
	}
}
