package interpreter

import (
	"strings"
	"testing"

	"github.com/decocereus/magic-agent/internal/catalog"
	"github.com/decocereus/magic-agent/internal/resolve"
)

func TestSystemPromptListsEveryOperation(t *testing.T) {
	prompt := SystemPrompt()
	for _, name := range catalog.Names() {
		if !strings.Contains(prompt, "`"+name+"`") {
			t.Errorf("operation %s missing from system prompt", name)
		}
	}
	if !strings.Contains(prompt, "Cannot MOVE clips") {
		t.Errorf("constraints section missing from system prompt")
	}
	if !strings.Contains(prompt, `"version": "1.0"`) {
		t.Errorf("output format example missing from system prompt")
	}
}

func TestBuildPromptEmbedsContextAndRequest(t *testing.T) {
	snapshot := &resolve.Context{
		Product: "DaVinci Resolve",
		Project: &resolve.ProjectInfo{Name: "Promo Cut"},
	}
	prompt := BuildPrompt(snapshot, "zoom the first clip to 80 percent")
	if !strings.Contains(prompt, "Promo Cut") {
		t.Errorf("snapshot not embedded in prompt")
	}
	if !strings.Contains(prompt, "zoom the first clip to 80 percent") {
		t.Errorf("user request not embedded in prompt")
	}
	if strings.Index(prompt, "## Current Context") > strings.Index(prompt, "## User Request") {
		t.Errorf("context must come before the user request")
	}
}
