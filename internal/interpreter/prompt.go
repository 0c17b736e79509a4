package interpreter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/decocereus/magic-agent/internal/catalog"
	"github.com/decocereus/magic-agent/internal/resolve"
)

// promptHeader opens the system prompt. The operation listing that follows
// is generated from the catalog so the model and the validator always agree
// on what exists.
const promptHeader = `You are an assistant that converts natural language editing requests into structured execution plans for DaVinci Resolve.

## Available Operations
`

const promptConstraints = `
## Constraints (CRITICAL - Operations NOT available)
- Cannot MOVE clips already on timeline (only append new clips)
- Cannot INSERT clips at specific timecodes (append only)
- Cannot create TRANSITIONS (no API)
- Cannot add KEYFRAME animation (requires Fusion)
- Cannot do AUDIO automation/keyframes
- Cannot TRIM/SLIP/SLIDE existing clips

If the user requests something impossible, return an error document:
{
  "version": "1.0",
  "error": "Cannot move clips on timeline - this operation is not supported by Resolve's scripting API",
  "suggestion": "To reorder clips, you would need to manually drag them in the Resolve UI"
}

## Output Format
Return ONLY valid JSON. No markdown, no explanation, just the JSON object.

{
  "version": "1.0",
  "target": {
    "project": "<current project name>",
    "timeline": "<current timeline name or null>"
  },
  "preconditions": [
    { "type": "project_open" },
    { "type": "timeline_exists", "name": "..." }
  ],
  "operations": [
    { "op": "<operation_name>", "params": { ... } }
  ]
}

Clip selectors take exactly one of index (0-based), name, or all:true, plus
an optional track (1-based, default 1) and track_type (video or audio).
Clip properties: Opacity (0-100), ZoomX/ZoomY (0-100), Pan/Tilt (-4000 to 4000),
RotationAngle (-360 to 360), CropLeft/Right/Top/Bottom (0-4000), FlipX/FlipY (bool).`

// SystemPrompt renders the full instruction block: header, generated
// operation listing by category, constraints and output format.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(promptHeader)

	byCategory := make(map[string][]catalog.Spec)
	for _, name := range catalog.Names() {
		spec, _ := catalog.Lookup(name)
		byCategory[spec.Category] = append(byCategory[spec.Category], spec)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Fprintf(&b, "\n### %s\n", category)
		for _, spec := range byCategory[category] {
			b.WriteString(describeOperation(spec))
		}
	}

	b.WriteString(promptConstraints)
	return b.String()
}

func describeOperation(spec catalog.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- `%s`", spec.Name)
	if len(spec.Params) > 0 {
		parts := make([]string, 0, len(spec.Params))
		for _, p := range spec.Params {
			field := p.Name
			if !p.Required {
				field += "?"
			}
			desc := p.Kind.String()
			if len(p.Enum) > 0 {
				desc = strings.Join(p.Enum, "|")
			} else if p.Min != nil && p.Max != nil {
				desc = fmt.Sprintf("%s (%v to %v)", desc, *p.Min, *p.Max)
			}
			parts = append(parts, fmt.Sprintf("%s: %s", field, desc))
		}
		fmt.Fprintf(&b, ": { %s }", strings.Join(parts, ", "))
	}
	if spec.Result != "" {
		fmt.Fprintf(&b, " -> %s", spec.Result)
	}
	b.WriteString("\n")
	return b.String()
}

// BuildPrompt assembles the complete message sent to the model: system
// prompt, current context snapshot as JSON, and the user request.
func BuildPrompt(snapshot *resolve.Context, request string) string {
	contextJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		contextJSON = []byte("{}")
	}
	return fmt.Sprintf("%s\n\n## Current Context\n%s\n\n## User Request\n%s",
		SystemPrompt(), contextJSON, request)
}
