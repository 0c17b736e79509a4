package interpreter

import "testing"

func TestExtractJSONBare(t *testing.T) {
	out, err := ExtractJSON(`{"version": "1.0", "operations": []}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != `{"version": "1.0", "operations": []}` {
		t.Fatalf("unexpected extraction: %s", out)
	}
}

func TestExtractJSONFenced(t *testing.T) {
	input := "```json\n{\"version\": \"1.0\"}\n```"
	out, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != `{"version": "1.0"}` {
		t.Fatalf("unexpected extraction: %q", out)
	}
}

func TestExtractJSONSurroundedByProse(t *testing.T) {
	input := "Here is the plan you asked for:\n{\"version\": \"1.0\", \"error\": \"no\"}\nLet me know if that helps."
	out, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != `{"version": "1.0", "error": "no"}` {
		t.Fatalf("unexpected extraction: %q", out)
	}
}

func TestExtractJSONIgnoresBracesInStrings(t *testing.T) {
	input := `{"note": "a } inside a string", "nested": {"ok": true}}`
	out, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != input {
		t.Fatalf("unexpected extraction: %q", out)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	if _, err := ExtractJSON("I could not produce a plan for that."); err == nil {
		t.Fatalf("expected an error for prose with no JSON")
	}
}

func TestExtractJSONUnbalanced(t *testing.T) {
	if _, err := ExtractJSON(`{"version": "1.0"`); err == nil {
		t.Fatalf("expected an error for an unterminated object")
	}
}
