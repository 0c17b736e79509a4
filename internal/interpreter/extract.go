package interpreter

import (
	"errors"
	"strings"
)

// ExtractJSON pulls the first JSON object out of a model response. Models
// are told to return bare JSON but routinely wrap it in a markdown fence or
// surround it with prose, so this strips a leading fence and then scans for
// a balanced object, ignoring braces inside strings.
func ExtractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	if inner, ok := stripFence(s); ok {
		s = strings.TrimSpace(inner)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '{' {
			if out, ok := balancedObject(s, i); ok {
				return out, nil
			}
		}
	}
	return "", errors.New("no JSON object found in response")
}

// stripFence unwraps a leading ``` or ~~~ fenced block, tolerating a
// language tag on the opening line.
func stripFence(s string) (string, bool) {
	fence := ""
	switch {
	case strings.HasPrefix(s, "```"):
		fence = "```"
	case strings.HasPrefix(s, "~~~"):
		fence = "~~~"
	default:
		return "", false
	}
	rest := s[len(fence):]
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return "", false
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, fence)
	if end == -1 {
		return "", false
	}
	return rest[:end], true
}

// balancedObject returns s[start:end] for the object opening at start, or
// false if the braces never balance.
func balancedObject(s string, start int) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
