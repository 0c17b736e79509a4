package plan

import (
	"fmt"
	"math"
)

// TrackIndex is a 1-based timeline track index. ClipIndex is a 0-based clip
// position within a track. They are distinct types on purpose: the two index
// spaces coexist in every selector, and mixing them up should not compile.
type TrackIndex int

// ClipIndex is 0-based; see TrackIndex.
type ClipIndex int

// ClipSelector identifies the clip(s) an operation targets: exactly one of
// Index, Name or All, on one track.
type ClipSelector struct {
	Track     TrackIndex
	TrackType string
	Index     *ClipIndex
	Name      *string
	All       bool
}

// ParseSelector interprets the raw selector object from an operation's
// params. It enforces the exactly-one-discriminant rule: a selector with
// zero or with more than one of {index, name, all} is invalid.
func ParseSelector(raw map[string]interface{}) (*ClipSelector, error) {
	sel := &ClipSelector{Track: 1, TrackType: "video"}

	if v, ok := raw["track"]; ok {
		n, err := asInt(v)
		if err != nil {
			return nil, fmt.Errorf("selector track: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("selector track %d is invalid: track indices are 1-based", n)
		}
		sel.Track = TrackIndex(n)
	}
	if v, ok := raw["track_type"]; ok {
		s, isStr := v.(string)
		if !isStr {
			return nil, fmt.Errorf("selector track_type must be a string")
		}
		switch s {
		case "video", "audio":
			sel.TrackType = s
		default:
			return nil, fmt.Errorf("selector track_type %q is not a clip-bearing track type", s)
		}
	}

	discriminants := 0
	if v, ok := raw["index"]; ok {
		n, err := asInt(v)
		if err != nil {
			return nil, fmt.Errorf("selector index: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("selector index %d is invalid: clip indices are 0-based", n)
		}
		idx := ClipIndex(n)
		sel.Index = &idx
		discriminants++
	}
	if v, ok := raw["name"]; ok {
		s, isStr := v.(string)
		if !isStr || s == "" {
			return nil, fmt.Errorf("selector name must be a non-empty string")
		}
		sel.Name = &s
		discriminants++
	}
	if v, ok := raw["all"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("selector all must be a boolean")
		}
		if b {
			sel.All = true
			discriminants++
		}
	}

	for key := range raw {
		switch key {
		case "track", "track_type", "index", "name", "all":
		default:
			return nil, fmt.Errorf("selector has unknown field %q", key)
		}
	}

	switch discriminants {
	case 0:
		return nil, fmt.Errorf("selector needs exactly one of index, name or all:true; got none")
	case 1:
		return sel, nil
	default:
		return nil, fmt.Errorf("selector needs exactly one of index, name or all:true; got %d", discriminants)
	}
}

// asInt accepts JSON numbers that are integral. 1.0 is fine, 1.5 is not.
func asInt(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected an integer, got %v", f)
	}
	return int(f), nil
}
