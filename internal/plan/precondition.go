package plan

import (
	"fmt"

	"github.com/decocereus/magic-agent/internal/resolve"
)

// PreconditionType tags the precondition variants.
type PreconditionType string

const (
	PreProjectOpen    PreconditionType = "project_open"
	PreTimelineExists PreconditionType = "timeline_exists"
	PreTimelineActive PreconditionType = "timeline_active"
	PreTrackExists    PreconditionType = "track_exists"
	PreClipExists     PreconditionType = "clip_exists"
	PreMediaExists    PreconditionType = "media_exists"
)

// Precondition is a read-only assertion about current application state.
// Which fields are meaningful depends on Type:
//
//	timeline_exists, media_exists  -> Name
//	track_exists                   -> TrackType, Index (1-based)
//	clip_exists                    -> Track (1-based), Index (0-based)
type Precondition struct {
	Type      PreconditionType `json:"type"`
	Name      string           `json:"name,omitempty"`
	TrackType string           `json:"track_type,omitempty"`
	Track     int              `json:"track,omitempty"`
	Index     int              `json:"index,omitempty"`
}

// Eval checks the precondition against a snapshot. It has no side effects;
// a nil return means the assertion holds. Failures carry the matching error
// code from the fixed enumeration.
func (p Precondition) Eval(snapshot *resolve.Context) *resolve.OpError {
	switch p.Type {
	case PreProjectOpen:
		if snapshot.Project == nil {
			return resolve.NewOpError(resolve.CodeNoProject, "no project is open")
		}
		return nil

	case PreTimelineActive:
		if snapshot.Timeline == nil {
			return resolve.NewOpError(resolve.CodeNoTimeline, "no timeline is active")
		}
		return nil

	case PreTimelineExists:
		// The snapshot only carries the active timeline by name; a plan that
		// asserts some other timeline exists fails here rather than mid-batch.
		if snapshot.Timeline != nil && snapshot.Timeline.Name == p.Name {
			return nil
		}
		return resolve.NewOpError(resolve.CodeTimelineNotFound, "timeline not found: %s", p.Name)

	case PreTrackExists:
		kind := p.TrackType
		if kind == "" {
			kind = "video"
		}
		if snapshot.Timeline == nil {
			return resolve.NewOpError(resolve.CodeNoTimeline, "no timeline is active")
		}
		if _, ok := snapshot.Timeline.TrackByIndex(kind, p.Index); !ok {
			return resolve.NewOpError(resolve.CodeTrackNotFound, "track not found: %s %d", kind, p.Index)
		}
		return nil

	case PreClipExists:
		if snapshot.Timeline == nil {
			return resolve.NewOpError(resolve.CodeNoTimeline, "no timeline is active")
		}
		track, ok := snapshot.Timeline.TrackByIndex("video", p.Track)
		if !ok {
			return resolve.NewOpError(resolve.CodeTrackNotFound, "track not found: video %d", p.Track)
		}
		if p.Index < 0 || p.Index >= len(track.Clips) {
			return resolve.NewOpError(resolve.CodeClipNotFound, "clip not found at track %d, index %d", p.Track, p.Index)
		}
		return nil

	case PreMediaExists:
		if !snapshot.MediaPool.HasMediaClip(p.Name) {
			return resolve.NewOpError(resolve.CodeMediaNotFound, "media not found in pool: %s", p.Name)
		}
		return nil

	default:
		return resolve.NewOpError(resolve.CodeSchemaError, "unknown precondition type: %s", p.Type)
	}
}

func (p Precondition) String() string {
	switch p.Type {
	case PreTimelineExists, PreMediaExists:
		return fmt.Sprintf("%s(%s)", p.Type, p.Name)
	case PreTrackExists:
		return fmt.Sprintf("%s(%s %d)", p.Type, p.TrackType, p.Index)
	case PreClipExists:
		return fmt.Sprintf("%s(track %d, index %d)", p.Type, p.Track, p.Index)
	default:
		return string(p.Type)
	}
}
