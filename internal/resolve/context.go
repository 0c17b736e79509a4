package resolve

// Context is a point-in-time, read-only description of the Resolve session:
// open project, active timeline with tracks/clips/markers, and the media pool.
// It is fetched fresh before interpretation and again before validation;
// holders never mutate it.
type Context struct {
	Product   string         `json:"product"`
	Version   string         `json:"version"`
	Project   *ProjectInfo   `json:"project"`
	Timeline  *TimelineInfo  `json:"timeline"`
	MediaPool *MediaPoolInfo `json:"media_pool"`
}

// ProjectInfo describes the currently open project.
type ProjectInfo struct {
	Name          string `json:"name"`
	TimelineCount int    `json:"timeline_count"`
}

// TimelineInfo describes the active timeline.
type TimelineInfo struct {
	Name       string       `json:"name"`
	FrameRate  float64      `json:"frame_rate"`
	Resolution [2]int       `json:"resolution"`
	StartFrame int64        `json:"start_frame"`
	EndFrame   int64        `json:"end_frame"`
	Tracks     TrackLayout  `json:"tracks"`
	Markers    []MarkerInfo `json:"markers"`
}

// TrackLayout groups tracks by kind. Track indices are 1-based, so
// Video[0] is video track 1.
type TrackLayout struct {
	Video []Track `json:"video"`
	Audio []Track `json:"audio"`
}

// Track is one timeline track with its ordered clips.
type Track struct {
	Index int        `json:"index"`
	Name  string     `json:"name"`
	Clips []ClipInfo `json:"clips"`
}

// ClipInfo is one clip on a track. Index is 0-based within the track.
type ClipInfo struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
	Duration int64  `json:"duration"`
}

// MarkerInfo is one timeline marker.
type MarkerInfo struct {
	Frame    int64  `json:"frame"`
	Color    string `json:"color"`
	Name     string `json:"name"`
	Note     string `json:"note"`
	Duration int    `json:"duration"`
}

// MediaPoolInfo lists root-folder clip and subfolder names.
type MediaPoolInfo struct {
	Clips   []string `json:"clips"`
	Folders []string `json:"folders"`
}

// ConnectionInfo is the check_connection result.
type ConnectionInfo struct {
	Product string `json:"product"`
	Version string `json:"version"`
}

// TrackByIndex returns the 1-based track of the given kind, if present.
func (t *TimelineInfo) TrackByIndex(kind string, index int) (*Track, bool) {
	if t == nil {
		return nil, false
	}
	var tracks []Track
	switch kind {
	case "audio":
		tracks = t.Tracks.Audio
	default:
		tracks = t.Tracks.Video
	}
	for i := range tracks {
		if tracks[i].Index == index {
			return &tracks[i], true
		}
	}
	return nil, false
}

// HasMediaClip reports whether the media pool root contains a clip by name.
func (m *MediaPoolInfo) HasMediaClip(name string) bool {
	if m == nil {
		return false
	}
	for _, c := range m.Clips {
		if c == name {
			return true
		}
	}
	return false
}
