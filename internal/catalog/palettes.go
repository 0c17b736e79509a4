package catalog

// MarkerColors is the fixed marker palette accepted by Resolve.
var MarkerColors = []string{
	"Blue", "Cyan", "Green", "Yellow", "Red", "Pink", "Purple", "Fuchsia",
	"Rose", "Lavender", "Sky", "Mint", "Lemon", "Sand", "Cocoa", "Cream",
}

// ClipColors is the fixed clip color palette.
var ClipColors = []string{
	"Orange", "Apricot", "Yellow", "Lime", "Olive", "Green", "Teal", "Navy",
	"Blue", "Purple", "Violet", "Pink", "Tan", "Beige", "Brown", "Chocolate",
}

// FlagColors shares the marker palette.
var FlagColors = MarkerColors

// TrackTypes are the track kinds a timeline can hold.
var TrackTypes = []string{"video", "audio", "subtitle"}

// Pages are the Resolve UI pages reachable via open_page.
var Pages = []string{"media", "cut", "edit", "fusion", "color", "fairlight", "deliver"}

// TimelineExportFormats are the formats accepted by export_timeline.
var TimelineExportFormats = []string{"aaf", "xml", "edl", "fcpxml", "drt", "otio"}

// PropertyRange bounds one clip property settable via set_clip_property.
type PropertyRange struct {
	Min, Max float64
	// Bool marks flip-style properties that take a boolean instead of a number.
	Bool bool
}

// ClipProperties maps settable clip property names to their ranges. Values
// outside these bounds are rejected during validation, before any bridge
// traffic.
var ClipProperties = map[string]PropertyRange{
	"Opacity":       {Min: 0, Max: 100},
	"ZoomX":         {Min: 0, Max: 100},
	"ZoomY":         {Min: 0, Max: 100},
	"Pan":           {Min: -4000, Max: 4000},
	"Tilt":          {Min: -4000, Max: 4000},
	"RotationAngle": {Min: -360, Max: 360},
	"CropLeft":      {Min: 0, Max: 4000},
	"CropRight":     {Min: 0, Max: 4000},
	"CropTop":       {Min: 0, Max: 4000},
	"CropBottom":    {Min: 0, Max: 4000},
	"FlipX":         {Bool: true},
	"FlipY":         {Bool: true},
}
