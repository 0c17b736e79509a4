package catalog

// registry is the full operation table, mirroring the command set of the
// Python bridge script. Categories follow the bridge's own grouping.
var registry = map[string]Spec{
	// Core / control plane. Plannable like any other op, but the bridge also
	// issues them directly for the startup handshake and context fetches.
	"check_connection": {
		Name: "check_connection", Category: "core",
		Result: "{product, version}",
	},
	"get_context": {
		Name: "get_context", Category: "core",
		Result: "full context snapshot",
	},

	// Media.
	"import_media": {
		Name: "import_media", Category: "media",
		Params: []Param{
			{Name: "paths", Kind: StringList, Required: true},
		},
		Result: "{imported: string[], failed: string[]}",
	},
	"append_to_timeline": {
		Name: "append_to_timeline", Category: "media",
		Params: []Param{
			{Name: "clips", Kind: ClipList, Required: true},
			bounded("track", Int, false, 1, 1000),
		},
		Result: "{appended: int}",
	},
	"create_timeline": {
		Name: "create_timeline", Category: "media",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
			{Name: "clips", Kind: StringList},
		},
		Result: "{timeline: string}",
	},

	// Clip properties.
	"set_clip_property": {
		Name: "set_clip_property", Category: "clip",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "properties", Kind: Map, Required: true},
		},
		Result: "{modified: int}",
	},
	"set_clip_enabled": {
		Name: "set_clip_enabled", Category: "clip",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "enabled", Kind: Bool},
		},
		Result: "{modified: int, enabled: bool}",
	},
	"set_clip_color": {
		Name: "set_clip_color", Category: "clip",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "color", Kind: String, Enum: ClipColors},
		},
		Result: "{modified: int, color: string}",
	},

	// Markers.
	"add_marker": {
		Name: "add_marker", Category: "marker",
		Params: []Param{
			{Name: "frame", Kind: Int, Required: true},
			{Name: "color", Kind: String, Enum: MarkerColors},
			{Name: "name", Kind: String},
			{Name: "note", Kind: String},
			bounded("duration", Int, false, 1, 1<<31),
			{Name: "relative", Kind: Bool},
		},
		Result: "{added: bool, frame: int}",
	},
	"add_clip_marker": {
		Name: "add_clip_marker", Category: "marker",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "frame", Kind: Int},
			{Name: "color", Kind: String, Enum: MarkerColors},
			{Name: "name", Kind: String},
			{Name: "note", Kind: String},
			bounded("duration", Int, false, 1, 1<<31),
			{Name: "timeline_frame", Kind: Bool},
		},
		Result: "{added: bool}",
	},
	"delete_marker": {
		Name: "delete_marker", Category: "marker",
		Params: []Param{
			{Name: "frame", Kind: Int},
			{Name: "color", Kind: String, Enum: MarkerColors},
			{Name: "relative", Kind: Bool},
		},
		Result: "{deleted: int}",
	},
	"clear_markers": {
		Name: "clear_markers", Category: "marker",
		Params: []Param{
			{Name: "timeline", Kind: Bool},
			{Name: "clips", Kind: Bool},
			enum("track_type", false, TrackTypes...),
			bounded("track", Int, false, 1, 1000),
		},
		Result: "{cleared: int}",
	},

	// Tracks.
	"add_track": {
		Name: "add_track", Category: "track",
		Params: []Param{
			enum("type", false, TrackTypes...),
		},
		Result: "{added: bool, type: string}",
	},
	"set_track_name": {
		Name: "set_track_name", Category: "track",
		Params: []Param{
			enum("type", false, TrackTypes...),
			bounded("index", Int, true, 1, 1000),
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{renamed: bool}",
	},
	"enable_track": {
		Name: "enable_track", Category: "track",
		Params: []Param{
			enum("type", false, TrackTypes...),
			bounded("index", Int, true, 1, 1000),
			{Name: "enabled", Kind: Bool},
		},
		Result: "{enabled: bool}",
	},
	"lock_track": {
		Name: "lock_track", Category: "track",
		Params: []Param{
			enum("type", false, TrackTypes...),
			bounded("index", Int, true, 1, 1000),
			{Name: "locked", Kind: Bool},
		},
		Result: "{locked: bool}",
	},
	"delete_track": {
		Name: "delete_track", Category: "track",
		Params: []Param{
			enum("type", false, TrackTypes...),
			bounded("index", Int, true, 1, 1000),
		},
		Result: "{deleted: bool}",
	},

	// Render.
	"add_render_job": {
		Name: "add_render_job", Category: "render",
		Params: []Param{
			{Name: "format", Kind: String},
			{Name: "codec", Kind: String},
			{Name: "path", Kind: String},
			{Name: "filename", Kind: String},
		},
		Result: "{job_id: string}",
	},
	"start_render": {
		Name: "start_render", Category: "render",
		Params: []Param{
			{Name: "wait", Kind: Bool},
		},
		Result: "{started: bool}",
	},
	"set_render_settings": {
		Name: "set_render_settings", Category: "render",
		Params: []Param{
			{Name: "settings", Kind: Map, Required: true},
		},
		Result: "{applied: bool}",
	},
	"get_render_formats": {
		Name: "get_render_formats", Category: "render",
		Result: "{formats: object}",
	},
	"get_render_codecs": {
		Name: "get_render_codecs", Category: "render",
		Params: []Param{
			{Name: "format", Kind: String},
		},
		Result: "{codecs: object}",
	},
	"set_render_format_and_codec": {
		Name: "set_render_format_and_codec", Category: "render",
		Params: []Param{
			{Name: "format", Kind: String},
			{Name: "codec", Kind: String},
		},
		Result: "{applied: bool}",
	},
	"get_render_presets": {
		Name: "get_render_presets", Category: "render",
		Result: "{presets: string[]}",
	},
	"load_render_preset": {
		Name: "load_render_preset", Category: "render",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{loaded: bool}",
	},
	"save_render_preset": {
		Name: "save_render_preset", Category: "render",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{saved: bool}",
	},
	"delete_render_preset": {
		Name: "delete_render_preset", Category: "render",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{deleted: bool}",
	},
	"get_render_jobs": {
		Name: "get_render_jobs", Category: "render",
		Result: "{jobs: object[]}",
	},
	"delete_render_job": {
		Name: "delete_render_job", Category: "render",
		Params: []Param{
			{Name: "job_id", Kind: String, Required: true},
		},
		Result: "{deleted: bool}",
	},
	"delete_all_render_jobs": {
		Name: "delete_all_render_jobs", Category: "render",
		Result: "{deleted: bool}",
	},
	"get_render_job_status": {
		Name: "get_render_job_status", Category: "render",
		Params: []Param{
			{Name: "job_id", Kind: String, Required: true},
		},
		Result: "{status: object}",
	},

	// Timeline.
	"set_timeline": {
		Name: "set_timeline", Category: "timeline",
		Params: []Param{
			{Name: "name", Kind: String},
			bounded("index", Int, false, 1, 10000),
		},
		Result: "{timeline: string}",
	},
	"duplicate_timeline": {
		Name: "duplicate_timeline", Category: "timeline",
		Params: []Param{
			{Name: "name", Kind: String},
		},
		Result: "{timeline: string}",
	},
	"export_timeline": {
		Name: "export_timeline", Category: "timeline",
		Params: []Param{
			{Name: "path", Kind: String, Required: true},
			enum("format", false, TimelineExportFormats...),
		},
		Result: "{exported: bool, path: string}",
	},
	"import_timeline_from_file": {
		Name: "import_timeline_from_file", Category: "timeline",
		Params: []Param{
			{Name: "path", Kind: String, Required: true},
			{Name: "name", Kind: String},
			{Name: "import_source_clips", Kind: Bool},
		},
		Result: "{timeline: string}",
	},

	// Fusion and compound clips.
	"insert_fusion_composition": {
		Name: "insert_fusion_composition", Category: "fusion",
		Result: "{inserted: bool}",
	},
	"create_fusion_clip": {
		Name: "create_fusion_clip", Category: "fusion",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{created: bool}",
	},
	"add_fusion_comp_to_clip": {
		Name: "add_fusion_comp_to_clip", Category: "fusion",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{added: bool}",
	},
	"create_compound_clip": {
		Name: "create_compound_clip", Category: "fusion",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "name", Kind: String},
		},
		Result: "{created: bool, name: string}",
	},

	// Generators and titles.
	"insert_generator": {
		Name: "insert_generator", Category: "generator",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
			enum("type", false, "standard", "fusion", "ofx"),
		},
		Result: "{inserted: bool}",
	},
	"insert_title": {
		Name: "insert_title", Category: "generator",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
			enum("type", false, "standard", "fusion"),
		},
		Result: "{inserted: bool}",
	},

	// Text+.
	"set_text_content": {
		Name: "set_text_content", Category: "text",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "text", Kind: String, Required: true},
		},
		Result: "{modified: int}",
	},
	"set_text_style": {
		Name: "set_text_style", Category: "text",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "style", Kind: Map, Required: true},
		},
		Result: "{modified: int}",
	},
	"get_text_properties": {
		Name: "get_text_properties", Category: "text",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{properties: object}",
	},
	"add_text_to_timeline": {
		Name: "add_text_to_timeline", Category: "text",
		Params: []Param{
			{Name: "text", Kind: String, Required: true},
			bounded("duration", Int, false, 1, 1<<31),
			{Name: "style", Kind: Map},
		},
		Result: "{added: bool}",
	},

	// AI / processing.
	"stabilize_clip": {
		Name: "stabilize_clip", Category: "ai",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{stabilized: int}",
	},
	"smart_reframe": {
		Name: "smart_reframe", Category: "ai",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{reframed: int}",
	},
	"create_magic_mask": {
		Name: "create_magic_mask", Category: "ai",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			enum("mode", false, "F", "B", "BI"),
		},
		Result: "{created: int}",
	},
	"detect_scene_cuts": {
		Name: "detect_scene_cuts", Category: "ai",
		Result: "{detected: bool}",
	},

	// Clip management.
	"delete_clips": {
		Name: "delete_clips", Category: "clip",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "ripple", Kind: Bool},
		},
		Result: "{deleted: int}",
	},
	"set_clips_linked": {
		Name: "set_clips_linked", Category: "clip",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "linked", Kind: Bool},
		},
		Result: "{modified: int, linked: bool}",
	},

	// Navigation.
	"set_current_timecode": {
		Name: "set_current_timecode", Category: "navigation",
		Params: []Param{
			{Name: "timecode", Kind: String, Required: true},
		},
		Result: "{timecode: string}",
	},
	"get_current_timecode": {
		Name: "get_current_timecode", Category: "navigation",
		Result: "{timecode: string}",
	},
	"open_page": {
		Name: "open_page", Category: "navigation",
		Params: []Param{
			enum("page", false, Pages...),
		},
		Result: "{page: string}",
	},
	"get_current_page": {
		Name: "get_current_page", Category: "navigation",
		Result: "{page: string}",
	},

	// Audio.
	"create_subtitles_from_audio": {
		Name: "create_subtitles_from_audio", Category: "audio",
		Params: []Param{
			{Name: "language", Kind: String},
		},
		Result: "{created: bool}",
	},
	"detect_beats": {
		Name: "detect_beats", Category: "audio",
		Params: []Param{
			bounded("track", Int, false, 1, 1000),
			enum("track_type", false, TrackTypes...),
			{Name: "mark_beats", Kind: Bool},
			{Name: "mark_downbeats", Kind: Bool},
		},
		Result: "{beats: int, markers_added: int}",
	},
	"check_audio_deps": {
		Name: "check_audio_deps", Category: "audio",
		Result: "{available: bool}",
	},

	// Stills and gallery.
	"grab_still": {
		Name: "grab_still", Category: "gallery",
		Result: "{grabbed: bool}",
	},
	"export_still": {
		Name: "export_still", Category: "gallery",
		Params: []Param{
			{Name: "path", Kind: String, Required: true},
		},
		Result: "{exported: bool}",
	},
	"apply_grade_from_drx": {
		Name: "apply_grade_from_drx", Category: "gallery",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "path", Kind: String, Required: true},
			bounded("grade_mode", Int, false, 0, 2),
		},
		Result: "{applied: int}",
	},
	"get_gallery_albums": {
		Name: "get_gallery_albums", Category: "gallery",
		Params: []Param{
			enum("type", false, "stills", "powergrade"),
		},
		Result: "{albums: string[]}",
	},

	// Color grading.
	"apply_lut": {
		Name: "apply_lut", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "lut_path", Kind: String, Required: true},
			bounded("node_index", Int, false, 1, 100),
		},
		Result: "{applied: int}",
	},
	"get_lut": {
		Name: "get_lut", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			bounded("node_index", Int, false, 1, 100),
		},
		Result: "{lut: string}",
	},
	"set_cdl": {
		Name: "set_cdl", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			bounded("node_index", Int, false, 1, 100),
			{Name: "slope", Kind: String},
			{Name: "offset", Kind: String},
			{Name: "power", Kind: String},
			{Name: "saturation", Kind: String},
		},
		Result: "{applied: int}",
	},
	"copy_grades": {
		Name: "copy_grades", Category: "color",
		Params: []Param{
			{Name: "source", Kind: Selector, Required: true},
			{Name: "targets", Kind: Selector, Required: true},
		},
		Result: "{copied: int}",
	},
	"reset_grades": {
		Name: "reset_grades", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{reset: int}",
	},
	"add_color_version": {
		Name: "add_color_version", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "name", Kind: String},
			bounded("type", Int, false, 0, 1),
		},
		Result: "{added: int}",
	},
	"load_color_version": {
		Name: "load_color_version", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "name", Kind: String, Required: true},
			bounded("type", Int, false, 0, 1),
		},
		Result: "{loaded: int}",
	},
	"get_color_versions": {
		Name: "get_color_versions", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			bounded("type", Int, false, 0, 1),
		},
		Result: "{versions: string[]}",
	},
	"delete_color_version": {
		Name: "delete_color_version", Category: "color",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "name", Kind: String, Required: true},
			bounded("type", Int, false, 0, 1),
		},
		Result: "{deleted: int}",
	},

	// Color groups.
	"create_color_group": {
		Name: "create_color_group", Category: "colorgroup",
		Params: []Param{
			{Name: "name", Kind: String},
		},
		Result: "{created: bool, name: string}",
	},
	"get_color_groups": {
		Name: "get_color_groups", Category: "colorgroup",
		Result: "{groups: string[]}",
	},
	"assign_to_color_group": {
		Name: "assign_to_color_group", Category: "colorgroup",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "group", Kind: String, Required: true},
		},
		Result: "{assigned: int}",
	},
	"remove_from_color_group": {
		Name: "remove_from_color_group", Category: "colorgroup",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{removed: int}",
	},
	"delete_color_group": {
		Name: "delete_color_group", Category: "colorgroup",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{deleted: bool}",
	},

	// Media pool.
	"create_media_pool_folder": {
		Name: "create_media_pool_folder", Category: "mediapool",
		Params: []Param{
			{Name: "name", Kind: String},
			{Name: "parent", Kind: String},
		},
		Result: "{created: bool, name: string}",
	},
	"set_current_media_pool_folder": {
		Name: "set_current_media_pool_folder", Category: "mediapool",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
		},
		Result: "{folder: string}",
	},
	"move_media_pool_clips": {
		Name: "move_media_pool_clips", Category: "mediapool",
		Params: []Param{
			{Name: "clips", Kind: StringList, Required: true},
			{Name: "target_folder", Kind: String, Required: true},
		},
		Result: "{moved: int}",
	},
	"delete_media_pool_clips": {
		Name: "delete_media_pool_clips", Category: "mediapool",
		Params: []Param{
			{Name: "clips", Kind: StringList, Required: true},
		},
		Result: "{deleted: int}",
	},
	"delete_media_pool_folders": {
		Name: "delete_media_pool_folders", Category: "mediapool",
		Params: []Param{
			{Name: "folders", Kind: StringList, Required: true},
		},
		Result: "{deleted: int}",
	},
	"set_clip_metadata": {
		Name: "set_clip_metadata", Category: "mediapool",
		Params: []Param{
			{Name: "clip", Kind: String, Required: true},
			{Name: "metadata", Kind: Map, Required: true},
		},
		Result: "{modified: bool}",
	},
	"get_clip_metadata": {
		Name: "get_clip_metadata", Category: "mediapool",
		Params: []Param{
			{Name: "clip", Kind: String, Required: true},
		},
		Result: "{metadata: object}",
	},
	"relink_clips": {
		Name: "relink_clips", Category: "mediapool",
		Params: []Param{
			{Name: "clips", Kind: StringList, Required: true},
			{Name: "folder_path", Kind: String, Required: true},
		},
		Result: "{relinked: int}",
	},

	// Flags.
	"add_flag": {
		Name: "add_flag", Category: "flag",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "color", Kind: String, Enum: FlagColors},
		},
		Result: "{flagged: int}",
	},
	"get_flags": {
		Name: "get_flags", Category: "flag",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{flags: string[]}",
	},
	"clear_flags": {
		Name: "clear_flags", Category: "flag",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			enum("color", false, append([]string{"All"}, FlagColors...)...),
		},
		Result: "{cleared: int}",
	},

	// Takes.
	"add_take": {
		Name: "add_take", Category: "take",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			{Name: "media_pool_clip", Kind: String, Required: true},
			{Name: "start_frame", Kind: Int},
			{Name: "end_frame", Kind: Int},
		},
		Result: "{added: bool}",
	},
	"select_take": {
		Name: "select_take", Category: "take",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			bounded("take_index", Int, true, 1, 100),
		},
		Result: "{selected: bool}",
	},
	"get_takes": {
		Name: "get_takes", Category: "take",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{takes: object[]}",
	},
	"finalize_take": {
		Name: "finalize_take", Category: "take",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{finalized: bool}",
	},
	"delete_take": {
		Name: "delete_take", Category: "take",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			bounded("take_index", Int, false, 1, 100),
		},
		Result: "{deleted: bool}",
	},

	// Project settings.
	"save_project": {
		Name: "save_project", Category: "project",
		Result: "{saved: bool}",
	},
	"export_project": {
		Name: "export_project", Category: "project",
		Params: []Param{
			{Name: "path", Kind: String, Required: true},
			{Name: "with_stills_and_luts", Kind: Bool},
		},
		Result: "{exported: bool}",
	},
	"get_project_setting": {
		Name: "get_project_setting", Category: "project",
		Params: []Param{
			{Name: "name", Kind: String},
		},
		Result: "{setting: object}",
	},
	"set_project_setting": {
		Name: "set_project_setting", Category: "project",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
			{Name: "value", Kind: String, Required: true},
		},
		Result: "{applied: bool}",
	},
	"get_timeline_setting": {
		Name: "get_timeline_setting", Category: "project",
		Params: []Param{
			{Name: "name", Kind: String},
		},
		Result: "{setting: object}",
	},
	"set_timeline_setting": {
		Name: "set_timeline_setting", Category: "project",
		Params: []Param{
			{Name: "name", Kind: String, Required: true},
			{Name: "value", Kind: String, Required: true},
		},
		Result: "{applied: bool}",
	},

	// Keyframe mode.
	"set_keyframe_mode": {
		Name: "set_keyframe_mode", Category: "keyframe",
		Params: []Param{
			bounded("mode", Int, false, 0, 2),
		},
		Result: "{mode: int}",
	},
	"get_keyframe_mode": {
		Name: "get_keyframe_mode", Category: "keyframe",
		Result: "{mode: int}",
	},

	// Cache.
	"set_clip_cache_mode": {
		Name: "set_clip_cache_mode", Category: "cache",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
			enum("cache_type", false, "color", "fusion"),
			{Name: "enabled", Kind: Bool},
		},
		Result: "{modified: int}",
	},
	"get_clip_cache_mode": {
		Name: "get_clip_cache_mode", Category: "cache",
		Params: []Param{
			{Name: "selector", Kind: Selector, Required: true},
		},
		Result: "{mode: object}",
	},
	"refresh_lut_list": {
		Name: "refresh_lut_list", Category: "cache",
		Result: "{refreshed: bool}",
	},
}
