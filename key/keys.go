// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Media Engine - these keys select and tune the external engine that renders media.
const (
	Player     = "player.default"
	PlayerArgs = "player.args"
)

// Source Loading - these keys govern which files the loader accepts and how fingerprints are reused.
const (
	LoaderMimePrefixes      = "loader.mime_prefixes"
	LoaderExtensions        = "loader.extensions"
	LoaderCacheFingerprints = "loader.cache_fingerprints"
)

// Playback Controls - these keys configure the control overlay and transport commands.
const (
	ControlsHideAfter   = "controls.hide_after"
	ControlsSkipSeconds = "controls.skip_seconds"
	ControlsVolume      = "controls.volume"
)

// Room Session - these keys provide the session identity when flags are not given.
const (
	RoomID    = "room.id"
	RoomOwner = "room.owner"
)

// Watch History - these keys control the registry of recently opened videos.
const (
	HistorySave = "history.save"
)

// Transport Events - these keys configure where owner transport transitions are emitted.
const (
	RelayLog     = "relay.log"
	RelayJournal = "relay.journal"
)

// Handle Server - these keys configure the loopback server that issues playable handles.
const (
	BlobMetrics = "blob.metrics"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
