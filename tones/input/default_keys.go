package input

import "github.com/valerio/go-tones/tones/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Backends can use these mappings as a base and override/extend as needed.
var DefaultKeyMap = map[string]action.Action{
	"Space": action.PlayerReplay,
	"Enter": action.PlayerReplay,
	"r":     action.PlayerReplay,
	"s":     action.PlayerStop,
	"m":     action.PlayerMuteToggle,
	"v":     action.PlayerVolumeModeCycle,

	"+": action.DebugLogLevelIncrease,
	"=": action.DebugLogLevelIncrease, // Alternative without shift
	"-": action.DebugLogLevelDecrease,
	"_": action.DebugLogLevelDecrease, // Alternative with shift

	"Escape": action.PlayerQuit,
	"q":      action.PlayerQuit,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
