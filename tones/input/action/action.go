package action

// Action represents input actions that can be performed in the player
type Action int

const (
	// Playback controls
	PlayerReplay Action = iota
	PlayerStop
	PlayerMuteToggle
	PlayerVolumeModeCycle

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease

	PlayerQuit
)

// Info describes an action for logs and help text
type Info struct {
	Name        string
	Description string
}

var infos = map[Action]Info{
	PlayerReplay:          {"replay", "Restart the sequence"},
	PlayerStop:            {"stop", "Stop playback"},
	PlayerMuteToggle:      {"mute", "Toggle sound output"},
	PlayerVolumeModeCycle: {"volume", "Cycle volume mode"},
	DebugLogLevelIncrease: {"log+", "More verbose logging"},
	DebugLogLevelDecrease: {"log-", "Less verbose logging"},
	PlayerQuit:            {"quit", "Quit"},
}

// GetInfo returns the description of an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Name: "unknown", Description: "Unknown action"}
}

func (a Action) String() string {
	return GetInfo(a).Name
}
