package events

// Event type constants for config-related events.
const (
	TypeConfigReloaded = "config_reloaded"
)

// ConfigReloadedEvent is emitted when the watcher delivers a new valid
// configuration.
type ConfigReloadedEvent struct {
	BaseEvent
	ConfigPath string `json:"config_path"`
	Direction  string `json:"direction"`
	Views      int    `json:"views"`
}

// NewConfigReloadedEvent creates a new config_reloaded event.
func NewConfigReloadedEvent(containerID, configPath, direction string, views int) ConfigReloadedEvent {
	return ConfigReloadedEvent{
		BaseEvent:  NewBaseEvent(TypeConfigReloaded, containerID),
		ConfigPath: configPath,
		Direction:  direction,
		Views:      views,
	}
}
