package events

// Event type constants for layout events.
const (
	TypeViewSizeChanged      = "view_size_changed"
	TypeContainerSizeChanged = "container_size_changed"
	TypeResetRequested       = "reset_requested"
	TypeDirectionChanged     = "direction_changed"
	TypeViewRemoved          = "view_removed"
)

// ViewSizeChangedEvent reports the committed size of one view.
type ViewSizeChangedEvent struct {
	BaseEvent
	ViewID   string `json:"view_id"`
	ViewName string `json:"view_name,omitempty"`
	Size     int    `json:"size"`
}

// NewViewSizeChangedEvent creates a new view_size_changed event.
func NewViewSizeChangedEvent(containerID, viewID, viewName string, size int) ViewSizeChangedEvent {
	return ViewSizeChangedEvent{
		BaseEvent: NewBaseEvent(TypeViewSizeChanged, containerID),
		ViewID:    viewID,
		ViewName:  viewName,
		Size:      size,
	}
}

// ContainerSizeChangedEvent reports a new host size along the main axis.
type ContainerSizeChangedEvent struct {
	BaseEvent
	Size int `json:"size"`
}

// NewContainerSizeChangedEvent creates a new container_size_changed event.
func NewContainerSizeChangedEvent(containerID string, size int) ContainerSizeChangedEvent {
	return ContainerSizeChangedEvent{
		BaseEvent: NewBaseEvent(TypeContainerSizeChanged, containerID),
		Size:      size,
	}
}

// ResetRequestedEvent asks the host to reset sizes on behalf of a handle.
type ResetRequestedEvent struct {
	BaseEvent
	ViewID   string `json:"view_id"`
	ViewName string `json:"view_name,omitempty"`
}

// NewResetRequestedEvent creates a new reset_requested event.
func NewResetRequestedEvent(containerID, viewID, viewName string) ResetRequestedEvent {
	return ResetRequestedEvent{
		BaseEvent: NewBaseEvent(TypeResetRequested, containerID),
		ViewID:    viewID,
		ViewName:  viewName,
	}
}

// DirectionChangedEvent reports a new main axis.
type DirectionChangedEvent struct {
	BaseEvent
	Direction string `json:"direction"`
}

// NewDirectionChangedEvent creates a new direction_changed event.
func NewDirectionChangedEvent(containerID, direction string) DirectionChangedEvent {
	return DirectionChangedEvent{
		BaseEvent: NewBaseEvent(TypeDirectionChanged, containerID),
		Direction: direction,
	}
}

// ViewRemovedEvent reports a view leaving the chain.
type ViewRemovedEvent struct {
	BaseEvent
	ViewID   string `json:"view_id"`
	ViewName string `json:"view_name,omitempty"`
}

// NewViewRemovedEvent creates a new view_removed event.
func NewViewRemovedEvent(containerID, viewID, viewName string) ViewRemovedEvent {
	return ViewRemovedEvent{
		BaseEvent: NewBaseEvent(TypeViewRemoved, containerID),
		ViewID:    viewID,
		ViewName:  viewName,
	}
}
