package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSubmodulesLoaded EventType = "SubmodulesLoaded"
	EventRefreshFailed    EventType = "RefreshFailed"
	EventPopupOpened      EventType = "PopupOpened"
	EventPopupClosed      EventType = "PopupClosed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SubmodulesLoadedEvent is emitted after the submodule list was replaced
type SubmodulesLoadedEvent struct {
	RepoPath string
	Count    int
}

func (e SubmodulesLoadedEvent) Type() EventType { return EventSubmodulesLoaded }

// RefreshFailedEvent is emitted when the list provider failed
type RefreshFailedEvent struct {
	RepoPath string
	Err      error
}

func (e RefreshFailedEvent) Type() EventType { return EventRefreshFailed }

// PopupOpenedEvent is emitted when the submodules popup becomes visible
type PopupOpenedEvent struct{}

func (e PopupOpenedEvent) Type() EventType { return EventPopupOpened }

// PopupClosedEvent is emitted when the submodules popup is hidden
type PopupClosedEvent struct{}

func (e PopupClosedEvent) Type() EventType { return EventPopupClosed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
