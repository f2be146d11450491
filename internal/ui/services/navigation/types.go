package navigation

// Direction represents a logical navigation command
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// CursorMovedEvent is published when a navigation command moved the selection
type CursorMovedEvent struct {
	Direction Direction
	OldIndex  int
	NewIndex  int
}
