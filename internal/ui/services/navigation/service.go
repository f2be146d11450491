package navigation

import (
	"math"

	"subgrip/internal/ui/services/events"
)

// Selector is the part of the selection model navigation drives
type Selector interface {
	Index() int
	Len() int
	SetSelection(candidate int)
}

// Service maps navigation commands onto selection changes
type Service struct {
	selection Selector
	bus       events.EventBus
}

// NewService creates a new navigation service
func NewService(selection Selector, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		selection: selection,
		bus:       bus,
	}
}

// Navigate applies direction using pageSize rows per page.
// It reports whether the direction was recognized.
func (s *Service) Navigate(direction Direction, pageSize int) bool {
	if pageSize < 0 {
		pageSize = 0
	}

	current := s.selection.Index()
	var target int

	switch direction {
	case DirectionDown:
		target = saturatingAdd(current, 1)
	case DirectionUp:
		target = saturatingSub(current, 1)
	case DirectionPageDown:
		target = saturatingAdd(current, pageSize)
	case DirectionPageUp:
		target = saturatingSub(current, pageSize)
	case DirectionHome:
		target = 0
	case DirectionEnd:
		target = saturatingSub(s.selection.Len(), 1)
	default:
		return false
	}

	s.selection.SetSelection(target)

	if moved := s.selection.Index(); moved != current {
		s.bus.Publish(CursorMovedEvent{
			Direction: direction,
			OldIndex:  current,
			NewIndex:  moved,
		})
	}
	return true
}

// saturatingAdd adds two non-negative values without wrapping
func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// saturatingSub subtracts b from a, stopping at zero
func saturatingSub(a, b int) int {
	if a <= b {
		return 0
	}
	return a - b
}
