package selection

import (
	"subgrip/internal/domain"
	"subgrip/internal/ui/services/events"
)

// Service owns the record list and the selected index.
// The index always satisfies 0 <= Index < max(1, len(Records)).
type Service struct {
	state *State
	bus   events.EventBus
}

// NewService creates a new selection service
func NewService(bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		state: &State{},
		bus:   bus,
	}
}

// SetSelection clamps candidate to the valid range and stores it
func (s *Service) SetSelection(candidate int) {
	old := s.state.Index

	last := len(s.state.Records) - 1
	switch {
	case last < 0 || candidate < 0:
		candidate = 0
	case candidate > last:
		candidate = last
	}
	s.state.Index = candidate

	if old != candidate {
		s.bus.Publish(SelectionChangedEvent{
			OldIndex: old,
			NewIndex: candidate,
			Total:    len(s.state.Records),
		})
	}
}

// Refresh replaces the records and re-clamps the current index
func (s *Service) Refresh(records []domain.Submodule) {
	s.state.Records = append([]domain.Submodule(nil), records...)
	s.SetSelection(s.state.Index)

	s.bus.Publish(RecordsReplacedEvent{
		Total: len(s.state.Records),
		Index: s.state.Index,
	})
}

// Selected returns the selected record, false if the list is empty
func (s *Service) Selected() (domain.Submodule, bool) {
	if s.state.Index < 0 || s.state.Index >= len(s.state.Records) {
		return domain.Submodule{}, false
	}
	return s.state.Records[s.state.Index], true
}

// Index returns the selected index
func (s *Service) Index() int {
	return s.state.Index
}

// Len returns the number of records
func (s *Service) Len() int {
	return len(s.state.Records)
}

// Records returns the current records. Callers must not modify the slice.
func (s *Service) Records() []domain.Submodule {
	return s.state.Records
}
