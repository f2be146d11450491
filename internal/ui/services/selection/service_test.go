package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgrip/internal/domain"
)

func records(n int) []domain.Submodule {
	out := make([]domain.Submodule, n)
	for i := range out {
		out[i] = domain.Submodule{Path: fmt.Sprintf("mod-%d", i)}
	}
	return out
}

func TestSetSelectionClamps(t *testing.T) {
	s := NewService(nil)
	s.Refresh(records(5))

	for candidate := 0; candidate < 20; candidate++ {
		s.SetSelection(candidate)
		want := candidate
		if want > 4 {
			want = 4
		}
		assert.Equal(t, want, s.Index(), "candidate %d", candidate)
	}

	s.SetSelection(-3)
	assert.Zero(t, s.Index())
}

func TestSetSelectionOnEmptyList(t *testing.T) {
	s := NewService(nil)
	s.SetSelection(7)
	assert.Zero(t, s.Index())

	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestRefreshPreservesIndexWhenGrowing(t *testing.T) {
	s := NewService(nil)
	s.Refresh(records(3))
	s.SetSelection(2)

	s.Refresh(records(10))
	assert.Equal(t, 2, s.Index())
}

func TestRefreshClampsIndexWhenShrinking(t *testing.T) {
	s := NewService(nil)
	s.Refresh(records(10))
	s.SetSelection(8)

	s.Refresh(records(4))
	assert.Equal(t, 3, s.Index())

	rec, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "mod-3", rec.Path)

	s.Refresh(nil)
	assert.Zero(t, s.Index())
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestRefreshCopiesRecords(t *testing.T) {
	s := NewService(nil)
	in := records(2)
	s.Refresh(in)
	in[0].Path = "changed"

	assert.Equal(t, "mod-0", s.Records()[0].Path)
	assert.Equal(t, 2, s.Len())
}

type recordingBus struct {
	events []interface{}
}

func (b *recordingBus) Publish(event interface{}) { b.events = append(b.events, event) }
func (b *recordingBus) Subscribe(string, func(interface{})) {}

func TestSelectionChangedEventPublishedOnlyOnChange(t *testing.T) {
	bus := &recordingBus{}
	s := NewService(bus)
	s.Refresh(records(3))
	bus.events = nil

	s.SetSelection(0)
	assert.Empty(t, bus.events)

	s.SetSelection(2)
	require.Len(t, bus.events, 1)
	assert.Equal(t, SelectionChangedEvent{OldIndex: 0, NewIndex: 2, Total: 3}, bus.events[0])
}
