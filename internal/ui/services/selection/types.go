package selection

import "subgrip/internal/domain"

// State holds the record list and the single selected index
type State struct {
	Records []domain.Submodule
	Index   int
}

// SelectionChangedEvent is published when the selected index changes
type SelectionChangedEvent struct {
	OldIndex int
	NewIndex int
	Total    int
}

// RecordsReplacedEvent is published after a refresh replaced the list
type RecordsReplacedEvent struct {
	Total int
	Index int
}
