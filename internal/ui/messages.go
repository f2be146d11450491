package ui

import (
	"time"
)

// openPopupMsg asks the model to open the submodules popup
type openPopupMsg struct{}

// clearStatusMsg clears the status line if it still shows the message set at `at`
type clearStatusMsg struct {
	at time.Time
}
