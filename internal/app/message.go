package app

import tea "github.com/charmbracelet/bubbletea"

// Message is a closed set of transition requests. Each key event produces at
// most one and Update consumes it exactly once.
type Message interface {
	message()
}

type (
	MoveUpMsg     struct{}
	MoveDownMsg   struct{}
	OpenAddMsg    struct{}
	OpenEditMsg   struct{}
	OpenDeleteMsg struct{}
	CancelMsg     struct{}
	ConfirmMsg    struct{}
	QuitMsg       struct{}
	NoOpMsg       struct{}

	// NextFieldMsg and PrevFieldMsg move focus between popup inputs.
	NextFieldMsg struct{}
	PrevFieldMsg struct{}

	// InputMsg carries a key to the focused popup input.
	InputMsg struct {
		Key tea.KeyMsg
	}
)

func (MoveUpMsg) message()     {}
func (MoveDownMsg) message()   {}
func (OpenAddMsg) message()    {}
func (OpenEditMsg) message()   {}
func (OpenDeleteMsg) message() {}
func (CancelMsg) message()     {}
func (ConfirmMsg) message()    {}
func (QuitMsg) message()       {}
func (NoOpMsg) message()       {}
func (NextFieldMsg) message()  {}
func (PrevFieldMsg) message()  {}
func (InputMsg) message()      {}
