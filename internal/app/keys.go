package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"doin/internal/config"
)

// KeyMap holds the bindings the translator matches against. Help text on the
// legend bindings feeds the footer.
type KeyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

func NewKeyMap(k config.Keymap) KeyMap {
	return KeyMap{
		Quit:      binding(k.Quit, "Quit"),
		Up:        binding(k.Up, "Up"),
		Down:      binding(k.Down, "Down"),
		Add:       binding(k.Add, "Add Task"),
		Edit:      binding(k.Edit, "Edit Task"),
		Delete:    binding(k.Delete, "Delete Task"),
		Confirm:   binding(k.Confirm, "Confirm"),
		Cancel:    binding(k.Cancel, "Cancel"),
		NextField: binding(k.NextField, "Next field"),
		PrevField: binding(k.PrevField, "Previous field"),
	}
}

// DefaultKeyMap returns the bindings for config.Default().
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.Default().Keys)
}

// Legend lists the bindings shown in the footer, in display order.
func (k KeyMap) Legend() []key.Binding {
	return []key.Binding{k.Quit, k.Up, k.Down, k.Add, k.Edit, k.Delete}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpKeys(keys), desc),
	)
}

// helpKeys renders a key list the way the legend shows it, e.g. "Q/ESC" or "↑/K".
func helpKeys(keys []string) string {
	seen := map[string]bool{}
	var out []string
	for _, k := range keys {
		if strings.HasPrefix(k, "ctrl+") {
			continue
		}
		var label string
		switch k {
		case "up":
			label = "↑"
		case "down":
			label = "↓"
		case " ":
			label = "SPACE"
		default:
			label = strings.ToUpper(k)
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return strings.Join(out, "/")
}

var (
	deleteYes = key.NewBinding(key.WithKeys("y", "Y"))
	deleteNo  = key.NewBinding(key.WithKeys("n", "N"))
	forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))
)

// Translate maps one key event to a Message for the given mode. It is total:
// keys with no meaning in mode yield NoOpMsg. Inside the add and edit popups
// unbound keys become InputMsg so letters like q or a can be typed.
func Translate(mode Mode, keys KeyMap, msg tea.KeyMsg) Message {
	switch mode {
	case ModeAdd, ModeEdit:
		switch {
		case key.Matches(msg, keys.Cancel), key.Matches(msg, forceQuit):
			return CancelMsg{}
		case key.Matches(msg, keys.Confirm):
			return ConfirmMsg{}
		case key.Matches(msg, keys.NextField):
			return NextFieldMsg{}
		case key.Matches(msg, keys.PrevField):
			return PrevFieldMsg{}
		}
		return InputMsg{Key: msg}

	case ModeDelete:
		switch {
		case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Quit), key.Matches(msg, deleteNo):
			return CancelMsg{}
		case key.Matches(msg, keys.Confirm), key.Matches(msg, deleteYes):
			return ConfirmMsg{}
		}
		return NoOpMsg{}

	default:
		switch {
		case key.Matches(msg, keys.Quit):
			return QuitMsg{}
		case key.Matches(msg, keys.Up):
			return MoveUpMsg{}
		case key.Matches(msg, keys.Down):
			return MoveDownMsg{}
		case key.Matches(msg, keys.Add):
			return OpenAddMsg{}
		case key.Matches(msg, keys.Edit):
			return OpenEditMsg{}
		case key.Matches(msg, keys.Delete):
			return OpenDeleteMsg{}
		}
		return NoOpMsg{}
	}
}
