package app

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"doin/internal/storage"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeDelete:
		return "delete"
	default:
		return "unknown"
	}
}

type RunState int

const (
	Running RunState = iota
	Done
)

// Field identifies a popup input.
type Field int

const (
	FieldTitle Field = iota
	FieldContent
)

// Popup is the overlay payload. Kind is ModeNormal when no popup is open.
// TargetID names the task an edit or delete applies to.
type Popup struct {
	Kind     Mode
	TargetID int
	Title    textinput.Model
	Content  textarea.Model
	Focus    Field
	Err      string

	// input values right after prefill, to tell untouched fields apart
	initTitle   string
	initContent string
}

// Model is the whole UI state. It is a value: Update returns a new Model and
// never mutates the task slice it was given.
type Model struct {
	tasks    []storage.Task
	selected int
	popup    Popup
	state    RunState
}

func New(tasks []storage.Task) Model {
	return Model{}.WithTasks(tasks)
}

// WithTasks replaces the task list, as a reload does, and clamps the
// selection. The popup is kept.
func (m Model) WithTasks(tasks []storage.Task) Model {
	m.tasks = slices.Clone(tasks)
	m.selected = clampCursor(m.selected, len(m.tasks))
	return m
}

// Tasks returns the task list in display order. Callers must not modify it.
func (m Model) Tasks() []storage.Task { return m.tasks }

func (m Model) Selected() int { return m.selected }

func (m Model) Mode() Mode { return m.popup.Kind }

func (m Model) Popup() Popup { return m.popup }

func (m Model) State() RunState { return m.state }

func (m Model) Running() bool { return m.state == Running }

// SelectedTask returns the task under the cursor, or false for an empty list.
func (m Model) SelectedTask() (storage.Task, bool) {
	if len(m.tasks) == 0 {
		return storage.Task{}, false
	}
	return m.tasks[clampCursor(m.selected, len(m.tasks))], true
}

// Target returns the task the open edit or delete popup refers to. It reports
// false when no such popup is open or a reload removed the task.
func (m Model) Target() (storage.Task, bool) {
	if m.popup.Kind != ModeEdit && m.popup.Kind != ModeDelete {
		return storage.Task{}, false
	}
	i := m.indexOf(m.popup.TargetID)
	if i < 0 {
		return storage.Task{}, false
	}
	return m.tasks[i], true
}

func (m Model) indexOf(id int) int {
	return slices.IndexFunc(m.tasks, func(t storage.Task) bool { return t.ID == id })
}

func newFormPopup(kind Mode, target int, title, content string) Popup {
	p := Popup{
		Kind:     kind,
		TargetID: target,
		Title:    newTitleInput(title),
		Content:  newContentInput(content),
	}
	p.initTitle = p.Title.Value()
	p.initContent = p.Content.Value()
	return p.focus(FieldTitle)
}

func newTitleInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Task title"
	ti.CharLimit = 0
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(value)
	return ti
}

// newContentInput keeps line breaks and sets no length or line limit, so a
// prefilled description round-trips intact.
func newContentInput(value string) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "Description"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetValue(value)
	return ta
}

func (p Popup) focus(f Field) Popup {
	p.Focus = f
	if f == FieldTitle {
		p.Title.Focus()
		p.Content.Blur()
	} else {
		p.Content.Focus()
		p.Title.Blur()
	}
	return p
}

// edited returns the trimmed value of field f, or orig when the field still
// holds its prefilled text.
func (p Popup) edited(f Field, orig string) string {
	v, init := p.Title.Value(), p.initTitle
	if f == FieldContent {
		v, init = p.Content.Value(), p.initContent
	}
	if v == init {
		return orig
	}
	return strings.TrimSpace(v)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
