package app

import (
	"slices"
	"strings"

	"doin/internal/storage"
)

// Effect tells the run loop what to do after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectSave asks for the task list to be written before the next reload.
	EffectSave
)

const errEmptyTitle = "Title cannot be empty"

// Update applies one message. It never fails: combinations that mean nothing
// in the current mode leave the model unchanged.
func Update(m Model, msg Message) (Model, Effect) {
	if m.state == Done {
		return m, EffectNone
	}
	switch m.popup.Kind {
	case ModeAdd, ModeEdit:
		return m.updateForm(msg)
	case ModeDelete:
		return m.updateDelete(msg)
	default:
		return m.updateNormal(msg), EffectNone
	}
}

func (m Model) updateNormal(msg Message) Model {
	switch msg.(type) {
	case MoveUpMsg:
		if len(m.tasks) > 0 && m.selected > 0 {
			m.selected = clampCursor(m.selected-1, len(m.tasks))
		}
	case MoveDownMsg:
		if len(m.tasks) > 0 {
			m.selected = clampCursor(m.selected+1, len(m.tasks))
		}
	case OpenAddMsg:
		m.popup = newFormPopup(ModeAdd, 0, "", "")
	case OpenEditMsg:
		if t, ok := m.SelectedTask(); ok {
			m.popup = newFormPopup(ModeEdit, t.ID, t.Title, t.Content)
		}
	case OpenDeleteMsg:
		if t, ok := m.SelectedTask(); ok {
			m.popup = Popup{Kind: ModeDelete, TargetID: t.ID}
		}
	case QuitMsg:
		m.state = Done
	}
	return m
}

func (m Model) updateForm(msg Message) (Model, Effect) {
	switch msg := msg.(type) {
	case CancelMsg:
		m.popup = Popup{}
	case NextFieldMsg, PrevFieldMsg:
		// two fields, so both directions toggle
		next := FieldContent
		if m.popup.Focus == FieldContent {
			next = FieldTitle
		}
		m.popup = m.popup.focus(next)
	case InputMsg:
		if m.popup.Focus == FieldContent {
			m.popup.Content, _ = m.popup.Content.Update(msg.Key)
		} else {
			m.popup.Title, _ = m.popup.Title.Update(msg.Key)
		}
		m.popup.Err = ""
	case ConfirmMsg:
		return m.confirmForm()
	}
	return m, EffectNone
}

func (m Model) confirmForm() (Model, Effect) {
	p := m.popup
	var orig storage.Task
	i := -1
	if p.Kind == ModeEdit {
		// a reload removed the task
		if i = m.indexOf(p.TargetID); i < 0 {
			m.popup = Popup{}
			return m, EffectNone
		}
		orig = m.tasks[i]
	}

	title := p.edited(FieldTitle, orig.Title)
	content := p.edited(FieldContent, orig.Content)
	if strings.TrimSpace(title) == "" {
		m.popup.Err = errEmptyTitle
		return m, EffectNone
	}
	m.popup = Popup{}

	if p.Kind == ModeAdd {
		t := storage.Task{ID: storage.NextID(m.tasks), Title: title, Content: content}
		m.tasks = append(slices.Clone(m.tasks), t)
		m.selected = len(m.tasks) - 1
		return m, EffectSave
	}

	m.tasks = slices.Clone(m.tasks)
	m.tasks[i].Title = title
	m.tasks[i].Content = content
	m.selected = i
	return m, EffectSave
}

func (m Model) updateDelete(msg Message) (Model, Effect) {
	switch msg.(type) {
	case CancelMsg:
		m.popup = Popup{}
	case ConfirmMsg:
		i := m.indexOf(m.popup.TargetID)
		m.popup = Popup{}
		if i < 0 {
			return m, EffectNone
		}
		m.tasks = slices.Delete(slices.Clone(m.tasks), i, i+1)
		if i < m.selected {
			m.selected--
		}
		m.selected = clampCursor(m.selected, len(m.tasks))
		return m, EffectSave
	}
	return m, EffectNone
}
