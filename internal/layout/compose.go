package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"doin/internal/app"
)

const (
	appTitle     = "DOIN - Slow Task Management App"
	listPercent  = 60
	paneMargin   = 1
	footerHeight = 1
)

// Modal sizes as a percentage of the screen, with minimums so the form fits.
const (
	formPercentW, formPercentH     = 60, 40
	formMinW, formMinH             = 44, 10
	deletePercentW, deletePercentH = 50, 20
	deleteMinW, deleteMinH         = 36, 6
)

// Compose partitions screen into regions for m. It is pure: the same inputs
// always produce an equal Tree.
func Compose(m app.Model, keys app.KeyMap, screen Rect) Tree {
	tree := Tree{Screen: screen}
	if screen.Empty() {
		return tree
	}

	body, footer := splitFooter(screen, footerHeight)
	if body.W >= 2 && body.H >= 2 {
		tree.Regions = append(tree.Regions, Region{
			Name:        RegionFrame,
			Rect:        body,
			Title:       appTitle,
			TitleStyle:  StyleFrameTitle,
			Border:      true,
			BorderStyle: StyleBorder,
		})
		list, desc := splitPercent(body.Inset(1).InsetX(paneMargin), listPercent)
		if !list.Empty() {
			tree.Regions = append(tree.Regions, listRegion(m, list))
		}
		if !desc.Empty() {
			tree.Regions = append(tree.Regions, descriptionRegion(m, desc))
		}
	}
	if !footer.Empty() {
		tree.Regions = append(tree.Regions, footerRegion(keys, footer))
	}

	if m.Mode() != app.ModeNormal {
		tree.Regions = append(tree.Regions, modalRegion(m, keys, screen))
	}
	return tree
}

// splitFooter takes a fixed-height strip off the bottom of r.
func splitFooter(r Rect, h int) (body, footer Rect) {
	h = min(h, r.H)
	body = Rect{X: r.X, Y: r.Y, W: r.W, H: r.H - h}
	footer = Rect{X: r.X, Y: r.Y + r.H - h, W: r.W, H: h}
	return body, footer
}

// splitPercent gives the left part pct percent of r's width, rounded down,
// and the right part the rest.
func splitPercent(r Rect, pct int) (left, right Rect) {
	lw := r.W * pct / 100
	left = Rect{X: r.X, Y: r.Y, W: lw, H: r.H}
	right = Rect{X: r.X + lw, Y: r.Y, W: r.W - lw, H: r.H}
	return left, right
}

// centered returns a rect of pct percent of screen, grown to the minimums and
// then clamped to the screen. Offsets round down.
func centered(screen Rect, pctW, pctH, minW, minH int) Rect {
	w := min(max(screen.W*pctW/100, minW), screen.W)
	h := min(max(screen.H*pctH/100, minH), screen.H)
	return Rect{
		X: screen.X + (screen.W-w)/2,
		Y: screen.Y + (screen.H-h)/2,
		W: w,
		H: h,
	}
}

func listRegion(m app.Model, r Rect) Region {
	reg := Region{
		Name:        RegionList,
		Rect:        r,
		Title:       "Tasks",
		TitleStyle:  StylePaneTitle,
		Border:      true,
		BorderStyle: StyleBorder,
	}
	rows := reg.Content().H
	tasks := m.Tasks()
	if rows <= 0 || len(tasks) == 0 {
		return reg
	}

	// keep the selection on screen
	offset := 0
	if m.Selected() >= rows {
		offset = m.Selected() - rows + 1
	}
	end := min(offset+rows, len(tasks))
	for i := offset; i < end; i++ {
		style := StylePlain
		if i == m.Selected() {
			style = StyleSelected
		}
		reg.Lines = append(reg.Lines, Line{{Text: tasks[i].Title, Style: style}})
	}
	return reg
}

func descriptionRegion(m app.Model, r Rect) Region {
	reg := Region{
		Name:        RegionDescription,
		Rect:        r,
		Title:       "Description",
		TitleStyle:  StylePaneTitle,
		Border:      true,
		BorderStyle: StyleBorder,
		Wrap:        true,
	}
	t, ok := m.SelectedTask()
	if !ok || t.Content == "" {
		return reg
	}
	for _, s := range strings.Split(t.Content, "\n") {
		reg.Lines = append(reg.Lines, Line{{Text: s, Style: StylePlain}})
	}
	return reg
}

func footerRegion(keys app.KeyMap, r Rect) Region {
	var line Line
	for _, b := range keys.Legend() {
		h := b.Help()
		line = append(line,
			Span{Text: " " + h.Key + " ", Style: StyleLegendKey},
			Span{Text: " " + h.Desc + " ", Style: StyleLegendLabel},
		)
	}
	return Region{
		Name:  RegionFooter,
		Rect:  r,
		Align: AlignCenter,
		Lines: []Line{line},
	}
}

func modalRegion(m app.Model, keys app.KeyMap, screen Rect) Region {
	p := m.Popup()
	reg := Region{
		Name:        RegionModal,
		TitleStyle:  StyleModalTitle,
		Border:      true,
		BorderStyle: StyleModalBorder,
		Clear:       true,
	}

	switch p.Kind {
	case app.ModeDelete:
		reg.Rect = centered(screen, deletePercentW, deletePercentH, deleteMinW, deleteMinH)
		reg.Title = "Delete Task"
		reg.Wrap = true
		prompt := "This task no longer exists."
		if t, ok := m.Target(); ok {
			prompt = fmt.Sprintf("Delete %q?", t.Title)
		}
		reg.Lines = []Line{
			{{Text: prompt, Style: StylePrompt}},
			{},
			{{Text: fmt.Sprintf("%s/Y confirm • %s/N cancel", keys.Confirm.Help().Key, keys.Cancel.Help().Key), Style: StyleHint}},
		}

	default:
		reg.Rect = centered(screen, formPercentW, formPercentH, formMinW, formMinH)
		reg.Title = "Add Task"
		if p.Kind == app.ModeEdit {
			reg.Title = "Edit Task"
		}
		width := reg.Content().W
		status := Line{}
		if p.Err != "" {
			status = Line{{Text: p.Err, Style: StyleError}}
		}
		reg.Lines = []Line{
			{{Text: "Title", Style: StyleLabel}},
			titleLine(p.Title, p.Focus == app.FieldTitle, width),
			{},
			{{Text: contentLabel(p.Content), Style: StyleLabel}},
			contentLine(p.Content, p.Focus == app.FieldContent, width),
			status,
			{{Text: fmt.Sprintf("%s save • %s switch field", keys.Confirm.Help().Key, keys.NextField.Help().Key), Style: StyleHint}},
			// quit keys are typed into the fields
			{{Text: fmt.Sprintf("%s cancel • other keys type text", keys.Cancel.Help().Key), Style: StyleHint}},
		}
	}
	return reg
}

func titleLine(ti textinput.Model, focused bool, width int) Line {
	return inputLine([]rune(ti.Value()), ti.Position(), ti.Placeholder, focused, width)
}

// contentLine shows the description row under the cursor.
func contentLine(ta textarea.Model, focused bool, width int) Line {
	if ta.Value() == "" {
		return inputLine(nil, 0, ta.Placeholder, focused, width)
	}
	rows := strings.Split(ta.Value(), "\n")
	row := min(ta.Line(), len(rows)-1)
	li := ta.LineInfo()
	return inputLine([]rune(rows[row]), li.StartColumn+li.ColumnOffset, "", focused, width)
}

func contentLabel(ta textarea.Model) string {
	n := strings.Count(ta.Value(), "\n") + 1
	if n == 1 {
		return "Description"
	}
	return fmt.Sprintf("Description (line %d/%d)", min(ta.Line(), n-1)+1, n)
}

const inputPrefix = "> "

// inputLine draws a text field as spans, scrolling the value so the cursor
// stays inside width cells.
func inputLine(value []rune, pos int, placeholder string, focused bool, width int) Line {
	prefix := strings.Repeat(" ", len(inputPrefix))
	if focused {
		prefix = inputPrefix
	}
	line := Line{{Text: prefix, Style: StyleLabel}}

	if len(value) == 0 {
		if focused {
			line = append(line, Span{Text: " ", Style: StyleCursor})
		}
		if placeholder == "" {
			return line
		}
		return append(line, Span{Text: placeholder, Style: StylePlaceholder})
	}

	pos = min(max(pos, 0), len(value))
	avail := width - len(inputPrefix) - 1
	start := 0
	if avail > 0 && pos > avail {
		start = pos - avail
	}
	line = append(line, Span{Text: string(value[start:pos]), Style: StyleInput})
	if !focused {
		return append(line, Span{Text: string(value[pos:]), Style: StyleInput})
	}
	at, rest := " ", ""
	if pos < len(value) {
		at, rest = string(value[pos]), string(value[pos+1:])
	}
	return append(line,
		Span{Text: at, Style: StyleCursor},
		Span{Text: rest, Style: StyleInput},
	)
}
