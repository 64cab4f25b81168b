package layout

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"doin/internal/app"
	"doin/internal/storage"
)

var screen = Rect{W: 80, H: 24}

func twoTasks() []storage.Task {
	return []storage.Task{
		{ID: 0, Title: "A", Content: "desc A"},
		{ID: 1, Title: "B", Content: "desc B\nsecond line"},
	}
}

func send(m app.Model, msgs ...app.Message) app.Model {
	for _, msg := range msgs {
		m, _ = app.Update(m, msg)
	}
	return m
}

func region(t *testing.T, tree Tree, name Name) Region {
	t.Helper()
	r, ok := tree.Region(name)
	require.True(t, ok, "region %s missing", name)
	return r
}

func lineTexts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text())
	}
	return out
}

func TestComposePartitionsScreen(t *testing.T) {
	tree := Compose(app.New(twoTasks()), app.DefaultKeyMap(), screen)

	var names []Name
	for _, r := range tree.Regions {
		names = append(names, r.Name)
	}
	require.Equal(t, []Name{RegionFrame, RegionList, RegionDescription, RegionFooter}, names)

	require.Equal(t, Rect{X: 0, Y: 0, W: 80, H: 23}, region(t, tree, RegionFrame).Rect)
	require.Equal(t, Rect{X: 0, Y: 23, W: 80, H: 1}, region(t, tree, RegionFooter).Rect)
	require.Equal(t, Rect{X: 2, Y: 1, W: 45, H: 21}, region(t, tree, RegionList).Rect)
	require.Equal(t, Rect{X: 47, Y: 1, W: 31, H: 21}, region(t, tree, RegionDescription).Rect)
	require.Equal(t, appTitle, region(t, tree, RegionFrame).Title)
}

func TestComposeListHighlightsSelection(t *testing.T) {
	m := send(app.New(twoTasks()), app.MoveDownMsg{})
	list := region(t, Compose(m, app.DefaultKeyMap(), screen), RegionList)

	require.Equal(t, []Line{
		{{Text: "A", Style: StylePlain}},
		{{Text: "B", Style: StyleSelected}},
	}, list.Lines)
}

func TestComposeDescriptionFollowsSelection(t *testing.T) {
	keys := app.DefaultKeyMap()
	m := app.New(twoTasks())
	desc := region(t, Compose(m, keys, screen), RegionDescription)
	require.Equal(t, []string{"desc A"}, lineTexts(desc.Lines))
	require.True(t, desc.Wrap)

	m = send(m, app.MoveDownMsg{})
	desc = region(t, Compose(m, keys, screen), RegionDescription)
	require.Equal(t, []string{"desc B", "second line"}, lineTexts(desc.Lines))
}

func TestComposeEmptyListAfterDeletingLastTask(t *testing.T) {
	m := app.New([]storage.Task{{ID: 0, Title: "only", Content: "gone soon"}})
	m = send(m, app.OpenDeleteMsg{}, app.ConfirmMsg{})
	require.Empty(t, m.Tasks())

	tree := Compose(m, app.DefaultKeyMap(), screen)
	require.Empty(t, region(t, tree, RegionList).Lines)
	require.Empty(t, region(t, tree, RegionDescription).Lines)
	_, ok := tree.Region(RegionModal)
	require.False(t, ok)
}

func TestComposeListScrollsToSelection(t *testing.T) {
	var tasks []storage.Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, storage.Task{ID: i, Title: fmt.Sprintf("task %d", i)})
	}
	m := app.New(tasks)
	for i := 0; i < 5; i++ {
		m = send(m, app.MoveDownMsg{})
	}

	// 8 rows: 1 footer, frame border 2, pane border 2 leaves 3 task rows
	list := region(t, Compose(m, app.DefaultKeyMap(), Rect{W: 80, H: 8}), RegionList)
	require.Equal(t, []string{"task 3", "task 4", "task 5"}, lineTexts(list.Lines))
	require.Equal(t, StyleSelected, list.Lines[2][0].Style)
}

func TestComposeFooterLegend(t *testing.T) {
	footer := region(t, Compose(app.New(nil), app.DefaultKeyMap(), screen), RegionFooter)
	require.Equal(t, AlignCenter, footer.Align)
	require.Len(t, footer.Lines, 1)

	spans := footer.Lines[0]
	require.Len(t, spans, 12)
	for i, sp := range spans {
		want := StyleLegendKey
		if i%2 == 1 {
			want = StyleLegendLabel
		}
		require.Equal(t, want, sp.Style, "span %d", i)
	}
	require.Equal(t, " Q/ESC ", spans[0].Text)
	require.Equal(t, " Quit ", spans[1].Text)
	require.Equal(t, " Delete Task ", spans[11].Text)
}

func TestComposeAddModalDrawnLast(t *testing.T) {
	m := send(app.New(twoTasks()), app.OpenAddMsg{})
	tree := Compose(m, app.DefaultKeyMap(), screen)

	last := tree.Regions[len(tree.Regions)-1]
	require.Equal(t, RegionModal, last.Name)
	require.Equal(t, "Add Task", last.Title)
	require.True(t, last.Clear)
	require.True(t, last.Border)
	require.Equal(t, Rect{X: 16, Y: 7, W: 48, H: 10}, last.Rect)
	require.Equal(t, "> ", last.Lines[1][0].Text)
	require.Equal(t, StyleCursor, last.Lines[1][1].Style)
	require.Equal(t, "Task title", last.Lines[1][2].Text)
}

func TestComposeEditModalPrefilled(t *testing.T) {
	m := send(app.New(twoTasks()), app.MoveDownMsg{}, app.OpenEditMsg{})
	modal := region(t, Compose(m, app.DefaultKeyMap(), screen), RegionModal)

	require.Equal(t, "Edit Task", modal.Title)
	texts := lineTexts(modal.Lines)
	require.Equal(t, "> B ", texts[1])
	require.Equal(t, "Description (line 2/2)", texts[3])
	require.Equal(t, "  second line", texts[4])

	m = send(m, app.NextFieldMsg{}, app.InputMsg{Key: tea.KeyMsg{Type: tea.KeyUp}})
	texts = lineTexts(region(t, Compose(m, app.DefaultKeyMap(), screen), RegionModal).Lines)
	require.Equal(t, "Description (line 1/2)", texts[3])
	require.Contains(t, texts[4], "> desc B")
}

func TestComposeFormHintNamesCancelKey(t *testing.T) {
	m := send(app.New(twoTasks()), app.OpenAddMsg{})
	modal := region(t, Compose(m, app.DefaultKeyMap(), screen), RegionModal)

	texts := lineTexts(modal.Lines)
	require.Len(t, texts, modal.Content().H)
	require.Equal(t, "ENTER save • TAB switch field", texts[6])
	require.Equal(t, "ESC cancel • other keys type text", texts[7])
}

func TestComposeFormShowsValidationError(t *testing.T) {
	m := send(app.New(nil), app.OpenAddMsg{}, app.ConfirmMsg{})
	modal := region(t, Compose(m, app.DefaultKeyMap(), screen), RegionModal)
	require.Contains(t, lineTexts(modal.Lines), "Title cannot be empty")
}

func TestComposeDeleteModal(t *testing.T) {
	m := send(app.New(twoTasks()), app.OpenDeleteMsg{})
	modal := region(t, Compose(m, app.DefaultKeyMap(), screen), RegionModal)

	require.Equal(t, "Delete Task", modal.Title)
	require.Equal(t, Rect{X: 20, Y: 9, W: 40, H: 6}, modal.Rect)
	require.Equal(t, `Delete "A"?`, modal.Lines[0].Text())
}

func TestComposeIsDeterministic(t *testing.T) {
	keys := app.DefaultKeyMap()
	models := []app.Model{
		app.New(nil),
		app.New(twoTasks()),
		send(app.New(twoTasks()), app.MoveDownMsg{}, app.OpenEditMsg{}),
		send(app.New(twoTasks()), app.OpenDeleteMsg{}),
		send(app.New(twoTasks()), app.OpenAddMsg{}, app.InputMsg{Key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}}),
	}
	for _, m := range models {
		for _, r := range []Rect{screen, {W: 81, H: 25}, {W: 3, H: 2}} {
			require.Equal(t, Compose(m, keys, r), Compose(m, keys, r))
		}
	}
}

func TestComposeSmallScreens(t *testing.T) {
	keys := app.DefaultKeyMap()
	m := send(app.New(twoTasks()), app.OpenAddMsg{})

	require.Empty(t, Compose(m, keys, Rect{}).Regions)

	tree := Compose(app.New(twoTasks()), keys, Rect{W: 10, H: 1})
	require.Len(t, tree.Regions, 1)
	require.Equal(t, RegionFooter, tree.Regions[0].Name)

	modal := region(t, Compose(m, keys, Rect{W: 20, H: 5}), RegionModal)
	require.Equal(t, Rect{X: 0, Y: 0, W: 20, H: 5}, modal.Rect)
}

func TestCenteredRoundsDown(t *testing.T) {
	cases := []struct {
		screen Rect
		want   Rect
	}{
		{Rect{W: 100, H: 50}, Rect{X: 20, Y: 15, W: 60, H: 20}},
		{Rect{W: 101, H: 51}, Rect{X: 20, Y: 15, W: 60, H: 20}},
		{Rect{W: 99, H: 49}, Rect{X: 20, Y: 15, W: 59, H: 19}},
	}
	for _, tc := range cases {
		got := centered(tc.screen, 60, 40, 0, 0)
		require.Equal(t, tc.want, got, "screen %+v", tc.screen)
		require.LessOrEqual(t, got.X+got.W, tc.screen.W)
		require.LessOrEqual(t, got.Y+got.H, tc.screen.H)
	}
}

func TestSplitPercentCoversWidth(t *testing.T) {
	for w := 0; w < 50; w++ {
		l, r := splitPercent(Rect{X: 3, W: w, H: 1}, 60)
		require.Equal(t, w, l.W+r.W)
		require.Equal(t, l.X+l.W, r.X)
		require.Equal(t, w*60/100, l.W)
	}
}
