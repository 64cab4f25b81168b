package layout

// Rect is a screen area in character cells.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Inset shrinks r by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// InsetX shrinks r by n cells on the left and right.
func (r Rect) InsetX(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y, W: max(r.W-2*n, 0), H: r.H}
}

type Name string

const (
	RegionFrame       Name = "frame"
	RegionList        Name = "list"
	RegionDescription Name = "description"
	RegionFooter      Name = "footer"
	RegionModal       Name = "modal"
)

// Style is a semantic text style; the rendering backend maps it to colors.
type Style int

const (
	StylePlain Style = iota
	StyleBorder
	StyleFrameTitle
	StylePaneTitle
	StyleSelected
	StyleLegendKey
	StyleLegendLabel
	StyleModalBorder
	StyleModalTitle
	StyleLabel
	StyleInput
	StylePlaceholder
	StyleCursor
	StyleError
	StylePrompt
	StyleHint
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

type Span struct {
	Text  string
	Style Style
}

type Line []Span

// Text returns the line without styling.
func (l Line) Text() string {
	var s string
	for _, sp := range l {
		s += sp.Text
	}
	return s
}

// Region is one named area of the screen. Border draws a box on the outer
// cells with Title in the top edge. Clear blanks the area before drawing.
// Wrap lets the backend word-wrap lines wider than the area; otherwise they
// are cut.
type Region struct {
	Name        Name
	Rect        Rect
	Title       string
	TitleStyle  Style
	Border      bool
	BorderStyle Style
	Clear       bool
	Wrap        bool
	Align       Align
	Lines       []Line
}

// Content returns the area inside the border.
func (r Region) Content() Rect {
	if r.Border {
		return r.Rect.Inset(1)
	}
	return r.Rect
}

// Tree is the composed frame. Regions are in paint order: later regions
// cover earlier ones.
type Tree struct {
	Screen  Rect
	Regions []Region
}

func (t Tree) Region(name Name) (Region, bool) {
	for _, r := range t.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
