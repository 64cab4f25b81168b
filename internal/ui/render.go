package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"doin/internal/layout"
)

// paint turns a composed tree into the frame string. Regions are drawn in
// tree order onto a blank canvas the size of the screen, each one replacing
// the cells under its rect.
func paint(tree layout.Tree) string {
	screen := tree.Screen
	if screen.Empty() {
		return ""
	}
	blank := strings.Repeat(" ", screen.W)
	canvas := make([]string, screen.H)
	for i := range canvas {
		canvas[i] = blank
	}

	for _, r := range tree.Regions {
		for i, line := range renderRegion(r) {
			y := r.Rect.Y - screen.Y + i
			if y < 0 || y >= len(canvas) {
				continue
			}
			canvas[y] = placeLine(canvas[y], line, r.Rect.X-screen.X, r.Rect.W, screen.W)
		}
	}
	return strings.Join(canvas, "\n")
}

// placeLine writes fg over bg starting at cell x, occupying exactly w cells
// and never growing bg past maxW.
func placeLine(bg, fg string, x, w, maxW int) string {
	if x < 0 {
		fg = ansi.TruncateLeft(fg, -x, "")
		w += x
		x = 0
	}
	w = min(w, maxW-x)
	if w <= 0 {
		return bg
	}
	fg = fitWidth(fg, w)
	before := ansi.Truncate(bg, x, "")
	if pad := x - ansi.StringWidth(before); pad > 0 {
		before += strings.Repeat(" ", pad)
	}
	after := ansi.TruncateLeft(bg, x+w, "")
	return before + fg + after
}

// fitWidth cuts or pads s to exactly w cells.
func fitWidth(s string, w int) string {
	sw := ansi.StringWidth(s)
	if sw > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-sw)
}

// renderRegion returns exactly r.Rect.H lines, each r.Rect.W cells wide.
func renderRegion(r layout.Region) []string {
	rect := r.Rect
	if rect.Empty() {
		return nil
	}
	inner := r.Content()
	body := renderContent(r, inner.W, inner.H)

	if !r.Border || rect.W < 2 || rect.H < 2 {
		return fitLines(body, rect.W, rect.H)
	}

	border := lipgloss.RoundedBorder()
	edge := styleFor(r.BorderStyle)
	lines := make([]string, 0, rect.H)
	lines = append(lines, topEdge(border, r.Title, styleFor(r.TitleStyle), edge, rect.W))
	left, right := edge.Render(border.Left), edge.Render(border.Right)
	for _, l := range fitLines(body, inner.W, inner.H) {
		lines = append(lines, left+l+right)
	}
	lines = append(lines, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, rect.W-2)+border.BottomRight))
	return lines
}

// topEdge draws the top border with the title set into it, like
// "╭─Tasks──────╮".
func topEdge(b lipgloss.Border, title string, titleStyle, edge lipgloss.Style, w int) string {
	span := w - 2
	if title == "" || span < 3 {
		return edge.Render(b.TopLeft + strings.Repeat(b.Top, span) + b.TopRight)
	}
	title = ansi.Truncate(title, span-1, "")
	fill := span - 1 - ansi.StringWidth(title)
	return edge.Render(b.TopLeft+b.Top) +
		titleStyle.Render(title) +
		edge.Render(strings.Repeat(b.Top, fill)+b.TopRight)
}

func renderContent(r layout.Region, w, h int) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	var out []string
	for _, line := range r.Lines {
		if r.Wrap {
			text := line.Text()
			if text == "" {
				out = append(out, "")
				continue
			}
			style := plainStyle
			if len(line) > 0 {
				style = styleFor(line[0].Style)
			}
			for _, wrapped := range strings.Split(ansi.Wrap(text, w, ""), "\n") {
				out = append(out, style.Render(wrapped))
			}
		} else {
			var b strings.Builder
			for _, sp := range line {
				b.WriteString(styleFor(sp.Style).Render(sp.Text))
			}
			out = append(out, b.String())
		}
		if len(out) >= h {
			break
		}
	}
	if len(out) > h {
		out = out[:h]
	}
	if r.Align == layout.AlignCenter {
		for i, l := range out {
			out[i] = lipgloss.PlaceHorizontal(w, lipgloss.Center, ansi.Truncate(l, w, ""))
		}
	}
	return out
}

// fitLines pads or cuts lines to exactly h lines of w cells.
func fitLines(lines []string, w, h int) []string {
	out := make([]string, h)
	for i := range out {
		l := ""
		if i < len(lines) {
			l = lines[i]
		}
		out[i] = fitWidth(l, w)
	}
	return out
}
