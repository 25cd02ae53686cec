package render

import "github.com/gdamore/tcell/v2"

// Output receives finished frames
type Output interface {
	Present(c *Canvas)
}

// Screen presents canvases on a tcell screen
type Screen struct {
	screen tcell.Screen
}

// NewScreen wraps s as a render target
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Present copies every cell and shows the frame
func (s *Screen) Present(c *Canvas) {
	w, h := s.screen.Size()
	for y := 0; y < min(h, c.Height()); y++ {
		for x := 0; x < min(w, c.Width()); x++ {
			cell, _ := c.Get(x, y)
			s.screen.SetContent(x, y, cell.Rune, nil, cell.Style)
		}
	}
	s.screen.Show()
}

// Size returns the terminal size in cells
func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}
