package tui

import (
	"fmt"

	"github.com/vovakirdan/fluffy-runner/internal/core"
)

// drawHUD overlays score and round banners. alpha fades the score line in
// at the start of a round.
func drawHUD(s *core.Screen, st core.GameState, alpha float64) {
	if alpha >= minAlpha {
		c := core.ColorBrightWhite
		if alpha < 1 {
			c = core.ColorGray
		}
		s.DrawTextColored(1, 0, fmt.Sprintf("SCORE %d", st.Score), c)
		best := fmt.Sprintf("BEST %d", st.Best)
		s.DrawTextColored(s.Width()-len(best)-1, 0, best, c)
	}

	mid := s.Height() / 2
	switch {
	case st.Halted:
		s.DrawTextCentered(mid, " SIMULATION HALTED ", core.ColorBrightRed)
		s.DrawTextCentered(mid+1, " r: restart  esc: menu  q: quit ", core.ColorGray)
	case st.GameOver:
		controls := " r: restart  esc: menu  q: quit "
		panel(s, mid-2, 5, len(controls)+2)
		s.DrawTextCentered(mid-1, " GAME OVER ", core.ColorBrightRed)
		s.DrawTextCentered(mid, fmt.Sprintf(" score %d  best %d ", st.Score, st.Best), core.ColorBrightWhite)
		s.DrawTextCentered(mid+1, controls, core.ColorGray)
	case st.Paused:
		s.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		s.DrawTextCentered(mid+1, " p: resume  esc: menu ", core.ColorGray)
	}
}

// panel blanks a boxed area of h rows starting at row y, centered
// horizontally, so banner text stays readable over the world.
func panel(s *core.Screen, y, h, w int) {
	if w > s.Width() {
		w = s.Width()
	}
	r := core.Rect{X: (s.Width() - w) / 2, Y: y, W: w, H: h}
	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, core.ColorGray)
}
