package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-coaster/internal/capture"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/entities"
)

// Render draws the visible world and the HUD to dst.
func (s *Sim) Render(dst *core.Screen) {
	dst.Clear()
	capture.Draw(dst, capture.Take(s.world, s.ctx.Camera))

	hud := fmt.Sprintf(" Score: %d  Combo: x%d  Time: %.1fs ", s.tally.Total(), s.tally.BestCombo(), s.ctx.Time)
	dst.DrawText(1, 0, hud, core.ColorBrightWhite)

	if cart, ok := s.Cart(); ok {
		if d, ok := entities.Cart(cart); ok {
			aim := fmt.Sprintf(" Aim: %2.0f deg ", d.Aim*180/math.Pi)
			dst.DrawText(dst.Width()-len(aim)-1, 0, aim, core.ColorBrightCyan)
		}
	}

	if b, ok := s.Boss(); ok {
		line := fmt.Sprintf(" Boss: %s  Hits: %d/3 ", b.Phase(), b.Hits())
		if t := b.Trapdoor(); t.Open {
			line += fmt.Sprintf(" Trap: %.1fs ", t.Timer)
		}
		if b.Emergency() {
			line += " [BUTTON] "
		}
		dst.DrawText(1, 1, line, core.ColorBrightRed)
	}

	if s.scale != 1 {
		speed := fmt.Sprintf(" x%.2g ", s.scale)
		dst.DrawText(dst.Width()-len(speed)-1, 1, speed, core.ColorYellow)
	}

	switch {
	case s.over:
		centered(dst, "RUN OVER", fmt.Sprintf("Score: %d  |  R to restart", s.tally.Total()))
	case s.paused:
		centered(dst, "PAUSED", "P to resume, . to step")
	}
}

func centered(dst *core.Screen, title, subtitle string) {
	y := dst.Height()/2 - 1
	dst.DrawText((dst.Width()-len(title))/2, y, title, core.ColorBrightWhite)
	dst.DrawText((dst.Width()-len(subtitle))/2, y+2, subtitle, core.ColorWhite)
}
