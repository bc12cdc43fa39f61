package capture

import (
	"math"

	"github.com/vovakirdan/tui-coaster/internal/core"
)

type glyph struct {
	r rune
	c core.Color
}

var glyphs = map[string]glyph{
	"cart":       {'=', core.ColorBrightWhite},
	"cannonball": {'o', core.ColorWhite},
	"plunger":    {'+', core.ColorBrightCyan},
	"crate":      {'#', core.ColorBrown},
	"tnt":        {'T', core.ColorRed},
	"bomb":       {'@', core.ColorGray},
	"balloon":    {'O', core.ColorBrightMagenta},
	"zeppelin":   {'Z', core.ColorYellow},
	"plank":      {'-', core.ColorBrown},
	"explosion":  {'*', core.ColorOrange},
	"tar":        {'~', core.ColorGray},
	"wall":       {'|', core.ColorWhite},
	"bonus":      {'$', core.ColorBrightYellow},
	"boss":       {'B', core.ColorBrightRed},
	"obstacle":   {'X', core.ColorGray},
	"decoration": {'.', core.ColorYellow},
}

// Draw paints scene into s, fitting the scene camera to the screen. Items
// are drawn in order, so later ones cover earlier ones. The ground line is
// drawn when it is in view.
func Draw(s *core.Screen, scene Scene) {
	cam := scene.Camera
	if cam.W <= 0 || cam.H <= 0 || s.Width() == 0 || s.Height() == 0 {
		return
	}
	p := core.Projection{
		View:   cam.Rect(),
		Width:  s.Width(),
		Height: s.Height(),
	}

	// The ground sits on the bottom edge of the row just above y=0.
	ground := int(math.Ceil(p.View.Top()/cam.H*float64(s.Height()))) - 1
	if ground >= 0 && ground < s.Height() {
		s.DrawHLine(0, ground, s.Width(), '_', core.ColorGreen)
	}

	for _, it := range scene.Items {
		g, ok := glyphs[it.Kind]
		if !ok {
			g = glyph{'?', core.ColorDefault}
		}
		s.FillRect(p, it.Box.Rect(), g.r, g.c)
	}
}

// Frame renders scene as plain text of the given size.
func Frame(scene Scene, cols, rows int) string {
	s := core.NewScreen(cols, rows)
	Draw(s, scene)
	return s.String()
}
