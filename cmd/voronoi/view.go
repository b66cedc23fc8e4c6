package main

import (
	"context"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/config"
)

// halfBlock draws two vertically stacked pixels in one cell: the
// foreground is the top pixel and the background the bottom one.
const halfBlock = '▀'

func runView(args []string, stderr io.Writer) error {
	flags := newCommonFlags("view", stderr)
	cfg, err := flags.parse(args)
	if err != nil {
		return err
	}
	setupLogging(stderr, flags.verbose)

	buf, regenerate, err := viewerSeeds(cfg, flags.load)
	if err != nil {
		return err
	}
	cfg.Capacity = buf.Capacity()

	be, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	v := &viewer{screen: screen, backend: be, buf: buf}
	return v.loop(regenerate)
}

// viewerSeeds returns the first seed buffer of a viewer session and the
// function the r key calls for the next one. A stored snapshot is shown
// unchanged. Otherwise one generator serves the whole session, so every
// press draws a new set even when rng_seed is fixed.
func viewerSeeds(cfg config.Config, load string) (*voronoi.PackedBuffer, func() (*voronoi.PackedBuffer, error), error) {
	if load != "" {
		buf, err := seedBuffer(context.Background(), cfg, load)
		if err != nil {
			return nil, nil, err
		}
		return buf, func() (*voronoi.PackedBuffer, error) { return buf, nil }, nil
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	next := func() (*voronoi.PackedBuffer, error) {
		return packGenerated(gen, cfg.Seeds)
	}
	buf, err := next()
	if err != nil {
		return nil, nil, err
	}
	return buf, next, nil
}

// viewer presents frames on a terminal. Every resize recomputes the
// resolution and renders a new frame.
type viewer struct {
	screen  tcell.Screen
	backend backend
	buf     *voronoi.PackedBuffer
}

// loop handles events until Esc, q or Ctrl-C. The r key replaces the
// seeds with the result of regenerate.
func (v *viewer) loop(regenerate func() (*voronoi.PackedBuffer, error)) error {
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			if err := v.draw(); err != nil {
				return err
			}
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				return nil
			case ev.Rune() == 'r':
				buf, err := regenerate()
				if err != nil {
					return err
				}
				v.buf = buf
				if err := v.draw(); err != nil {
					return err
				}
			}
		}
	}
}

// resolution returns the pixel grid for a terminal of w x h cells.
func resolution(w, h int) voronoi.Resolution {
	return voronoi.Resolution{Width: w, Height: 2 * h}
}

func (v *viewer) draw() error {
	w, h := v.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	img, err := v.backend.Render(v.buf, resolution(w, h))
	if err != nil {
		return err
	}
	blit(v.screen, img)
	v.screen.Show()
	return nil
}

// blit copies img onto the screen, two pixel rows per cell row.
func blit(screen tcell.Screen, img *voronoi.Pixmap) {
	for y := 0; y+1 < img.Height(); y += 2 {
		for x := 0; x < img.Width(); x++ {
			top := img.GetPixel(x, y)
			bottom := img.GetPixel(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
}
