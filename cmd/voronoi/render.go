package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/store"
	"github.com/schollz/progressbar/v3"
)

func runRender(args []string, stdout, stderr io.Writer) error {
	flags := newCommonFlags("render", stderr)
	save := flags.fs.String("save", "", "store the seed set under `name` after rendering")
	cfg, err := flags.parse(args)
	if err != nil {
		return err
	}
	setupLogging(stderr, flags.verbose)
	slog.Debug("render: config", "config", cfg)

	ctx := context.Background()
	buf, err := seedBuffer(ctx, cfg, flags.load)
	if err != nil {
		return err
	}

	// A stored snapshot fixes the capacity the backend must accept.
	cfg.Capacity = buf.Capacity()

	var opts []voronoi.RenderOption
	var bar *progressbar.ProgressBar
	if isTerminal(stderr) {
		bar = progressbar.NewOptions(cfg.Height,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("render"),
			progressbar.OptionClearOnFinish(),
		)
		opts = append(opts, voronoi.WithProgress(func(rows int) {
			_ = bar.Add(rows)
		}))
	}

	be, err := openBackend(cfg, opts...)
	if err != nil {
		return err
	}
	defer be.Close()

	start := time.Now()
	img, err := be.Render(buf, voronoi.Resolution{Width: cfg.Width, Height: cfg.Height})
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := img.Save(cfg.Output); err != nil {
		return err
	}

	if *save != "" {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(ctx, *save, buf); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "%s: %dx%d, %d seeds, %s backend, %v\n",
		cfg.Output, cfg.Width, cfg.Height, buf.ActiveCount(), be.Name(),
		time.Since(start).Round(time.Millisecond))
	return nil
}
