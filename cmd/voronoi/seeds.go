package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/gogpu/voronoi/internal/store"
)

func runSeeds(args []string, stdout, stderr io.Writer) error {
	flags := newCommonFlags("seeds", stderr)
	list := flags.fs.Bool("list", false, "list stored seed sets")
	save := flags.fs.String("save", "", "store the seed set under `name`")
	del := flags.fs.String("delete", "", "delete the stored seed set `name`")
	cfg, err := flags.parse(args)
	if err != nil {
		return err
	}
	setupLogging(stderr, flags.verbose)
	ctx := context.Background()

	if *list || *del != "" {
		st, err := store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
		if *del != "" {
			return st.Delete(ctx, *del)
		}
		infos, err := st.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSEEDS\tCAPACITY\tCREATED")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n",
				info.Name, info.Active, info.Capacity, info.Created.Format(time.DateTime))
		}
		return tw.Flush()
	}

	buf, err := seedBuffer(ctx, cfg, flags.load)
	if err != nil {
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

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tX\tY\tCOLOR")
	for i, s := range buf.Unpack().Seeds {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%s\n", i, s.Position.X, s.Position.Y, s.Color.Hex())
	}
	return tw.Flush()
}
