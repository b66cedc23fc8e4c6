// Command voronoi renders brute-force Voronoi diagrams.
//
// Usage:
//
//	voronoi [render] [flags]     render to an image file (default)
//	voronoi view [flags]         show the diagram in the terminal
//	voronoi seeds [flags]        list, save or delete seed sets
//	voronoi shader [flags]       print the WGSL or SPIR-V shader
//
// Run "voronoi <command> -h" for the flags of each command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/gpu"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "voronoi: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := "render"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "render":
		return runRender(args, stdout, stderr)
	case "view":
		return runView(args, stderr)
	case "seeds":
		return runSeeds(args, stdout, stderr)
	case "shader":
		return runShader(args, stdout, stderr)
	case "help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: voronoi <command> [flags]

Commands:
  render   render a diagram to an image file (default)
  view     show a diagram in the terminal
  seeds    list generated seeds, or manage stored seed sets
  shader   print the fragment shader as WGSL or SPIR-V
`)
}

// setupLogging routes the voronoi and gpu package logs to w.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	voronoi.SetLogger(l)
	gpu.SetLogger(l)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
