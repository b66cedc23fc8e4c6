package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/gogpu/voronoi"
	"github.com/gogpu/voronoi/internal/gpu"
)

func runShader(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("shader", flag.ContinueOnError)
	fs.SetOutput(stderr)
	capacity := fs.Int("capacity", voronoi.DefaultCapacity, "seed buffer capacity")
	spirv := fs.Bool("spirv", false, "compile to SPIR-V instead of printing WGSL")
	out := fs.String("o", "", "write to `file` instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	if *spirv {
		b, err := gpu.SPIRVBytes(*capacity)
		if err != nil {
			return err
		}
		data = b
	} else {
		src, err := gpu.ShaderSource(*capacity)
		if err != nil {
			return err
		}
		data = []byte(src)
	}

	if *out != "" {
		return os.WriteFile(*out, data, 0o644)
	}
	if *spirv && isTerminal(stdout) {
		return errors.New("refusing to write SPIR-V to a terminal; use -o")
	}
	_, err := stdout.Write(data)
	return err
}
