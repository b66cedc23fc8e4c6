package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gogpu/voronoi"
)

func writeConfig(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voronoi.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Chmod after writing so the umask does not mask perm.
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
width: 320
height: 200
seeds: 64
rng_seed: 42
backend: cpu
background: "ff8000"
`, 0o600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("size = %dx%d, want 320x200", cfg.Width, cfg.Height)
	}
	if cfg.Seeds != 64 {
		t.Errorf("Seeds = %d, want 64", cfg.Seeds)
	}
	if cfg.RNGSeed == nil || *cfg.RNGSeed != 42 {
		t.Errorf("RNGSeed = %v, want 42", cfg.RNGSeed)
	}
	if cfg.Backend != BackendCPU {
		t.Errorf("Backend = %q, want cpu", cfg.Backend)
	}
	// Keys absent from the file keep defaults.
	if cfg.Capacity != voronoi.DefaultCapacity {
		t.Errorf("Capacity = %d, want default %d", cfg.Capacity, voronoi.DefaultCapacity)
	}
	if cfg.Output != Default().Output {
		t.Errorf("Output = %q, want default %q", cfg.Output, Default().Output)
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		t.Fatalf("BackgroundColor: %v", err)
	}
	if got := bg.NRGBA(); got.R != 255 || got.G != 128 || got.B != 0 || got.A != 255 {
		t.Errorf("background = %v, want {255 128 0 255}", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "", 0o600))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != Default().Width || cfg.RNGSeed != nil {
		t.Errorf("empty file should give defaults, got %+v", cfg)
	}
}

func TestLoadRejectsWorldWritable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	_, err := Load(writeConfig(t, "width: 10\n", 0o666))
	if !errors.Is(err, ErrWorldWritable) {
		t.Errorf("err = %v, want ErrWorldWritable", err)
	}
}

func TestLoadRejectsLargeFile(t *testing.T) {
	big := "# " + strings.Repeat("x", MaxFileSize) + "\n"
	_, err := Load(writeConfig(t, big, 0o600))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"zero width", "width: 0", ErrInvalid},
		{"negative seeds", "seeds: -1", ErrInvalid},
		{"zero capacity", "capacity: 0", ErrInvalid},
		{"negative workers", "workers: -2", ErrInvalid},
		{"unknown backend", "backend: metal", ErrInvalid},
		{"bad background", "background: nothex", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml), Default()); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	if _, err := Parse([]byte("colour: red\n"), Default()); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestParseSeedsAboveCapacity(t *testing.T) {
	// Clamping is the generator's job; the config accepts it.
	cfg, err := Parse([]byte("seeds: 3000\ncapacity: 2048\n"), Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Seeds != 3000 {
		t.Errorf("Seeds = %d, want 3000", cfg.Seeds)
	}
}

func TestExpandHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home directory comes from USERPROFILE on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/.voronoi/seeds.db", filepath.Join(home, ".voronoi", "seeds.db")},
		{"seeds.db", "seeds.db"},
		{"/var/lib/seeds.db", "/var/lib/seeds.db"},
		{"~other/seeds.db", "~other/seeds.db"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadExpandsHomeInPaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("home directory comes from USERPROFILE on windows")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(writeConfig(t, "store: ~/.voronoi/seeds.db\noutput: ~/out.png\n", 0o600))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, ".voronoi", "seeds.db"); cfg.Store != want {
		t.Errorf("Store = %q, want %q", cfg.Store, want)
	}
	if want := filepath.Join(home, "out.png"); cfg.Output != want {
		t.Errorf("Output = %q, want %q", cfg.Output, want)
	}
	if strings.Contains(cfg.Store, "~") {
		t.Errorf("Store still contains ~: %q", cfg.Store)
	}
}
