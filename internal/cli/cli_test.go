package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"generate", "render", "inspect", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v", got)
	}
	if got := parseFormats("svg,png"); len(got) != 2 || got[1] != "png" {
		t.Errorf("parseFormats(svg,png) = %v", got)
	}
}

func TestParseFootprint(t *testing.T) {
	pts, err := parseFootprint("0,0; 10,0 ;10,10;0,10")
	if err != nil {
		t.Fatalf("parseFootprint() error = %v", err)
	}
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	if pts[1].X != 10 || pts[1].Y != 0 {
		t.Errorf("pts[1] = %+v", pts[1])
	}

	for _, bad := range []string{"", "0,0;1,1", "a,b;1,0;1,1", "0;1,0;1,1"} {
		if _, err := parseFootprint(bad); err == nil {
			t.Errorf("parseFootprint(%q) expected error", bad)
		}
	}
}

func TestParseRect(t *testing.T) {
	w, d, err := parseRect("12x8.5")
	if err != nil {
		t.Fatalf("parseRect() error = %v", err)
	}
	if w != 12 || d != 8.5 {
		t.Errorf("parseRect() = %g, %g", w, d)
	}
	for _, bad := range []string{"", "12", "0x5", "-3x5", "axb"} {
		if _, _, err := parseRect(bad); err == nil {
			t.Errorf("parseRect(%q) expected error", bad)
		}
	}
}

func TestParseHeights(t *testing.T) {
	hs, err := parseHeights("3, 2.5,4")
	if err != nil {
		t.Fatalf("parseHeights() error = %v", err)
	}
	if len(hs) != 3 || hs[1] != 2.5 {
		t.Errorf("parseHeights() = %v", hs)
	}
	if hs, err := parseHeights(""); err != nil || hs != nil {
		t.Errorf("parseHeights(\"\") = %v, %v", hs, err)
	}
	if _, err := parseHeights("3,0,4"); err == nil {
		t.Error("parseHeights with zero expected error")
	}
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext returned nil without attached logger")
	}
}

func TestBasePath(t *testing.T) {
	cases := []struct {
		output, input, want string
	}{
		{"", "plan.json", "plan"},
		{"out.svg", "plan.json", "out"},
		{"out", "plan.json", "out"},
		{"dir/out.png", "plan.json", "dir/out"},
	}
	for _, tc := range cases {
		if got := basePath(tc.output, tc.input); got != tc.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tc.output, tc.input, got, tc.want)
		}
	}
}
