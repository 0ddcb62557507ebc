package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/teslashibe/go-trackbed/internal/config"
	"github.com/teslashibe/go-trackbed/pkg/session"
	"github.com/teslashibe/go-trackbed/pkg/source"
	"github.com/teslashibe/go-trackbed/pkg/testbed"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"source", &testbed.SourceError{Source: source.NewList().At(0), Err: errors.New("busy")}, exitSource},
		{"wrapped source", fmt.Errorf("run: %w", &testbed.SourceError{Err: errors.New("gone")}), exitSource},
		{"manifest", fmt.Errorf("%w: sources.txt", source.ErrManifest), exitConfig},
		{"config", fmt.Errorf("%w: bad", config.ErrInvalid), exitConfig},
		{"start index", session.ErrSourceIndex, exitConfig},
		{"other", errors.New("motion: frame size mismatch"), exitFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode: got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRun_MissingManifest(t *testing.T) {
	code := run(options{manifest: filepath.Join(t.TempDir(), "none.txt")})
	if code != exitConfig {
		t.Errorf("run: got exit %d, want %d", code, exitConfig)
	}
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testbed.yaml")
	if err := os.WriteFile(path, []byte("poll_interval: 0s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := run(options{config: path}); code != exitConfig {
		t.Errorf("run: got exit %d, want %d", code, exitConfig)
	}
}

func TestRun_StartOutOfRange(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "sources.txt")
	if err := os.WriteFile(manifest, []byte("a.mp4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := run(options{manifest: manifest, start: 5}); code != exitConfig {
		t.Errorf("run: got exit %d, want %d", code, exitConfig)
	}
}
