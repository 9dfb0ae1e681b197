// cmd/arena/main_test.go
package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/crystal-raiders/pkg/config"
)

func TestRun_ReturnsErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: "bogus"},
		{name: "unknown renderer", args: []string{"-renderer", "vector"}, wantErr: "unknown renderer"},
		{name: "default without path", args: []string{"-renderer", "null", "-default", "-config", ""}, wantErr: "-config is required"},
		{name: "missing tuning file", args: []string{"-renderer", "null", "-config", missing}, wantErr: "load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRun_HelpIsNotAnError(t *testing.T) {
	if err := run(context.Background(), []string{"-h"}, io.Discard); err != nil {
		t.Errorf("run(-h) = %v", err)
	}
}

func TestRun_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")

	if err := run(context.Background(), []string{"-renderer", "null", "-default", "-config", path}, io.Discard); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("tuning file not written: %v", err)
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if want := config.DefaultConfig().Arena.Width; loaded.Arena.Width != want {
		t.Errorf("arena width = %v, want %v", loaded.Arena.Width, want)
	}
}
