package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"smolwin/internal/config"
)

func TestInitConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".smoldemo.yaml")
	if err := initConfig(path); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != config.Default() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestInitConfigKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".smoldemo.yaml")
	if err := os.WriteFile(path, []byte("backend: x11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(path); !errors.Is(err, errConfigExists) {
		t.Fatalf("expected errConfigExists, got %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "backend: x11\n" {
		t.Fatalf("existing file changed: %q", body)
	}
}

func TestOpenBackendHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendHeadless
	p, err := openBackend(cfg, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if p.Name() != "headless" {
		t.Fatalf("got backend %q", p.Name())
	}
}
