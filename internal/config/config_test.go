package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.ServerURL() != "http://localhost:8080/api" {
		t.Fatalf("unexpected default server url %q", c.ServerURL())
	}
	if c.PageSize() != 5 {
		t.Fatalf("expected default page size 5, got %d", c.PageSize())
	}
	if c.SortBy() != "name" {
		t.Fatalf("expected default sort key name, got %q", c.SortBy())
	}
	if c.Debug() {
		t.Fatal("debug logging should default to off")
	}
}

func TestLoadParsesYaml(t *testing.T) {
	dir := t.TempDir()
	configYAML := strings.TrimSpace(`
version: 1
server_url: https://shop.example.com/api/
admin:
  page_size: 10
  sort_by: price
logging:
  debug: true
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.ServerURL() != "https://shop.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", c.ServerURL())
	}
	if c.PageSize() != 10 || c.SortBy() != "price" {
		t.Fatalf("unexpected admin settings: size=%d sort=%q", c.PageSize(), c.SortBy())
	}
	if !c.Debug() {
		t.Fatal("expected debug logging on")
	}
}

func TestLoadRejectsBadServerURL(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: localhost:8080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for non-http server url")
	}
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: http://file.example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ServerEnvVar, "http://env.example.com")
	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.ServerURL() != "http://env.example.com" {
		t.Fatalf("expected env override, got %q", c.ServerURL())
	}
}

func TestInitDirWritesDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "verdant")
	if err := InitDir(dir); err != nil {
		t.Fatalf("InitDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config.yaml to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Fatalf("expected logs dir to exist: %v", err)
	}
	// A second init must not clobber an edited config.
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: http://edited.example.com\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(dir); err != nil {
		t.Fatalf("InitDir second run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "edited.example.com") {
		t.Fatal("InitDir overwrote an existing config file")
	}
}
