package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Name != "datakit" {
		t.Errorf("App.Name = %q, want datakit", cfg.App.Name)
	}
	if cfg.APIServer.Port != 8080 {
		t.Errorf("APIServer.Port = %d, want 8080", cfg.APIServer.Port)
	}
	if cfg.Process.ChunkSize != 1000 {
		t.Errorf("Process.ChunkSize = %d, want 1000", cfg.Process.ChunkSize)
	}
	if got := cfg.APIServer.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("api_server:\n  port: 9090\n  mode: debug\nprocess:\n  chunk_size: 500\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIServer.Port != 9090 {
		t.Errorf("APIServer.Port = %d, want 9090", cfg.APIServer.Port)
	}
	if cfg.APIServer.Mode != "debug" {
		t.Errorf("APIServer.Mode = %q, want debug", cfg.APIServer.Mode)
	}
	if cfg.Process.ChunkSize != 500 {
		t.Errorf("Process.ChunkSize = %d, want 500", cfg.Process.ChunkSize)
	}
	// 未覆盖的字段保持默认值
	if cfg.RefData.SchoolFile != "data/学校名称.xlsx" {
		t.Errorf("RefData.SchoolFile = %q", cfg.RefData.SchoolFile)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "7070")
	t.Setenv("PROCESS_WORKERS", "4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIServer.Port != 7070 {
		t.Errorf("APIServer.Port = %d, want 7070", cfg.APIServer.Port)
	}
	if cfg.Process.Workers != 4 {
		t.Errorf("Process.Workers = %d, want 4", cfg.Process.Workers)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("配置文件不存在应回落默认值, error: %v", err)
	}
	if cfg.APIServer.Port != 8080 {
		t.Errorf("APIServer.Port = %d, want 8080", cfg.APIServer.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_server:\n  mode: invalid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("非法mode应校验失败")
	}
}
