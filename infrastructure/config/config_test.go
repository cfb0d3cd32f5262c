package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every variable Load consults so tests see only what they
// set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OLLAMA_URL", "OLLAMA_MODEL", "ORACLE_TIMEOUT_SECONDS",
		"HTTP_ADDR", "RUN_API", "SEED_DEMO", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaModel != "mistral" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.OracleTimeoutSeconds != 30 {
		t.Errorf("OracleTimeoutSeconds = %d", cfg.OracleTimeoutSeconds)
	}
	if cfg.HTTPAddr != ":8000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.RunAPI {
		t.Error("RunAPI should default to false")
	}
	if !cfg.SeedDemo {
		t.Error("SeedDemo should default to true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.OracleTimeout() != 30*time.Second {
		t.Errorf("OracleTimeout = %v", cfg.OracleTimeout())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("OLLAMA_URL", "http://oracle.internal:11434")
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("ORACLE_TIMEOUT_SECONDS", "5")
	t.Setenv("RUN_API", "true")
	t.Setenv("SEED_DEMO", "false")

	cfg := Load()

	if cfg.OllamaURL != "http://oracle.internal:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaModel != "llama3" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.OracleTimeout() != 5*time.Second {
		t.Errorf("OracleTimeout = %v", cfg.OracleTimeout())
	}
	if !cfg.RunAPI {
		t.Error("RunAPI should be true")
	}
	if cfg.SeedDemo {
		t.Error("SeedDemo should be false")
	}
}

func TestLoadIgnoresBadEnvValues(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("ORACLE_TIMEOUT_SECONDS", "soonish")
	t.Setenv("RUN_API", "yep")

	cfg := Load()

	if cfg.OracleTimeoutSeconds != 30 {
		t.Errorf("OracleTimeoutSeconds = %d, want default 30", cfg.OracleTimeoutSeconds)
	}
	if cfg.RunAPI {
		t.Error("RunAPI should keep its default on an unparseable value")
	}
}

func TestLoadReadsSettingsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ConfigFileName)
	content := "ollama_model: phi3\nhttp_addr: \":9090\"\nlog_level: debug\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}
	t.Chdir(dir)

	cfg := Load()

	if cfg.OllamaModel != "phi3" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	// Keys the file omits keep their defaults.
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
}

func TestEnvBeatsSettingsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(file, []byte("ollama_model: phi3\n"), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("OLLAMA_MODEL", "mixtral")

	cfg := Load()

	if cfg.OllamaModel != "mixtral" {
		t.Errorf("OllamaModel = %q, want env value mixtral", cfg.OllamaModel)
	}
}

func TestLoadSurvivesBrokenSettingsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(file, []byte(":: not yaml ::"), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}
	t.Chdir(dir)

	cfg := Load()

	if cfg.OllamaModel != "mistral" {
		t.Errorf("OllamaModel = %q, want default after broken file", cfg.OllamaModel)
	}
}
