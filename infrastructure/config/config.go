package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project settings file.
const ConfigFileName = "taskpilot.yaml"

type Config struct {
	OllamaURL            string `yaml:"ollama_url"`
	OllamaModel          string `yaml:"ollama_model"`
	OracleTimeoutSeconds int    `yaml:"oracle_timeout_seconds"`
	HTTPAddr             string `yaml:"http_addr"`
	RunAPI               bool   `yaml:"run_api"`
	SeedDemo             bool   `yaml:"seed_demo"`
	LogLevel             string `yaml:"log_level"`
}

// Load resolves configuration in three layers: built-in defaults, then the
// optional taskpilot.yaml in the working directory, then environment
// variables (a .env file is honored when present).
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env file is optional
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		OllamaURL:            "http://localhost:11434",
		OllamaModel:          "mistral",
		OracleTimeoutSeconds: 30,
		HTTPAddr:             ":8000",
		RunAPI:               false,
		SeedDemo:             true,
		LogLevel:             "info",
	}

	cfg.applyFile(ConfigFileName)
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	// A broken settings file should not take the process down; defaults
	// and environment variables still apply.
	if err := yaml.Unmarshal(data, c); err != nil {
		fmt.Printf("Warning: ignoring %s: %v\n", path, err)
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.OllamaModel = v
	}
	if v := os.Getenv("ORACLE_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			c.OracleTimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("RUN_API"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RunAPI = b
		}
	}
	if v := os.Getenv("SEED_DEMO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SeedDemo = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// OracleTimeout returns the per-call budget for oracle requests.
func (c *Config) OracleTimeout() time.Duration {
	return time.Duration(c.OracleTimeoutSeconds) * time.Second
}
