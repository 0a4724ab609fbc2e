package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultDir is where Load looks for YAML files, relative to the working directory.
	DefaultDir = "configs"

	envPrefix = "APP_"
)

// nestedSections are the multi-word subtrees an env key can descend into.
var nestedSections = []string{"circuit_breaker", "transport", "retry", "quote", "file"}

// Load reads DefaultDir. See LoadFrom.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultDir, profile)
}

// LoadFrom merges, lowest first: built-in defaults, dir/base.yaml,
// dir/<profile>.yaml, APP_* variables (a local .env included) and a bare PORT.
// Missing files are skipped. The result is not validated.
func LoadFrom(dir, profile string) (*Config, error) {
	// Outside local development there is usually no .env.
	_ = godotenv.Load()

	k := koanf.New(".")

	layers := []struct {
		name string
		load func(*koanf.Koanf) error
	}{
		{"defaults", func(k *koanf.Koanf) error { return k.Load(confmap.Provider(defaults(), "."), nil) }},
		{"base config", yamlLayer(filepath.Join(dir, "base.yaml"))},
		{"profile config", profileLayer(dir, profile)},
		{"environment", func(k *koanf.Koanf) error { return k.Load(env.Provider(envPrefix, ".", envKey), nil) }},
		{"PORT", portLayer},
	}

	for _, l := range layers {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.name, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

func profileLayer(dir, profile string) func(*koanf.Koanf) error {
	if profile == "" {
		return func(*koanf.Koanf) error { return nil }
	}

	return yamlLayer(filepath.Join(dir, profile+".yaml"))
}

func yamlLayer(path string) func(*koanf.Koanf) error {
	return func(k *koanf.Koanf) error {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		return nil
	}
}

// portLayer honours the bare PORT most PaaS runtimes assign.
func portLayer(k *koanf.Koanf) error {
	raw := os.Getenv("PORT")
	if raw == "" {
		return nil
	}

	port, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("PORT %q is not a number", raw)
	}

	return k.Load(confmap.Provider(map[string]any{"server.port": port}, "."), nil)
}

// envKey turns APP_CLIENT_RETRY_MAX_ATTEMPTS into client.retry.max_attempts.
// Top-level sections are single words; nestedSections covers the rest.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))

	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}

	for _, sub := range nestedSections {
		if leaf, found := strings.CutPrefix(rest, sub+"_"); found {
			return section + "." + sub + "." + leaf
		}
	}

	return section + "." + rest
}
