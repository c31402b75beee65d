package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings is the persisted configuration record. It is always written
// back whole; absent fields are filled from defaults on load.
type Settings struct {
	MySetting          string `yaml:"my_setting"`
	OAuth2KeysLocation string `yaml:"oauth2_keys_location" env:"OAUTH2_KEYS_LOCATION"`
}

func defaults() Settings {
	return Settings{
		MySetting:          "default",
		OAuth2KeysLocation: "",
	}
}

// Load reads settings from path, merging persisted values over defaults.
// A missing file is not an error; the defaults are returned. The key-file
// location may also come from OAUTH2_KEYS_LOCATION (a .env file alongside
// the binary is honored).
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	s := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if s.MySetting == "" {
		s.MySetting = "default"
	}
	if s.OAuth2KeysLocation == "" {
		s.OAuth2KeysLocation = os.Getenv("OAUTH2_KEYS_LOCATION")
	}

	return &s, nil
}

// Save writes the full settings record to path, creating the parent
// directory if needed. Called whenever the key-file location changes.
func Save(path string, s *Settings) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}
	return nil
}
