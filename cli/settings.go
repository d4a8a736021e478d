package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LovationAdmin/finanzas/models"

	"github.com/BurntSushi/toml"
)

const DefaultAPIURL = "http://localhost:3000"

// Settings holds the terminal client configuration.
type Settings struct {
	API  APISettings  `toml:"api"`
	User UserSettings `toml:"user"`
}

type APISettings struct {
	URL string `toml:"url"`
}

// UserSettings remembers who logged in last.
type UserSettings struct {
	Name string      `toml:"name,omitempty"`
	Role models.Role `toml:"role,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{API: APISettings{URL: DefaultAPIURL}}
}

// SettingsDir returns the XDG-compliant config directory.
func SettingsDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finanzas")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finanzas")
}

func SettingsPath() string {
	return filepath.Join(SettingsDir(), "config.toml")
}

// LoadSettings reads the settings file, returning defaults if it doesn't
// exist. FINANZAS_API_URL overrides the stored URL.
func LoadSettings() (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(SettingsPath())
	if err != nil && !os.IsNotExist(err) {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings: %w", err)
		}
	}

	if url := os.Getenv("FINANZAS_API_URL"); url != "" {
		s.API.URL = url
	}
	if s.API.URL == "" {
		s.API.URL = DefaultAPIURL
	}
	return s, nil
}

// SaveSettings writes the settings to disk.
func SaveSettings(s Settings) error {
	if err := os.MkdirAll(SettingsDir(), 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	f, err := os.OpenFile(SettingsPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(s)
}

// CurrentUser returns the remembered user.
func (s Settings) CurrentUser() (models.User, bool) {
	if s.User.Name == "" {
		return models.User{}, false
	}
	return models.User{Name: s.User.Name, Role: s.User.Role}, true
}
