package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultStoreName      = "taskpad.db"

	appDirName = "taskpad"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Add       string `toml:"add"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	Toggle    string `toml:"toggle"`
	Delete    string `toml:"delete"`
	Edit      string `toml:"edit"`
	Filter    string `toml:"filter"`
	ClearDone string `toml:"clear_done"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type Config struct {
	StorePath     string `toml:"store_path"`
	DefaultFilter string `toml:"default_filter"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the config file under the user config dir,
// falling back to the working directory when that dir is unavailable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath()
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		StorePath:     defaultStorePath(),
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:      "q",
			Add:       "a",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Delete:    "d",
			Edit:      "e",
			Filter:    "f",
			ClearDone: "c",
			Confirm:   "enter",
			Cancel:    "esc",
		},
	}
}

func defaultStorePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultStoreName
	}
	return filepath.Join(base, appDirName, DefaultStoreName)
}
