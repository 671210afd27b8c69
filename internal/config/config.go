package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/selector"
	"github.com/ensigniasec/countdown/internal/validate"
)

// DefaultPath is where settings are read from unless --config says otherwise.
const DefaultPath = "~/.config/countdown/config.yaml"

// Settings represents the structure of the config file.
type Settings struct {
	Title           string `yaml:"title" validate:"required,max=64"`
	Subtitle        string `yaml:"subtitle" validate:"max=128"`
	FinishedMessage string `yaml:"finished_message" validate:"required,max=128"`
	DefaultTime     string `yaml:"default_time" validate:"required,hhmm"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Title:           "HACKATHON TIMER",
		Subtitle:        "Track your deadline with precision",
		FinishedMessage: "HACKATHON FINISHED!",
		DefaultTime:     selector.DefaultTime,
	}
}

// Config handles the loading and saving of the config file.
type Config struct {
	Path     string
	Settings Settings
}

// NewConfig creates a Config from path, falling back to defaults for a
// missing file.
func NewConfig(path string) (*Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	c := &Config{Path: expandedPath, Settings: Defaults()}
	if err := c.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		logrus.Debugf("No config file at %s; using defaults", c.Path)
	}
	return c, nil
}

// NewOrExistingConfig returns the existing config if the file exists, or
// writes the defaults to disk otherwise.
func NewOrExistingConfig(path string) (*Config, error) {
	c, err := NewConfig(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(c.Path); err == nil {
		return c, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := c.Save(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Load() error {
	logrus.Debug("Loading config file from: ", c.Path)
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return err
	}

	// Validate loaded settings and self-heal when possible.
	if err := validate.Struct(c.Settings); err != nil {
		if c.heal() {
			if err := c.Save(); err != nil {
				return err
			}
		}
	}
	return nil
}

// heal resets every invalid field to its default and reports whether
// anything changed.
func (c *Config) heal() bool {
	defaults := Defaults()
	changed := false
	fix := func(field *string, fallback, tag, key string) {
		if validate.Var(*field, tag) != nil {
			logrus.Warnf("Invalid %s found in config; using default %q.", key, fallback)
			*field = fallback
			changed = true
		}
	}
	fix(&c.Settings.Title, defaults.Title, "required,max=64", "title")
	fix(&c.Settings.Subtitle, defaults.Subtitle, "max=128", "subtitle")
	fix(&c.Settings.FinishedMessage, defaults.FinishedMessage, "required,max=128", "finished_message")
	fix(&c.Settings.DefaultTime, defaults.DefaultTime, "required,hhmm", "default_time")
	return changed
}

// Save writes the settings to the config file.
func (c *Config) Save() error {
	logrus.Debug("Saving config file to: ", c.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o600)
}

// Rows returns the settings as key/value pairs in file order.
func (c *Config) Rows() [][2]string {
	return [][2]string{
		{"title", c.Settings.Title},
		{"subtitle", c.Settings.Subtitle},
		{"finished_message", c.Settings.FinishedMessage},
		{"default_time", c.Settings.DefaultTime},
	}
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
