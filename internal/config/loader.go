package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// levelPopups is the number of completion popups, one per hand-authored level.
const levelPopups = 3

// AppDir is the per-user directory holding configs, logs and the results database.
const AppDir = ".portfolio-drive"

// LoadDrive loads the drive game configuration.
// Search order: customPath -> ~/.portfolio-drive/configs/drive.yaml -> ./configs/drive.yaml -> embedded default.
// A custom path that cannot be read, parsed or validated is an error; the
// other sources fall through to the next one.
func LoadDrive(customPath string) (DriveConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DriveConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseDrive(data)
		if err != nil {
			return DriveConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", "drive.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseDrive(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/drive.yaml"); err == nil {
		if cfg, err := parseDrive(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseDrive(defaultDriveYAML)
	if err != nil {
		return DefaultDriveConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseDrive decodes YAML on top of the built-in defaults and validates the result,
// so a partial file only overrides the keys it sets.
func parseDrive(data []byte) (DriveConfig, error) {
	cfg := DefaultDriveConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DriveConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DriveConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable game.
func (c DriveConfig) Validate() error {
	if c.Physics.Speed <= 0 {
		return fmt.Errorf("%w: physics.speed must be positive, got %v", ErrInvalid, c.Physics.Speed)
	}
	if c.Physics.CollisionRadius <= 0 {
		return fmt.Errorf("%w: physics.collision_radius must be positive, got %v", ErrInvalid, c.Physics.CollisionRadius)
	}
	if c.Timing.AdvanceDelayMS < 0 {
		return fmt.Errorf("%w: timing.advance_delay_ms must not be negative", ErrInvalid)
	}
	if c.Input.HoldInitialMS < 0 || c.Input.HoldRepeatMS < 0 {
		return fmt.Errorf("%w: input hold timeouts must not be negative", ErrInvalid)
	}
	if len(c.Content.Levels) != levelPopups {
		return fmt.Errorf("%w: content.levels needs %d entries, got %d", ErrInvalid, levelPopups, len(c.Content.Levels))
	}
	return nil
}

// UserPath joins elem under ~/.portfolio-drive, or returns empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
