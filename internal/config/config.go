// Package config holds the file locations and log level of a relink run.
//
// The locations are fixed; Default is the only source of a Config in the
// shipped binary. Tests build their own Config pointing into a temp dir.
package config

import (
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Default file names.
const (
	DefaultInputPath  = "input.json"
	DefaultBackupPath = "backup.json"
	DefaultOutputPath = "output.json"
	DefaultLogLevel   = "info"
)

// Config names the three files a run touches.
type Config struct {
	// InputPath is read and never written.
	InputPath string `json:"input_path"`
	// BackupPath receives a byte copy of InputPath before anything else is written.
	BackupPath string `json:"backup_path"`
	// OutputPath receives the rewritten document.
	OutputPath string `json:"output_path"`
	LogLevel   string `json:"log_level"`
}

// Default returns the fixed configuration.
func Default() Config {
	return Config{
		InputPath:  DefaultInputPath,
		BackupPath: DefaultBackupPath,
		OutputPath: DefaultOutputPath,
		LogLevel:   DefaultLogLevel,
	}
}

// InDir returns c with every relative path joined onto dir.
func (c Config) InDir(dir string) Config {
	c.InputPath = join(dir, c.InputPath)
	c.BackupPath = join(dir, c.BackupPath)
	c.OutputPath = join(dir, c.OutputPath)

	return c
}

func join(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(dir, p)
}

// Validate checks that every path is set and that no two paths collide,
// so the input can never be overwritten by the backup or the output.
func (c Config) Validate() error {
	in := filepath.Clean(c.InputPath)
	backup := filepath.Clean(c.BackupPath)

	return validation.ValidateStruct(&c,
		validation.Field(&c.InputPath, validation.Required),
		validation.Field(&c.BackupPath,
			validation.Required,
			validation.By(notIn(in)),
		),
		validation.Field(&c.OutputPath,
			validation.Required,
			validation.By(notIn(in, backup)),
		),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In("debug", "info", "warn", "error"),
		),
	)
}

func notIn(paths ...string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		clean := filepath.Clean(s)
		for _, p := range paths {
			if clean == p {
				return validation.NewError("validation_path_collision", "must differ from the other paths")
			}
		}

		return nil
	}
}
