package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/schedgrid/internal/publish"
	"gopkg.in/yaml.v3"
)

// Settings are defaults read from a YAML file. Command line flags override
// them.
type Settings struct {
	Output          string            `yaml:"output"`
	Format          string            `yaml:"format"`
	LogLevel        string            `yaml:"log_level"`
	LogFormat       string            `yaml:"log_format"`
	Variables       map[string]string `yaml:"variables"`
	Publish         bool              `yaml:"publish"`
	Watch           bool              `yaml:"watch"`
	Debounce        time.Duration     `yaml:"debounce"`
	HealthcheckPort int               `yaml:"healthcheck_port"`
	S3              publish.Config    `yaml:"s3"`
}

// LoadSettings reads a settings file. Unknown keys are an error.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	var s Settings
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return &s, nil
}

// LoadEnv returns a lookup function over the process environment, falling
// back to the variables of a dotenv file when path is set. Process
// variables take precedence, as with godotenv.Load, but the process
// environment itself is left untouched.
func LoadEnv(path string) (func(string) string, error) {
	var fileVars map[string]string
	if path != "" {
		var err error
		fileVars, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}
	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return v
		}
		return fileVars[key]
	}, nil
}
