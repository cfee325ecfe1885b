package app

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/schedgrid/internal/document"
	"github.com/specialistvlad/schedgrid/internal/publish"
)

var validate = validator.New()

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DefinitionPath is a definition file or a directory of .hcl files.
	DefinitionPath string `validate:"required"`
	// OutputPath is a file, or a directory when it ends in a separator, is
	// an existing directory, or more than one schedule is generated. Empty
	// writes to the app's output writer.
	OutputPath string
	Format     document.Format `validate:"oneof=xml hcl"`
	// Variables override the defaults of `variable` blocks.
	Variables map[string]string

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`

	Publish bool
	S3      publish.Config `validate:"-"`

	Watch           bool
	Debounce        time.Duration `validate:"gte=0"`
	HealthcheckPort int           `validate:"gte=0,lte=65535"`
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Publish {
		if err := cfg.S3.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.HealthcheckPort > 0 && !cfg.Watch {
		return nil, fmt.Errorf("invalid configuration: the health check server requires watch mode")
	}
	return &cfg, nil
}
