package publish

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvEndpoint  = "SCHEDGRID_S3_ENDPOINT"
	EnvRegion    = "SCHEDGRID_S3_REGION"
	EnvAccessKey = "SCHEDGRID_S3_ACCESS_KEY"
	EnvSecretKey = "SCHEDGRID_S3_SECRET_KEY"
	EnvBucket    = "SCHEDGRID_S3_BUCKET"
	EnvPrefix    = "SCHEDGRID_S3_PREFIX"
	EnvUseSSL    = "SCHEDGRID_S3_USE_SSL"
)

const defaultRegion = "us-east-1"

var validate = validator.New()

// Config holds the connection settings of the bucket.
type Config struct {
	Endpoint  string `yaml:"endpoint" validate:"required"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"-" validate:"required"`
	SecretKey string `yaml:"-" validate:"required"`
	Bucket    string `yaml:"bucket" validate:"required,min=3,max=63"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ConfigFromEnv fills the fields of base that getenv has a value for.
func ConfigFromEnv(base Config, getenv func(string) string) (Config, error) {
	cfg := base
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.Endpoint, EnvEndpoint)
	set(&cfg.Region, EnvRegion)
	set(&cfg.AccessKey, EnvAccessKey)
	set(&cfg.SecretKey, EnvSecretKey)
	set(&cfg.Bucket, EnvBucket)
	set(&cfg.Prefix, EnvPrefix)

	if raw := strings.TrimSpace(getenv(EnvUseSSL)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvUseSSL, raw, err)
		}
		cfg.UseSSL = v
	}
	return cfg, nil
}

// Validate checks that every field required to connect is present.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid publish configuration: %w", err)
	}
	return nil
}
