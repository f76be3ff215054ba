package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	// Logging
	LogLevel  string `env:"EXPENSES_LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn warning error"`
	LogFormat string `env:"EXPENSES_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`

	// Export
	ExportBOM bool `env:"EXPENSES_EXPORT_BOM" envDefault:"false"`

	// AMQP summary notifications, disabled when AMQPURL is empty
	AMQPURL            string        `env:"AMQP_URL" validate:"omitempty,url"`
	AMQPExchange       string        `env:"AMQP_EXCHANGE" envDefault:"expenses" validate:"required_with=AMQPURL"`
	AMQPRoutingKey     string        `env:"AMQP_ROUTING_KEY" envDefault:"summary" validate:"required_with=AMQPURL"`
	AMQPPublishTimeout time.Duration `env:"AMQP_PUBLISH_TIMEOUT" envDefault:"5s"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report environment variable names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := f.Tag.Get("env")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Load reads the configuration from the process environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadFrom is Load with an explicit set of variables instead of the process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// normalize lowercases the enumerated settings so INFO and info are the same level.
func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// NotificationsEnabled reports whether run summaries should be published.
func (c *Config) NotificationsEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	// Validate AMQP URL scheme if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err == nil && parsedURL.Scheme != "" &&
			parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
	}

	if c.AMQPPublishTimeout < 100*time.Millisecond {
		problems = append(problems, fmt.Sprintf("invalid AMQP publish timeout %v: must be at least 100ms", c.AMQPPublishTimeout))
	} else if c.AMQPPublishTimeout > time.Minute {
		problems = append(problems, fmt.Sprintf("invalid AMQP publish timeout %v: must be at most 1 minute", c.AMQPPublishTimeout))
	}

	// Return combined errors
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("invalid %s '%v': must be one of [%s]", fe.Field(), fe.Value(), fe.Param())
	case "url":
		return fmt.Sprintf("invalid %s '%v': must be a valid URL", fe.Field(), fe.Value())
	case "required_with":
		return fmt.Sprintf("%s cannot be empty when AMQP_URL is provided", fe.Field())
	}
	return fmt.Sprintf("invalid %s '%v': failed %s", fe.Field(), fe.Value(), fe.Tag())
}
