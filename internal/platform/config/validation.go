package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf key so messages match the YAML and env names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}

		return name
	})

	return v
}

// Validate checks field constraints first, then the rules that span fields.
// The service refuses to start on any failure.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating config: %w", err)
		}

		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	problems = append(problems, c.crossFieldProblems()...)

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(problems, "\n  "))
}

// crossFieldProblems only reports pairs whose members are individually set.
func (c *Config) crossFieldProblems() []string {
	var out []string

	s := c.Server
	if s.RequestTimeout > 0 && s.WriteTimeout > 0 && s.RequestTimeout >= s.WriteTimeout {
		out = append(out, fmt.Sprintf("server.request_timeout (%s) must be shorter than server.write_timeout (%s)",
			s.RequestTimeout, s.WriteTimeout))
	}

	r := c.Client.Retry
	if r.InitialInterval > 0 && r.MaxInterval > 0 && r.MaxInterval < r.InitialInterval {
		out = append(out, fmt.Sprintf("client.retry.max_interval (%s) must not be below client.retry.initial_interval (%s)",
			r.MaxInterval, r.InitialInterval))
	}

	db := c.Database
	if db.MaxOpenConns > 0 && db.MaxIdleConns > db.MaxOpenConns {
		out = append(out, fmt.Sprintf("database.max_idle_conns (%d) must not exceed database.max_open_conns (%d)",
			db.MaxIdleConns, db.MaxOpenConns))
	}

	if db.Driver == DriverPostgres && db.DSN != "" && !looksLikePostgresDSN(db.DSN) {
		out = append(out, "database.dsn must be a postgres:// URL or key=value connection string")
	}

	imp := c.Import
	if imp.MaxBatch > 0 && imp.Concurrency > imp.MaxBatch {
		out = append(out, fmt.Sprintf("import.concurrency (%d) must not exceed import.max_batch (%d)",
			imp.Concurrency, imp.MaxBatch))
	}

	return out
}

func looksLikePostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "=")
}

func describeFieldError(fe validator.FieldError) string {
	key := configKey(fe.Namespace())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		field, want, _ := strings.Cut(param, " ")
		if i := strings.LastIndex(key, "."); i >= 0 {
			field = key[:i+1] + strings.ToLower(field)
		}

		return fmt.Sprintf("%s is required when %s is %s", key, field, want)
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(param, " ", ", "))
	case "url":
		return fmt.Sprintf("%s must be an absolute URL, got %q", key, fe.Value())
	}

	return fmt.Sprintf("%s is invalid (%s)", key, fe.Tag())
}

// configKey drops the root struct name: "Config.server.read_timeout" -> "server.read_timeout".
func configKey(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return strings.ToLower(namespace)
	}

	return rest
}
