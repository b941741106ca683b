// Package cfgloader loads and validates application configuration at startup.
package cfgloader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"
)

const (
	codeInvalidEnvironment = "INVALID_ENVIRONMENT"
	codeConfigNotFound     = "CONFIG_NOT_FOUND"
	codeInvalidConfig      = "INVALID_CONFIG"
)

// MustLoad loads configuration like Load and exits the process on any failure.
//
// The file is ./config/${ENVIRONMENT}.yaml. Values may reference environment
// variables (${PG_PASSWORD}); a .env file in the working directory is loaded first.
// Fields use `yaml` tags for mapping, `default` tags for defaults applied after
// unmarshalling and `validate` tags (go-playground/validator) for validation.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		slog.Error("[cfgloader]: " + err.Error())
		os.Exit(1)
	}
	return cfg
}

// Load reads, expands, defaults and validates the configuration file of the current environment.
func Load[T any](opts ...Option) (T, error) {
	var config T

	o := Options{Dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}

	if reflect.ValueOf(&config).Elem().Kind() == reflect.Ptr {
		return config, errx.New("config type must not be a pointer", errx.WithCode(codeInvalidConfig))
	}

	_ = godotenv.Load()

	env := o.Environment
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return config, errx.New(
			"ENVIRONMENT is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.WithCode(codeInvalidEnvironment),
			errx.WithDetails(errx.D{"environment": env}),
		)
	}

	path := filepath.Join(o.Dir, env+".yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, errx.New(
			fmt.Sprintf("config file not found in the path %s", path),
			errx.WithCode(codeConfigNotFound),
		)
	}
	if err != nil {
		return config, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(codeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(codeInvalidConfig))
	}

	if err = validateConfig(&config, env); err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(config)
	}

	return config, nil
}

func validateConfig(config any, env string) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(config)
	if err == nil {
		return nil
	}

	failedFields := make([]string, 0)
	if errs, ok := err.(validator.ValidationErrors); ok { //nolint:errorlint // validator returns the concrete type
		for _, fe := range errs {
			tag := fe.Tag()
			if fe.Param() != "" {
				tag += "=" + fe.Param()
			}
			failedFields = append(failedFields, fmt.Sprintf("%s: %s", fe.Namespace(), tag))
		}
	}

	return errx.New(
		fmt.Sprintf("invalid fields in %s config -> %s", env, strings.Join(failedFields, ",  ")),
		errx.WithCode(codeInvalidConfig),
	)
}
