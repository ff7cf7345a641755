package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	EnvPrefix       string = "MODELS__"
	EnvDelimiter    string = "__"
	ConfigDelimiter string = "."
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"source":                        SourceFile,
		"directory":                     ".",
		"cache_dir":                     "models",
		"url_template":                  "https://drive.google.com/uc?id={ref}",
		"drive.credentials_file":        "credentials.json",
		"drive.token_file":              "token.json",
		"etcd.prefix":                   "/config/flightdelay/models/",
		"zookeeper.prefix":              "/config/flightdelay/models",
		"models.regression.file":        "regression_model.json",
		"models.classification.file":    "classification_model.json",
		"models.gradient_boosting.file": "gradient_boosting_model.json",
	}
}

// LoadManifest reads the model manifest. Values come from built-in defaults, then
// the YAML file at path (skipped when it does not exist), then MODELS__* env
// variables, where "__" separates nested keys.
func LoadManifest(path string) (*Manifest, error) {
	k := koanf.New(ConfigDelimiter)

	if err := k.Load(confmap.Provider(defaults(), ConfigDelimiter), nil); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading model manifest %s: %w", path, err)
			}
		} else if errors.Is(err, os.ErrNotExist) {
			logger.Warn(fmt.Sprintf("model manifest %s not found, using defaults", path))
		} else {
			return nil, err
		}
	}

	err := k.Load(env.Provider(EnvPrefix, EnvDelimiter, func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading model manifest env overrides: %w", err)
	}

	manifest := &Manifest{}
	if err := k.Unmarshal("", manifest); err != nil {
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}
