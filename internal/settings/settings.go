// Package settings loads pybuilder's own settings: built-in defaults
// overridden by PYBUILDER_* environment variables. Command-line flags are
// applied on top by the caller.
package settings

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PYBUILDER_"

// Settings holds the tool settings.
type Settings struct {
	// TemplateFolder is an overlay folder whose templates take precedence
	// over the embedded ones.
	TemplateFolder string `koanf:"template_folder"`
	LogLevel       string `koanf:"log_level"`
	LogJSON        bool   `koanf:"log_json"`
	NoColor        bool   `koanf:"no_color"`
	// ConfigName is the project config file name.
	ConfigName string `koanf:"config_name"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LogLevel:   "info",
		ConfigName: "build_config.yaml",
	}
}

// Load returns the defaults overridden by the process environment.
func Load() (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default settings: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment settings: %w", err)
	}

	s := &Settings{}
	if err := k.UnmarshalWithConf("", s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	return s, nil
}

// transformEnvKey maps PYBUILDER_LOG_LEVEL to log_level. Blank values are
// dropped so an empty variable does not wipe a default.
func transformEnvKey(key, value string) (string, any) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
}
