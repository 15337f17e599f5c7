package daria

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Config is the on-disk runtime configuration.
type Config struct {
	MaxDepth  int      `yaml:"max_depth"`
	History   string   `yaml:"history"`
	NoPrelude bool     `yaml:"no_prelude"`
	KeepGoing bool     `yaml:"keep_going"`
	Debug     bool     `yaml:"debug"`
	Load      []string `yaml:"load"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
	}
}

// LoadConfig reads a YAML config file from fs. A missing file, or an empty
// path, yields DefaultConfig. Unknown keys are an error. A leading ~ in path
// stands for the user's home directory.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	c := DefaultConfig()
	if path == "" {
		return c, nil
	}
	path = expandHome(path)

	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "can't read config %s", path)
	}

	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrapf(err, "can't parse config %s", path)
	}
	return c, nil
}

// Options converts the configuration into runtime options. Files listed
// under load are read from fs. The history database, if any, is opened here
// and is owned by the runtime built from the options.
func (c *Config) Options(fs afero.Fs) ([]Option, error) {
	opts := []Option{
		WithFs(fs),
		WithMaxDepth(c.MaxDepth),
		WithDebug(c.Debug),
		WithKeepGoing(c.KeepGoing),
	}
	if c.NoPrelude {
		opts = append(opts, WithNoPrelude())
	}
	if len(c.Load) > 0 {
		opts = append(opts, WithLoad(c.Load...))
	}
	if c.History != "" {
		path := expandHome(c.History)
		s, err := NewSQLiteHistory(path)
		if err != nil {
			return nil, errors.Wrapf(err, "can't open history %s", path)
		}
		opts = append(opts, WithHistory(s))
	}
	return opts, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
