// Package config reads the optional cddl.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const FileName = "cddl.toml"

type Config struct {
	Validate Validate `toml:"validate"`
	Generate Generate `toml:"generate"`

	// Jobs is the number of files parsed at once, 0 means one per CPU.
	Jobs int `toml:"jobs"`
}

type Validate struct {
	ReservedNames bool `toml:"reserved_names"`
}

type Generate struct {
	Target string `toml:"target"`
	OutDir string `toml:"out_dir"`
	Header string `toml:"header"`
}

func Default() Config {
	return Config{
		Generate: Generate{
			Target: "ts",
			OutDir: ".",
			Header: "generated by cddl, do not edit",
		},
	}
}

// Load reads the config file at path on top of the defaults. A missing file is
// only an error if required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}

		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if cfg.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: jobs must not be negative", path)
	}

	return cfg, nil
}
