// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the settings of the sdgym commands from
// command-line flags, SDGYM_* environment variables and an optional
// configuration file, in that order of precedence.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Filename is the base name of the configuration file, without
// extension.
const Filename = "sdgym"

// Paths is the list of directories searched for a configuration file
// when none is given explicitly.
var Paths = []string{
	".",
	filepath.Join(xdg.ConfigHome, "sdgym"),
}

// DefaultCacheDir is where downloaded datasets are kept by default.
var DefaultCacheDir = filepath.Join(xdg.CacheHome, "sdgym", "datasets")

// Summary holds the settings of sdgym-summary.
type Summary struct {
	Result   string `mapstructure:"result"`
	Summary  string `mapstructure:"summary"`
	Data     string `mapstructure:"data"`
	Format   string `mapstructure:"format"`
	DBDriver string `mapstructure:"db-driver"`
	DB       string `mapstructure:"db"`
	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`
}

// Dataset holds the settings of sdgym-dataset.
type Dataset struct {
	Cache      string `mapstructure:"cache"`
	BaseURL    string `mapstructure:"base-url"`
	Benchmark  bool   `mapstructure:"benchmark"`
	Anonymous  bool   `mapstructure:"anonymous"`
	S3Endpoint string `mapstructure:"s3-endpoint"`
	LogLevel   string `mapstructure:"log-level"`
}

// New returns a Viper reading flags, the environment and the
// configuration file cfgFile. If cfgFile is empty, the first
// sdgym.<ext> file found in Paths is used, if any. Files are read
// from fs.
func New(fs afero.Fs, flags *pflag.FlagSet, cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix("sdgym")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if cfgFile == "" {
		var err error
		if cfgFile, err = findConfigFile(fs); err != nil {
			return nil, err
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	return v, nil
}

// findConfigFile returns the first configuration file in Paths, or ""
// if there is none.
func findConfigFile(fs afero.Fs) (string, error) {
	for _, dir := range Paths {
		for _, ext := range viper.SupportedExts {
			name := filepath.Join(dir, Filename+"."+ext)
			ok, err := afero.Exists(fs, name)
			if err != nil {
				return "", err
			}
			if ok {
				return name, nil
			}
		}
	}
	return "", nil
}

// LoadSummary decodes the sdgym-summary settings from v.
func LoadSummary(v *viper.Viper) (*Summary, error) {
	var s Summary
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	if s.DB != "" && s.DBDriver == "" {
		return nil, fmt.Errorf("db %q given without a db driver", s.DB)
	}
	return &s, nil
}

// LoadDataset decodes the sdgym-dataset settings from v.
func LoadDataset(v *viper.Viper) (*Dataset, error) {
	var d Dataset
	if err := v.Unmarshal(&d); err != nil {
		return nil, err
	}
	if d.Cache == "" {
		d.Cache = DefaultCacheDir
	}
	return &d, nil
}
