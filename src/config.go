package redwood

// SPDX-FileCopyrightText: The Redwood Authors

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CodecConfig selects codec parameters for the command line tools,
// either by preset name or by raw field parameters.
type CodecConfig struct {
	Preset  string `yaml:"preset"`
	Symsize uint   `yaml:"symsize"`
	GFPoly  uint   `yaml:"gfpoly"`
	FCR     uint   `yaml:"fcr"`
	Prim    uint   `yaml:"prim"`
	NRoots  uint   `yaml:"nroots"`
	Chunk   int    `yaml:"chunk"`
}

// LoadCodecConfig reads a yaml codec description from path.
func LoadCodecConfig(path string) (*CodecConfig, error) {
	var raw, err = os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrap(err, "reading codec config")
	}

	var cfg CodecConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing codec config %s", path)
	}

	if cfg.Preset != "" && cfg.Symsize != 0 {
		return nil, errors.Errorf("codec config %s: preset and raw parameters are mutually exclusive", path)
	}
	if cfg.Preset != "" {
		if _, ok := LookupPreset(cfg.Preset); !ok {
			return nil, errors.Errorf("codec config %s: unknown preset %q", path, cfg.Preset)
		}
	} else if cfg.Symsize == 0 {
		return nil, errors.Errorf("codec config %s: needs a preset or a symsize", path)
	}
	if cfg.NRoots == 0 {
		return nil, errors.Errorf("codec config %s: nroots must be set", path)
	}
	return &cfg, nil
}

// NewCodec builds the codec the config describes.
func (cfg *CodecConfig) NewCodec(opts ...Option) (*RS, error) {
	if cfg.Preset != "" {
		return NewPreset(cfg.Preset, cfg.NRoots, opts...)
	}
	return New(cfg.Symsize, cfg.GFPoly, cfg.FCR, cfg.Prim, cfg.NRoots, opts...)
}
