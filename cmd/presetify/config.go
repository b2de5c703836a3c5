// presetify - camera raw presets from image metadata
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/JayLindblad/presetify"
	"github.com/JayLindblad/presetify/exiftool"
	"github.com/JayLindblad/presetify/metadata"
	"github.com/JayLindblad/presetify/model"
)

// Config holds the settings of a presetify run.  It is read from a YAML
// file; command line flags take precedence.
type Config struct {
	ExifTool      string        `yaml:"exiftool"`
	Workers       int           `yaml:"workers"`
	Overwrite     bool          `yaml:"overwrite"`
	ReportUnknown bool          `yaml:"report_unknown"`
	LogLevel      string        `yaml:"log_level"`
	CurveSyntaxes []CurveSyntax `yaml:"curve_syntaxes"`
	Preset        PresetConfig  `yaml:"preset"`
}

// CurveSyntax is the configuration form of [metadata.CurveSyntax].
type CurveSyntax struct {
	PointSep string `yaml:"point_sep"`
	CoordSep string `yaml:"coord_sep"`
}

// PresetConfig holds the settings shared by all presets of a run.
type PresetConfig struct {
	Group          string `yaml:"group"`
	Language       string `yaml:"language"`
	Version        string `yaml:"version"`
	ProcessVersion string `yaml:"process_version"`
}

func defaultConfig() *Config {
	return &Config{
		ExifTool: exiftool.DefaultPath,
		Workers:  runtime.NumCPU(),
		LogLevel: "info",
	}
}

// loadConfig reads the configuration file at path.  Settings missing from
// the file keep their defaults.  An empty path gives the default
// configuration.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// validate checks the settings which cannot be checked by the YAML decoder.
func (c *Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("invalid number of workers %d", c.Workers)
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if _, err := c.language(); err != nil {
		return fmt.Errorf("invalid preset language %q: %w", c.Preset.Language, err)
	}
	for i, s := range c.CurveSyntaxes {
		if s.CoordSep == "" {
			return fmt.Errorf("curve syntax %d: empty coordinate separator", i+1)
		}
	}
	return nil
}

func (c *Config) language() (language.Tag, error) {
	if c.Preset.Language == "" {
		return language.Und, nil
	}
	return language.Parse(c.Preset.Language)
}

// converter returns a converter for the settings in c, together with the
// preset metadata shared by all images.
func (c *Config) converter() (*presetify.Converter, model.PresetMetadata, error) {
	lang, err := c.language()
	if err != nil {
		return nil, model.PresetMetadata{}, err
	}

	conv := presetify.New()
	conv.Parse.ReportUnknown = c.ReportUnknown
	for _, s := range c.CurveSyntaxes {
		conv.Parse.CurveSyntaxes = append(conv.Parse.CurveSyntaxes,
			metadata.CurveSyntax{PointSep: s.PointSep, CoordSep: s.CoordSep})
	}
	conv.Encode.Version = c.Preset.Version
	conv.Encode.ProcessVersion = c.Preset.ProcessVersion

	preset := model.PresetMetadata{
		Group:    c.Preset.Group,
		Language: lang,
	}
	return conv, preset, nil
}
