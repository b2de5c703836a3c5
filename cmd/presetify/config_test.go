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
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/JayLindblad/presetify/metadata"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presetify.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const fullConfig = `
exiftool: /opt/exiftool/exiftool
workers: 3
overwrite: true
report_unknown: true
log_level: warn
curve_syntaxes:
  - point_sep: "|"
    coord_sep: ":"
  - point_sep: ""
    coord_sep: ", "
preset:
  group: Holiday
  language: de
  version: "15.0"
  process_version: "10.0"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, fullConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.validate())

	assert.Equal(t, &Config{
		ExifTool:      "/opt/exiftool/exiftool",
		Workers:       3,
		Overwrite:     true,
		ReportUnknown: true,
		LogLevel:      "warn",
		CurveSyntaxes: []CurveSyntax{
			{PointSep: "|", CoordSep: ":"},
			{PointSep: "", CoordSep: ", "},
		},
		Preset: PresetConfig{
			Group:          "Holiday",
			Language:       "de",
			Version:        "15.0",
			ProcessVersion: "10.0",
		},
	}, cfg)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)

	// an empty file keeps the defaults
	cfg, err = loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	// a partial file keeps the other defaults
	cfg, err = loadConfig(writeConfig(t, "workers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "exiftool", cfg.ExifTool)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, "wokers: 2\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = loadConfig(writeConfig(t, "workers: many\n"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"workers":   func(c *Config) { c.Workers = 0 },
		"log level": func(c *Config) { c.LogLevel = "loud" },
		"language":  func(c *Config) { c.Preset.Language = "not a language" },
		"coord sep": func(c *Config) { c.CurveSyntaxes = []CurveSyntax{{PointSep: ";"}} },
	}
	for desc, modify := range cases {
		t.Run(desc, func(t *testing.T) {
			cfg := defaultConfig()
			require.NoError(t, cfg.validate())
			modify(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestConfigConverter(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, fullConfig))
	require.NoError(t, err)

	conv, preset, err := cfg.converter()
	require.NoError(t, err)

	assert.True(t, conv.Parse.ReportUnknown)
	assert.Equal(t, []metadata.CurveSyntax{
		{PointSep: "|", CoordSep: ":"},
		{PointSep: "", CoordSep: ", "},
	}, conv.Parse.CurveSyntaxes)
	assert.Equal(t, "15.0", conv.Encode.Version)
	assert.Equal(t, "10.0", conv.Encode.ProcessVersion)
	assert.Equal(t, "Holiday", preset.Group)
	assert.Equal(t, "de", preset.Language.String())
	assert.Empty(t, preset.Name)

	conv, preset, err = defaultConfig().converter()
	require.NoError(t, err)
	assert.False(t, conv.Parse.ReportUnknown)
	assert.Nil(t, conv.Parse.CurveSyntaxes)
	assert.Equal(t, language.Und, preset.Language)
}

func TestParseArgsPrecedence(t *testing.T) {
	path := writeConfig(t, fullConfig)

	cfg, cli, paths, err := parseArgs([]string{"-config", path, "a.jpg", "b.jpg"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/opt/exiftool/exiftool", cfg.ExifTool)
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cli.interactive)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, paths)

	cfg, cli, _, err = parseArgs([]string{
		"-config", path,
		"-workers", "5",
		"-exiftool", "/usr/bin/exiftool",
		"-force=false",
		"-report-unknown=false",
		"-interactive",
		"-debug",
		"a.jpg",
	}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, "/usr/bin/exiftool", cfg.ExifTool)
	assert.False(t, cfg.Overwrite)
	assert.False(t, cfg.ReportUnknown)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cli.interactive)
	assert.True(t, cli.debug)

	// flags which are not given do not override the defaults either
	cfg, _, _, err = parseArgs([]string{"a.jpg"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestParseArgsErrors(t *testing.T) {
	_, _, _, err := parseArgs([]string{"-workers", "0", "a.jpg"}, io.Discard)
	assert.Error(t, err)

	_, _, _, err = parseArgs([]string{"-no-such-flag"}, io.Discard)
	assert.Error(t, err)

	_, _, _, err = parseArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, io.Discard)
	assert.Error(t, err)
}
