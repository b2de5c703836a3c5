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

package exiftool

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `[{
  "SourceFile": "photo.jpg",
  "XMP-crs:Exposure2012": 1.20,
  "XMP-crs:Tint": -12,
  "XMP-crs:WhiteBalance": "As Shot",
  "XMP-crs:ConvertToGrayscale": false,
  "XMP-crs:HasSettings": true,
  "XMP-crs:ToneCurvePV2012": ["0, 0", "64, 50", "255, 255"],
  "XMP-crs:Look": {"Name": "Adobe Color"},
  "XMP-crs:Cluster": null
}]`

func TestDecodeJSON(t *testing.T) {
	tags, err := DecodeJSON(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"XMP-crs:Exposure2012":       "1.20",
		"XMP-crs:Tint":               "-12",
		"XMP-crs:WhiteBalance":       "As Shot",
		"XMP-crs:ConvertToGrayscale": "False",
		"XMP-crs:HasSettings":        "True",
		"XMP-crs:ToneCurvePV2012":    "0, 0, 64, 50, 255, 255",
	}, tags)
}

func TestDecodeJSONFirstRecord(t *testing.T) {
	in := `[{"SourceFile": "a.jpg", "XMP-crs:Tint": 1}, {"SourceFile": "b.jpg", "XMP-crs:Tint": 2}]`
	tags, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"XMP-crs:Tint": "1"}, tags)
}

func TestDecodeJSONErrors(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`[]`))
	assert.ErrorIs(t, err, ErrNoRecord)

	_, err = DecodeJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = DecodeJSON(strings.NewReader(`[{`))
	assert.Error(t, err)
}

// fakeTool writes a shell script which stands in for exiftool.
func fakeTool(t *testing.T, script string) *Tool {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	prog := filepath.Join(t.TempDir(), "exiftool")
	err := os.WriteFile(prog, []byte("#!/bin/sh\n"+script), 0o755)
	require.NoError(t, err)
	return &Tool{Path: prog}
}

func TestToolReadTags(t *testing.T) {
	// The script echoes its arguments, so that the command line can be
	// checked.
	tool := fakeTool(t, `printf '[{"SourceFile": "%s", "Args": "%s", "XMP-crs:Vibrance": 25}]' "$3" "$*"`+"\n")

	tags, err := tool.ReadTags(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Args":             "-j -G1 photo.jpg",
		"XMP-crs:Vibrance": "25",
	}, tags)

	tool.Args = []string{"-j"}
	tags, err = tool.ReadTags(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "-j photo.jpg", tags["Args"])
}

func TestToolFailure(t *testing.T) {
	tool := fakeTool(t, "echo 'File not found: missing.jpg' >&2\nexit 1\n")

	_, err := tool.ReadTags(context.Background(), "missing.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.jpg")
	assert.Contains(t, err.Error(), "File not found")
}

func TestToolBadOutput(t *testing.T) {
	tool := fakeTool(t, "echo 'this is not JSON'\n")

	_, err := tool.ReadTags(context.Background(), "photo.jpg")
	assert.Error(t, err)
}

func TestToolMissingProgram(t *testing.T) {
	tool := &Tool{Path: filepath.Join(t.TempDir(), "no-such-program")}
	_, err := tool.ReadTags(context.Background(), "photo.jpg")
	assert.Error(t, err)
}

func TestToolCanceled(t *testing.T) {
	tool := fakeTool(t, "sleep 10\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tool.ReadTags(ctx, "photo.jpg")
	assert.Error(t, err)
}
