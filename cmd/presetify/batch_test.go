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
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JayLindblad/presetify"
	"github.com/JayLindblad/presetify/xmp"
)

// fakeReader returns fixed tags for each image.
type fakeReader map[string]map[string]string

func (r fakeReader) ReadTags(_ context.Context, path string) (map[string]string, error) {
	tags, ok := r[path]
	if !ok {
		return nil, errors.New("exiftool: file not found")
	}
	return tags, nil
}

func newTestBatch(reader fakeReader) (*batch, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := &batch{
		conv:    presetify.New(),
		reader:  reader,
		log:     zap.New(core),
		workers: 2,
	}
	return b, logs
}

func TestBatchRun(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "golden_hour.jpg")
	warm := filepath.Join(dir, "warm.jpg")
	missing := filepath.Join(dir, "missing.jpg")
	reader := fakeReader{
		good: {"XMP-crs:Exposure2012": "+0.50"},
		warm: {"XMP-crs:Temperature": "6500", "XMP-crs:Tint": "500"},
	}
	b, logs := newTestBatch(reader)

	jobs, err := b.jobs(context.Background(), fileNamer{}, []string{good, warm, missing})
	require.NoError(t, err)
	assert.Equal(t, "golden hour", jobs[0].name)

	s := b.run(context.Background(), jobs)
	assert.Equal(t, stats{written: 2, failed: 1}, s)

	tags, err := xmp.ReadFile(filepath.Join(dir, "golden_hour_preset.xmp"))
	require.NoError(t, err)
	assert.Equal(t, "golden hour", tags["crs:Name"])
	assert.Equal(t, "+0.50", tags["crs:Exposure2012"])

	tags, err = xmp.ReadFile(filepath.Join(dir, "warm_preset.xmp"))
	require.NoError(t, err)
	assert.Equal(t, "6500", tags["crs:Temperature"])
	assert.Equal(t, "+150", tags["crs:Tint"])

	assert.NoFileExists(t, filepath.Join(dir, "missing_preset.xmp"))

	failures := logs.FilterMessage("conversion failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, missing, failures[0].ContextMap()["image"])

	repairs := logs.FilterMessage("metadata repaired").All()
	require.Len(t, repairs, 1)
	fields := repairs[0].ContextMap()
	assert.Equal(t, warm, fields["image"])
	assert.Equal(t, "tint", fields["field"])
	assert.Equal(t, "range", fields["kind"])
	assert.Equal(t, "500", fields["raw"])
}

func TestBatchSkipExisting(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.jpg")
	out := presetify.OutputPath(img)
	require.NoError(t, os.WriteFile(out, []byte("keep me"), 0o644))

	b, logs := newTestBatch(fakeReader{img: {"XMP-crs:Vibrance": "10"}})
	s := b.run(context.Background(), []job{{source: img, name: "Photo"}})
	assert.Equal(t, stats{skipped: 1}, s)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
	assert.Equal(t, 1, logs.FilterMessage("preset exists, skipping").Len())

	b.overwrite = true
	s = b.run(context.Background(), []job{{source: img, name: "Photo"}})
	assert.Equal(t, stats{written: 1}, s)

	tags, err := xmp.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "+10", tags["crs:Vibrance"])
}

func TestBatchInvalidName(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "___.jpg")

	b, _ := newTestBatch(fakeReader{img: {}})
	jobs, err := b.jobs(context.Background(), fileNamer{}, []string{img})
	require.NoError(t, err)

	s := b.run(context.Background(), jobs)
	assert.Equal(t, stats{failed: 1}, s)
	assert.NoFileExists(t, presetify.OutputPath(img))
}

type abortingNamer struct{}

func (abortingNamer) Name(context.Context, string, string) (string, error) {
	return "", errAborted
}

func TestBatchJobsAborted(t *testing.T) {
	b, _ := newTestBatch(nil)
	_, err := b.jobs(context.Background(), abortingNamer{}, []string{"a.jpg"})
	assert.ErrorIs(t, err, errAborted)
}

// fakeExifTool writes a shell script which stands in for exiftool and
// reports an exposure value for every file.
func fakeExifTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	prog := filepath.Join(t.TempDir(), "exiftool")
	script := `#!/bin/sh
for last; do :; done
printf '[{"SourceFile": "%s", "XMP-crs:Exposure2012": 0.75}]' "$last"
`
	require.NoError(t, os.WriteFile(prog, []byte(script), 0o755))
	return prog
}

func TestRun(t *testing.T) {
	prog := fakeExifTool(t)
	dir := t.TempDir()
	img := filepath.Join(dir, "beach.jpg")

	code := run(context.Background(), []string{"-exiftool", prog, "-workers", "1", img}, os.Stderr)
	assert.Equal(t, 0, code)

	tags, err := xmp.ReadFile(filepath.Join(dir, "beach_preset.xmp"))
	require.NoError(t, err)
	assert.Equal(t, "+0.75", tags["crs:Exposure2012"])
	assert.Equal(t, "beach", tags["crs:Name"])
}

func TestRunExitStatus(t *testing.T) {
	prog := filepath.Join(t.TempDir(), "no-such-exiftool")
	code := run(context.Background(), []string{"-exiftool", prog, "photo.jpg"}, os.Stderr)
	assert.Equal(t, 1, code)

	assert.Equal(t, 2, run(context.Background(), nil, os.Stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"-workers", "-1", "a.jpg"}, os.Stderr))
}
