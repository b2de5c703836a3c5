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

// Package exiftool reads image metadata by running the exiftool program.
package exiftool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Reader reads the metadata tags of an image file.
type Reader interface {
	ReadTags(ctx context.Context, path string) (map[string]string, error)
}

// DefaultPath is the name of the exiftool program, looked up in $PATH.
const DefaultPath = "exiftool"

// DefaultArgs are the options passed to exiftool before the file name.
// The "-G1" option gives the tag names a family 1 group prefix, like
// "XMP-crs:Exposure2012".
var DefaultArgs = []string{"-j", "-G1"}

// ErrNoRecord is returned by [DecodeJSON] if the input contains no record.
var ErrNoRecord = errors.New("exiftool: no record in output")

// Tool runs an external exiftool program.
type Tool struct {
	// Path is the program to run.  If empty, [DefaultPath] is used.
	Path string

	// Args are the options passed before the file name.  If nil,
	// [DefaultArgs] is used.
	Args []string
}

var _ Reader = (*Tool)(nil)

// ReadTags runs exiftool on the given file and returns the tags of the
// first record in its output.
func (t *Tool) ReadTags(ctx context.Context, path string) (map[string]string, error) {
	prog := t.Path
	if prog == "" {
		prog = DefaultPath
	}
	args := t.Args
	if args == nil {
		args = DefaultArgs
	}
	args = append(append([]string{}, args...), path)

	cmd := exec.CommandContext(ctx, prog, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("exiftool %s: %w: %s", path, err, msg)
		}
		return nil, fmt.Errorf("exiftool %s: %w", path, err)
	}

	tags, err := DecodeJSON(&stdout)
	if err != nil {
		return nil, fmt.Errorf("exiftool %s: %w", path, err)
	}
	return tags, nil
}

// DecodeJSON converts the JSON output of "exiftool -j" into a tag map.
//
// Only the first record is used.  Numbers keep their literal text, arrays
// are joined using ", ", and booleans become "True" or "False".  Nested
// objects, null values and the "SourceFile" entry are omitted.
func DecodeJSON(r io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []map[string]any
	err := dec.Decode(&records)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecord
	}

	tags := make(map[string]string, len(records[0]))
	for key, val := range records[0] {
		if key == "SourceFile" {
			continue
		}
		if s, ok := stringValue(val); ok {
			tags[key] = s
		}
	}
	return tags, nil
}

func stringValue(val any) (string, bool) {
	switch val := val.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		if val {
			return "True", true
		}
		return "False", true
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := stringValue(item); ok {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", "), true
	default:
		return "", false
	}
}
