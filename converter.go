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

package presetify

import (
	"path/filepath"
	"strings"

	"github.com/JayLindblad/presetify/catalog"
	"github.com/JayLindblad/presetify/metadata"
	"github.com/JayLindblad/presetify/model"
	"github.com/JayLindblad/presetify/xmp"
)

// OutputSuffix is appended to the file stem of an image to form the name of
// its preset file.
const OutputSuffix = "_preset.xmp"

// Converter turns raw metadata tags into preset documents.
// A Converter is safe for concurrent use, as long as its fields are not
// modified.
type Converter struct {
	// Catalog lists the supported adjustments.  If nil,
	// [catalog.Default] is used.
	Catalog *catalog.Catalog

	Parse  metadata.Options
	Encode xmp.EncodeOptions
}

// New returns a converter for the default catalog.
func New() *Converter {
	return &Converter{Catalog: catalog.Default()}
}

// Result is the outcome of a conversion.
type Result struct {
	// Document is the serialized preset.
	Document []byte

	// Model holds the adjustments written to the document, including the
	// preset metadata.
	Model model.Adjustments

	// Warnings lists the repairs made while parsing the tags.
	Warnings []metadata.Warning
}

// Convert parses the raw tags and serializes the result as a preset
// described by preset.
//
// Problems with the tag values are reported in [Result.Warnings].  The only
// error is [xmp.ErrInvalidModel], for a preset with an empty name.
func (c *Converter) Convert(raw map[string]string, preset model.PresetMetadata) (*Result, error) {
	cat := c.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	a, warnings := metadata.Parse(cat, raw, &c.Parse)
	a.Preset = preset

	doc, err := xmp.Encode(cat, &a, &c.Encode)
	if err != nil {
		return nil, err
	}
	return &Result{
		Document: doc,
		Model:    a,
		Warnings: warnings,
	}, nil
}

// OutputPath returns the name of the preset file for the given image.
// The preset is placed next to the image, for example "shots/beach.jpg"
// becomes "shots/beach_preset.xmp".
func OutputPath(source string) string {
	dir, base := filepath.Split(source)
	return filepath.Join(dir, stem(base)+OutputSuffix)
}

// PresetName derives a preset name from the file name of an image.
// Underscores and dashes become spaces, so that "golden_hour-2.jpg" gives
// "golden hour 2".
func PresetName(source string) string {
	name := stem(filepath.Base(source))
	name = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' {
			return ' '
		}
		return r
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

func stem(base string) string {
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
