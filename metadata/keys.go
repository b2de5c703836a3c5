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

package metadata

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/JayLindblad/presetify/catalog"
)

// exifToolGroup is the ExifTool family 1 group name of the camera raw
// settings namespace.
const exifToolGroup = "XMP-" + catalog.Prefix

// NormalizeKey maps the key spellings used by metadata tools onto wire
// tags.  "XMP-crs:Tint" (ExifTool -G1), "XMP:Tint" (ExifTool -G) and
// "Tint" all become "crs:Tint".  Keys from other namespaces are returned
// unchanged.
//
// Bare names are ambiguous: without group names ExifTool reports the EXIF
// tags Saturation, Contrast and Sharpness under the same names as the old
// camera raw settings.  Parse therefore maps bare keys only if none of the
// keys carries a group prefix.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	prefix, local := catalog.SplitTag(key)
	switch prefix {
	case "", "XMP", exifToolGroup:
		return catalog.Prefix + ":" + local
	default:
		return key
	}
}

// isExplicit reports whether key names the camera raw namespace
// unambiguously.
func isExplicit(key string) bool {
	prefix, _ := catalog.SplitTag(strings.TrimSpace(key))
	return prefix == catalog.Prefix || prefix == exifToolGroup
}

func isBare(key string) bool {
	prefix, _ := catalog.SplitTag(strings.TrimSpace(key))
	return prefix == ""
}

// normalize returns a copy of raw with normalized keys, together with the
// set of normalized keys which were given with an explicit camera raw
// prefix.  If several raw keys map to the same tag, an explicit key takes
// precedence; otherwise the last key in sorted order wins.  Bare keys are
// dropped if any key in raw has a group prefix.
func normalize(raw map[string]string) (map[string]string, map[string]bool) {
	keys := maps.Keys(raw)
	sort.Strings(keys)

	grouped := slices.ContainsFunc(keys, func(key string) bool { return !isBare(key) })

	tags := make(map[string]string, len(raw))
	explicit := make(map[string]bool)
	for _, key := range keys {
		if grouped && isBare(key) {
			continue
		}
		tag := NormalizeKey(key)
		if explicit[tag] && !isExplicit(key) {
			continue
		}
		tags[tag] = raw[key]
		if isExplicit(key) {
			explicit[tag] = true
		}
	}
	return tags, explicit
}
