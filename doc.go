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

// Package presetify turns the develop settings embedded in an edited image
// into a camera raw preset.
//
// # Overview
//
// The conversion has two steps.  First, the raw metadata tags of the image,
// as reported by a tool like ExifTool, are parsed into a set of
// adjustments.  Second, the adjustments are written as an XMP preset
// document which can be imported into a photo editing application.
//
// The packages of this module implement the individual steps:
//
//   - [github.com/JayLindblad/presetify/catalog] lists the supported
//     adjustments together with their tags, ranges and defaults.
//   - [github.com/JayLindblad/presetify/model] holds the adjustment values.
//   - [github.com/JayLindblad/presetify/metadata] parses raw tags.
//   - [github.com/JayLindblad/presetify/xmp] writes preset documents, and
//     reads them back.
//   - [github.com/JayLindblad/presetify/exiftool] runs the exiftool program.
//
// The [Converter] type in this package combines the first two steps.
//
// # Warnings
//
// Image metadata is often incomplete or inconsistent.  Converting never
// fails because of bad metadata: unusable values are replaced by defaults
// and out-of-range values are clamped.  Each repair is reported as a
// [metadata.Warning] in [Result.Warnings].
package presetify
