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

// Package xmp reads and writes camera raw presets as Extensible Metadata
// Platform (XMP) documents.
//
// # Writing presets
//
// [Encode] converts a set of adjustments into a preset document.  The
// document consists of an x:xmpmeta element, which contains an rdf:RDF
// element with a single rdf:Description.  The scalar adjustments are
// attributes of the description, in the order given by the field catalog.
// The preset name, group and description are language alternatives
// (rdf:Alt), and each tone curve is an ordered array (rdf:Seq) of
// "input, output" control points.  The layout can be adjusted using
// [EncodeOptions].
//
// Values are formatted by [FormatValue] and [FormatPoint].
//
// # Reading presets
//
// [ReadTags] reads any XMP document with an rdf:Description element into a
// map from prefixed tag names to string values.  Arrays are flattened into
// a single string, so that tone curves come back in the "0, 0; 255, 255"
// syntax understood by the metadata parser.  This allows to check that a
// preset written by [Encode] reproduces the original adjustments.
package xmp
