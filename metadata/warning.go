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

import "fmt"

// WarningKind classifies parser warnings.
type WarningKind int

// These are the warning kinds.
const (
	// CoercionWarning means that a raw value could not be converted to the
	// field type.  The field default was used instead.
	CoercionWarning WarningKind = iota + 1

	// RangeWarning means that a value was outside the field domain and has
	// been clamped.
	RangeWarning

	// CurveWarning means that tone curve data was malformed.  Bad points
	// are dropped; if too few points remain, the identity curve is used.
	CurveWarning

	// UnknownWarning means that a camera raw tag is not in the catalog.
	UnknownWarning
)

func (k WarningKind) String() string {
	switch k {
	case CoercionWarning:
		return "coercion"
	case RangeWarning:
		return "range"
	case CurveWarning:
		return "curve"
	case UnknownWarning:
		return "unknown"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning reasons.
const (
	ReasonCoercion     = "coercion failed"
	ReasonRange        = "out of range, clamped"
	ReasonInsufficient = "insufficient points, using identity"
	ReasonBadPoint     = "malformed point, dropped"
	ReasonUnpaired     = "unpaired coordinate, dropped"
	ReasonPointRange   = "point out of range, clamped"
	ReasonDuplicate    = "duplicate input, dropped"
	ReasonUnknownField = "unknown field"
)

// Warning reports a recoverable problem with one field of the input.
type Warning struct {
	// Field is the canonical field name, or the raw key for unknown tags.
	Field string

	// Tag is the wire tag the value was read from.
	Tag string

	// Raw is the offending raw value.  For curve warnings this is the text
	// of the affected control point.
	Raw string

	Kind   WarningKind
	Reason string
}

func (w Warning) String() string {
	if w.Raw == "" {
		return fmt.Sprintf("%s: %s", w.Field, w.Reason)
	}
	return fmt.Sprintf("%s: %s (%q)", w.Field, w.Reason, w.Raw)
}
