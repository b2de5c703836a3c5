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

package xmp

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JayLindblad/presetify/catalog"
	"github.com/JayLindblad/presetify/model"
)

// FormatValue renders v in the wire format of f.
//
// Values outside the domain of f are clamped, and NaN is replaced by the
// field default.  Float fields use f.Precision decimal places, Int fields
// are rounded to the nearest integer, and Enum fields are written as their
// option string.  Positive values of signed fields carry an explicit plus
// sign.
func FormatValue(f *catalog.FieldSpec, v float64) string {
	if math.IsNaN(v) {
		v = f.Default
	}
	v = f.Clamp(v)

	switch f.Kind {
	case catalog.Enum:
		idx := int(math.Round(v))
		if idx < 0 || idx >= len(f.Options) {
			idx = int(f.Default)
		}
		return f.Options[idx]
	case catalog.Int:
		return signed(f, formatNumber(math.Round(v), 0))
	default:
		return signed(f, formatNumber(v, f.Precision))
	}
}

func signed(f *catalog.FieldSpec, s string) string {
	if f.Signed() && !strings.HasPrefix(s, "-") && strings.Trim(s, "0.") != "" {
		return "+" + s
	}
	return s
}

// formatNumber writes v with prec decimal places.  Negative zero, including
// negative values which round to zero, is written without a sign.
func formatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		s = s[1:]
	}
	return s
}

// FormatPoint renders a tone curve control point as "input, output".
func FormatPoint(c *catalog.CurveSpec, p model.ControlPoint) string {
	return formatNumber(p.Input, c.Precision) + ", " + formatNumber(p.Output, c.Precision)
}

// presetUUID returns the UUID to embed for id.  An empty id is replaced by a
// fresh random UUID, a valid UUID is brought into canonical lowercase form,
// and anything else is used verbatim.
func presetUUID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.NewString()
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
