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
	"cmp"
	"slices"
	"strings"

	"github.com/JayLindblad/presetify/catalog"
	"github.com/JayLindblad/presetify/model"
)

// CurveSyntax describes one textual encoding of a control point list.
type CurveSyntax struct {
	// PointSep separates control points.  If PointSep is empty, the value
	// is a flat list of numbers and consecutive numbers form a point.
	PointSep string

	// CoordSep is the set of characters which separate numbers.
	CoordSep string
}

// DefaultCurveSyntaxes are the point list encodings tried by [Parse] when
// no syntaxes are configured: "0 0; 64 50; 255 255" style lists, one point
// per line, and ExifTool's flat "0, 0, 64, 50, 255, 255" rendering.
var DefaultCurveSyntaxes = []CurveSyntax{
	{PointSep: ";", CoordSep: ", \t"},
	{PointSep: "\n", CoordSep: ", \t\r"},
	{PointSep: "", CoordSep: ", \t\r\n"},
}

// selectSyntax returns the first syntax whose point separator occurs in
// raw.  If there is none, the first flat syntax is used.
func selectSyntax(syntaxes []CurveSyntax, raw string) (CurveSyntax, bool) {
	for _, s := range syntaxes {
		if s.PointSep != "" && strings.Contains(raw, s.PointSep) {
			return s, true
		}
	}
	for _, s := range syntaxes {
		if s.PointSep == "" {
			return s, true
		}
	}
	return CurveSyntax{}, false
}

func (s CurveSyntax) fields(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(s.CoordSep, r)
	})
}

// rawPoint is a control point before coordinate parsing.
type rawPoint struct {
	text   string
	coords []string
}

// split cuts raw into candidate control points.  The second return value
// lists the texts of trailing numbers of a flat list which have no partner.
func (s CurveSyntax) split(raw string) ([]rawPoint, []string) {
	var points []rawPoint
	if s.PointSep != "" {
		for _, piece := range strings.Split(raw, s.PointSep) {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			points = append(points, rawPoint{text: piece, coords: s.fields(piece)})
		}
		return points, nil
	}

	numbers := s.fields(raw)
	for i := 0; i+1 < len(numbers); i += 2 {
		pair := numbers[i : i+2]
		points = append(points, rawPoint{text: pair[0] + ", " + pair[1], coords: pair})
	}
	if len(numbers)%2 == 1 {
		return points, numbers[len(numbers)-1:]
	}
	return points, nil
}

// parseCurve converts a raw control point list into a tone curve.
func parseCurve(cs *catalog.CurveSpec, raw string, syntaxes []CurveSyntax) (model.ToneCurve, []Warning) {
	var warnings []Warning
	warn := func(text, reason string) {
		warnings = append(warnings, Warning{
			Field:  cs.Name,
			Tag:    cs.Tag,
			Raw:    text,
			Kind:   CurveWarning,
			Reason: reason,
		})
	}

	syntax, ok := selectSyntax(syntaxes, raw)
	if !ok {
		warn(raw, ReasonInsufficient)
		return model.IdentityCurve(), warnings
	}

	candidates, unpaired := syntax.split(raw)

	seen := make(map[float64]bool, len(candidates))
	points := make([]model.ControlPoint, 0, len(candidates))
	for _, c := range candidates {
		if len(c.coords) != 2 {
			warn(c.text, ReasonBadPoint)
			continue
		}
		in, okIn := parseNumber(c.coords[0])
		out, okOut := parseNumber(c.coords[1])
		if !okIn || !okOut {
			warn(c.text, ReasonBadPoint)
			continue
		}

		cin := clampCoord(in)
		cout := clampCoord(out)
		if cin != in || cout != out {
			warn(c.text, ReasonPointRange)
		}
		// Points are compared at the precision they are written with.
		cin = cs.Quantize(cin)
		cout = cs.Quantize(cout)

		if seen[cin] {
			warn(c.text, ReasonDuplicate)
			continue
		}
		seen[cin] = true
		points = append(points, model.ControlPoint{Input: cin, Output: cout})
	}
	for _, text := range unpaired {
		warn(text, ReasonUnpaired)
	}

	if len(points) < 2 {
		warn(raw, ReasonInsufficient)
		return model.IdentityCurve(), warnings
	}

	slices.SortStableFunc(points, func(a, b model.ControlPoint) int {
		return cmp.Compare(a.Input, b.Input)
	})
	return model.ToneCurve{Points: points}, warnings
}

func clampCoord(v float64) float64 {
	return max(catalog.CurveMin, min(catalog.CurveMax, v))
}
