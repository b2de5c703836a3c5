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

// Package metadata converts raw metadata tags into camera raw adjustments.
//
// The input of [Parse] is a map from tag names to string values, as
// produced by a metadata reading tool such as ExifTool.  Parsing never
// fails: malformed or out-of-range values are replaced by defaults or
// clamped, and each such repair is reported as a [Warning].
package metadata

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/JayLindblad/presetify/catalog"
	"github.com/JayLindblad/presetify/model"
)

// Options control the behaviour of [Parse].
// The zero value, and a nil pointer, select the defaults.
type Options struct {
	// CurveSyntaxes lists the accepted tone curve encodings, in order of
	// preference.  If empty, [DefaultCurveSyntaxes] is used.
	CurveSyntaxes []CurveSyntax

	// ReportUnknown enables warnings for camera raw tags which are not in
	// the catalog.  Only keys with an explicit "crs:" or "XMP-crs:" prefix
	// are considered, and preset bookkeeping tags are never reported.
	ReportUnknown bool
}

// Parse converts raw metadata tags into adjustments.
//
// Tags which are absent take the catalog default without a warning.  The
// preset metadata of the result is left empty; it is filled in by the
// caller.  Warnings are returned in catalog order, followed by curve
// warnings and then warnings about unknown tags.
func Parse(cat *catalog.Catalog, raw map[string]string, opts *Options) (model.Adjustments, []Warning) {
	if opts == nil {
		opts = &Options{}
	}
	syntaxes := opts.CurveSyntaxes
	if len(syntaxes) == 0 {
		syntaxes = DefaultCurveSyntaxes
	}

	tags, explicit := normalize(raw)
	a := model.Defaults(cat)

	var warnings []Warning
	for i := range cat.Fields() {
		f := &cat.Fields()[i]
		tag, rawValue, ok := lookupField(f, tags)
		if !ok {
			continue
		}
		v, w := parseField(f, tag, rawValue)
		warnings = append(warnings, w...)
		// Every catalog field has a model counterpart; see the model tests.
		_ = a.SetScalar(f.Name, v)
	}

	for i := range cat.Curves() {
		cv := &cat.Curves()[i]
		rawValue, ok := tags[cv.Tag]
		if !ok {
			continue
		}
		curve, w := parseCurve(cv, rawValue, syntaxes)
		warnings = append(warnings, w...)
		if dst, err := a.Curve(cv.Name); err == nil {
			*dst = curve
		}
	}

	if opts.ReportUnknown {
		keys := maps.Keys(tags)
		sort.Strings(keys)
		for _, tag := range keys {
			if !explicit[tag] || cat.Known(tag) || catalog.IsFrameTag(tag) {
				continue
			}
			warnings = append(warnings, Warning{
				Field:  tag,
				Tag:    tag,
				Raw:    tags[tag],
				Kind:   UnknownWarning,
				Reason: ReasonUnknownField,
			})
		}
	}

	return a, warnings
}

// lookupField finds the raw value of f.  The primary tag takes precedence
// over the aliases, which are tried in order.
func lookupField(f *catalog.FieldSpec, tags map[string]string) (string, string, bool) {
	if v, ok := tags[f.Tag]; ok {
		return f.Tag, v, true
	}
	for _, alias := range f.Aliases {
		if v, ok := tags[alias]; ok {
			return alias, v, true
		}
	}
	return "", "", false
}

// parseField coerces and clamps a single raw value read from tag.
func parseField(f *catalog.FieldSpec, tag, rawValue string) (float64, []Warning) {
	v, ok := coerce(f, rawValue)
	if !ok {
		return f.Default, []Warning{{
			Field:  f.Name,
			Tag:    tag,
			Raw:    rawValue,
			Kind:   CoercionWarning,
			Reason: ReasonCoercion,
		}}
	}

	clamped := f.Clamp(v)
	if clamped != v {
		return clamped, []Warning{{
			Field:  f.Name,
			Tag:    tag,
			Raw:    rawValue,
			Kind:   RangeWarning,
			Reason: ReasonRange,
		}}
	}
	return v, nil
}

// coerce converts a raw string to the kind of f.  Int values are rounded
// to the nearest integer; enum values are matched against the options
// ignoring case, or given as a numeric option index.
func coerce(f *catalog.FieldSpec, rawValue string) (float64, bool) {
	s := strings.TrimSpace(rawValue)

	if f.Kind == catalog.Enum {
		for i, opt := range f.Options {
			if strings.EqualFold(s, opt) {
				return float64(i), true
			}
		}
	}

	v, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	if f.Kind != catalog.Float {
		v = math.Round(v)
	}
	return v, true
}

// parseNumber parses a finite decimal number.  A leading plus sign, as
// written by camera raw for positive values of signed fields, is accepted.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
