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

// Package catalog describes the camera raw adjustment fields.
//
// Every adjustment known to presetify has a [FieldSpec], which gives the
// canonical field name, the namespace-qualified wire tag, the value kind, the
// numeric domain and the default value.  Tone curves are described by
// [CurveSpec].  A [Catalog] is an immutable, ordered table of these
// descriptors; the order of the table is the order in which fields are
// written to preset documents.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind is the value type of an adjustment field.
type Kind int

// These are the supported field kinds.
const (
	Float Kind = iota + 1
	Int
	Enum
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Enum:
		return "enum"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Group classifies fields the way the develop panels do.
type Group int

// These are the field groups.
const (
	Basic Group = iota + 1
	Color
	Presence
	ToneCurve
	Detail
	Effects
	HSL
	Misc
)

// FieldSpec describes a single scalar adjustment.
type FieldSpec struct {
	// Name is the canonical field name, e.g. "exposure".
	Name string

	// Tag is the namespace-qualified wire tag, e.g. "crs:Exposure2012".
	Tag string

	// Aliases lists further tags which are accepted on input.  The field is
	// always written using Tag.
	Aliases []string

	Kind  Kind
	Group Group

	// Min and Max give the closed domain of the field.  For Enum fields the
	// domain is the range of option indices.
	Min, Max float64

	// Default is the value used when the tag is absent.
	Default float64

	// Precision is the number of decimal places written for Float fields.
	Precision int

	// Options lists the wire strings of an Enum field.  The field value is
	// the index into this list.
	Options []string
}

// Signed reports whether the domain of the field includes negative values.
// Positive values of signed fields are written with an explicit plus sign.
func (f *FieldSpec) Signed() bool {
	return f.Min < 0
}

// Clamp restricts v to the domain of the field.
func (f *FieldSpec) Clamp(v float64) float64 {
	return math.Max(f.Min, math.Min(f.Max, v))
}

// Local returns the wire tag without its namespace prefix.
func (f *FieldSpec) Local() string {
	_, local := SplitTag(f.Tag)
	return local
}

// CurveSpec describes a tone curve property.
type CurveSpec struct {
	Name string
	Tag  string

	// Precision is the number of decimal places written for the
	// coordinates of each control point.
	Precision int
}

// Local returns the wire tag without its namespace prefix.
func (c *CurveSpec) Local() string {
	_, local := SplitTag(c.Tag)
	return local
}

// Quantize rounds a coordinate to the precision used in preset documents.
func (c *CurveSpec) Quantize(v float64) float64 {
	p := math.Pow10(c.Precision)
	return math.Round(v*p) / p
}

// The domain of tone curve coordinates.
const (
	CurveMin = 0
	CurveMax = 255
)

// Catalog is an ordered, read-only table of field descriptors.
type Catalog struct {
	fields []FieldSpec
	curves []CurveSpec

	byName      map[string]int
	byTag       map[string]int
	curveByName map[string]int
	curveByTag  map[string]int
}

// New builds a catalog from the given descriptors.  The order of the
// arguments is preserved.  An error is returned if a descriptor violates
// its domain invariants or if a name or tag is used twice.
func New(fields []FieldSpec, curves []CurveSpec) (*Catalog, error) {
	c := &Catalog{
		fields:      append([]FieldSpec(nil), fields...),
		curves:      append([]CurveSpec(nil), curves...),
		byName:      make(map[string]int, len(fields)),
		byTag:       make(map[string]int, len(fields)),
		curveByName: make(map[string]int, len(curves)),
		curveByTag:  make(map[string]int, len(curves)),
	}

	for i := range c.fields {
		f := &c.fields[i]
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate field name %q", f.Name)
		}
		if _, dup := c.byTag[f.Tag]; dup {
			return nil, fmt.Errorf("catalog: duplicate tag %q", f.Tag)
		}
		c.byName[f.Name] = i
		c.byTag[f.Tag] = i
	}
	for i := range c.fields {
		for _, alias := range c.fields[i].Aliases {
			if prefix, local := SplitTag(alias); prefix == "" || local == "" {
				return nil, fmt.Errorf("catalog: field %q: alias %q is not namespace-qualified", c.fields[i].Name, alias)
			}
			if _, dup := c.byTag[alias]; dup {
				return nil, fmt.Errorf("catalog: duplicate tag %q", alias)
			}
			c.byTag[alias] = i
		}
	}

	for i := range c.curves {
		cv := &c.curves[i]
		if cv.Name == "" || cv.Tag == "" {
			return nil, fmt.Errorf("catalog: curve %d: missing name or tag", i)
		}
		if _, dup := c.byName[cv.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate field name %q", cv.Name)
		}
		if _, dup := c.curveByName[cv.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate field name %q", cv.Name)
		}
		if _, dup := c.byTag[cv.Tag]; dup {
			return nil, fmt.Errorf("catalog: duplicate tag %q", cv.Tag)
		}
		if _, dup := c.curveByTag[cv.Tag]; dup {
			return nil, fmt.Errorf("catalog: duplicate tag %q", cv.Tag)
		}
		c.curveByName[cv.Name] = i
		c.curveByTag[cv.Tag] = i
	}

	return c, nil
}

func (f *FieldSpec) validate() error {
	if f.Name == "" || f.Tag == "" {
		return fmt.Errorf("catalog: field %q: missing name or tag", f.Name)
	}
	if prefix, local := SplitTag(f.Tag); prefix == "" || local == "" {
		return fmt.Errorf("catalog: field %q: tag %q is not namespace-qualified", f.Name, f.Tag)
	}
	switch f.Kind {
	case Float, Int:
		if len(f.Options) > 0 {
			return fmt.Errorf("catalog: field %q: options on %s field", f.Name, f.Kind)
		}
	case Enum:
		if len(f.Options) == 0 {
			return fmt.Errorf("catalog: field %q: enum without options", f.Name)
		}
		if f.Min != 0 || f.Max != float64(len(f.Options)-1) {
			return fmt.Errorf("catalog: field %q: enum domain must be [0, %d]", f.Name, len(f.Options)-1)
		}
		if f.Default != math.Trunc(f.Default) {
			return fmt.Errorf("catalog: field %q: enum default is not an index", f.Name)
		}
	default:
		return fmt.Errorf("catalog: field %q: invalid kind %d", f.Name, int(f.Kind))
	}
	if !(f.Min <= f.Default && f.Default <= f.Max) {
		return fmt.Errorf("catalog: field %q: default %g outside [%g, %g]", f.Name, f.Default, f.Min, f.Max)
	}
	if f.Precision < 0 {
		return fmt.Errorf("catalog: field %q: negative precision", f.Name)
	}
	return nil
}

// Fields returns the scalar field descriptors in catalog order.
// The returned slice must not be modified.
func (c *Catalog) Fields() []FieldSpec {
	return c.fields
}

// Curves returns the tone curve descriptors in catalog order.
// The returned slice must not be modified.
func (c *Catalog) Curves() []CurveSpec {
	return c.curves
}

// Lookup returns the scalar field with the given canonical name.
func (c *Catalog) Lookup(name string) (*FieldSpec, error) {
	i, ok := c.byName[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return &c.fields[i], nil
}

// ByTag returns the scalar field with the given wire tag or alias.
func (c *Catalog) ByTag(tag string) (*FieldSpec, error) {
	i, ok := c.byTag[tag]
	if !ok {
		return nil, &UnknownFieldError{Name: tag}
	}
	return &c.fields[i], nil
}

// LookupCurve returns the tone curve with the given canonical name.
func (c *Catalog) LookupCurve(name string) (*CurveSpec, error) {
	i, ok := c.curveByName[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return &c.curves[i], nil
}

// CurveByTag returns the tone curve with the given wire tag.
func (c *Catalog) CurveByTag(tag string) (*CurveSpec, error) {
	i, ok := c.curveByTag[tag]
	if !ok {
		return nil, &UnknownFieldError{Name: tag}
	}
	return &c.curves[i], nil
}

// Known reports whether tag is the wire tag or alias of a scalar field, or
// the tag of a curve.
func (c *Catalog) Known(tag string) bool {
	_, isField := c.byTag[tag]
	_, isCurve := c.curveByTag[tag]
	return isField || isCurve
}

// SplitTag splits a wire tag like "crs:Exposure2012" into prefix and local
// name.  If there is no prefix, the returned prefix is empty.
func SplitTag(tag string) (prefix, local string) {
	i := strings.IndexByte(tag, ':')
	if i < 0 {
		return "", tag
	}
	return tag[:i], tag[i+1:]
}

// UnknownFieldError is returned when a name or tag is not in the catalog.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// Unwrap allows errors.Is(err, ErrUnknownField).
func (e *UnknownFieldError) Unwrap() error {
	return ErrUnknownField
}

// ErrUnknownField is the sentinel underlying every [UnknownFieldError].
var ErrUnknownField = errors.New("unknown field")
