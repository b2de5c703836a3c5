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

package catalog

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDefaultInvariants checks the domain of every field in the default
// catalog.
func TestDefaultInvariants(t *testing.T) {
	c := Default()
	for _, f := range c.Fields() {
		if !(f.Min <= f.Default && f.Default <= f.Max) {
			t.Errorf("%s: default %g outside [%g, %g]", f.Name, f.Default, f.Min, f.Max)
		}
		if prefix, _ := SplitTag(f.Tag); prefix != Prefix {
			t.Errorf("%s: unexpected prefix %q", f.Name, prefix)
		}
	}
}

func TestDefaultSize(t *testing.T) {
	c := Default()

	var hsl, scalar int
	for _, f := range c.Fields() {
		if f.Group == HSL {
			hsl++
		} else {
			scalar++
		}
	}
	if hsl != 24 {
		t.Errorf("got %d HSL fields, want 24", hsl)
	}
	if scalar < 30 {
		t.Errorf("got %d scalar fields, want at least 30", scalar)
	}
	if n := len(c.Curves()); n != 4 {
		t.Errorf("got %d curves, want 4", n)
	}
}

func TestHSLOrder(t *testing.T) {
	c := Default()

	var got []string
	for _, f := range c.Fields() {
		if f.Group == HSL {
			got = append(got, f.Local())
		}
	}
	want := []string{
		"HueAdjustmentRed", "HueAdjustmentOrange", "HueAdjustmentYellow", "HueAdjustmentGreen",
		"HueAdjustmentAqua", "HueAdjustmentBlue", "HueAdjustmentPurple", "HueAdjustmentMagenta",
		"SaturationAdjustmentRed", "SaturationAdjustmentOrange", "SaturationAdjustmentYellow", "SaturationAdjustmentGreen",
		"SaturationAdjustmentAqua", "SaturationAdjustmentBlue", "SaturationAdjustmentPurple", "SaturationAdjustmentMagenta",
		"LuminanceAdjustmentRed", "LuminanceAdjustmentOrange", "LuminanceAdjustmentYellow", "LuminanceAdjustmentGreen",
		"LuminanceAdjustmentAqua", "LuminanceAdjustmentBlue", "LuminanceAdjustmentPurple", "LuminanceAdjustmentMagenta",
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("HSL order mismatch (-want +got):\n%s", d)
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	f, err := c.Lookup("exposure")
	if err != nil {
		t.Fatal(err)
	}
	if f.Tag != "crs:Exposure2012" || f.Kind != Float {
		t.Errorf("unexpected exposure field %+v", f)
	}

	g, err := c.ByTag("crs:Exposure2012")
	if err != nil {
		t.Fatal(err)
	}
	if g != f {
		t.Error("Lookup and ByTag disagree")
	}

	cv, err := c.CurveByTag("crs:ToneCurvePV2012")
	if err != nil {
		t.Fatal(err)
	}
	if cv.Name != "toneCurve" {
		t.Errorf("unexpected curve %q", cv.Name)
	}

	if !c.Known("crs:ToneCurvePV2012Blue") || !c.Known("crs:Vibrance") {
		t.Error("known tags reported as unknown")
	}
	if c.Known("crs:Version") {
		t.Error("crs:Version reported as known")
	}

	v, err := c.ByTag("crs:Vibrance2012")
	if err != nil {
		t.Fatal(err)
	}
	if v.Name != "vibrance" || v.Tag != "crs:Vibrance" {
		t.Errorf("alias resolved to %q (%s)", v.Name, v.Tag)
	}
}

func TestUnknownField(t *testing.T) {
	c := Default()

	for _, err := range []error{
		func() error { _, err := c.Lookup("nonsense"); return err }(),
		func() error { _, err := c.ByTag("crs:Nonsense"); return err }(),
		func() error { _, err := c.LookupCurve("exposure"); return err }(),
		func() error { _, err := c.CurveByTag("crs:Exposure2012"); return err }(),
	} {
		if !errors.Is(err, ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
		var ufe *UnknownFieldError
		if !errors.As(err, &ufe) || ufe.Name == "" {
			t.Errorf("expected *UnknownFieldError with name, got %v", err)
		}
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	cases := []struct {
		desc   string
		fields []FieldSpec
		curves []CurveSpec
	}{
		{
			desc:   "default outside domain",
			fields: []FieldSpec{{Name: "a", Tag: "t:A", Kind: Int, Min: 0, Max: 10, Default: 11}},
		},
		{
			desc:   "unqualified tag",
			fields: []FieldSpec{{Name: "a", Tag: "A", Kind: Int, Max: 1}},
		},
		{
			desc: "duplicate name",
			fields: []FieldSpec{
				{Name: "a", Tag: "t:A", Kind: Int, Max: 1},
				{Name: "a", Tag: "t:B", Kind: Int, Max: 1},
			},
		},
		{
			desc:   "duplicate tag across fields and curves",
			fields: []FieldSpec{{Name: "a", Tag: "t:A", Kind: Int, Max: 1}},
			curves: []CurveSpec{{Name: "c", Tag: "t:A"}},
		},
		{
			desc:   "enum domain mismatch",
			fields: []FieldSpec{{Name: "a", Tag: "t:A", Kind: Enum, Max: 5, Options: []string{"x", "y"}}},
		},
		{
			desc:   "enum without options",
			fields: []FieldSpec{{Name: "a", Tag: "t:A", Kind: Enum}},
		},
		{
			desc: "alias collides with tag",
			fields: []FieldSpec{
				{Name: "a", Tag: "t:A", Kind: Int, Max: 1},
				{Name: "b", Tag: "t:B", Kind: Int, Max: 1, Aliases: []string{"t:A"}},
			},
		},
		{
			desc:   "unqualified alias",
			fields: []FieldSpec{{Name: "a", Tag: "t:A", Kind: Int, Max: 1, Aliases: []string{"A"}}},
		},
		{
			desc:   "invalid kind",
			fields: []FieldSpec{{Name: "a", Tag: "t:A"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := New(tc.fields, tc.curves); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestClamp(t *testing.T) {
	f, err := Default().Lookup("exposure")
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct{ in, out float64 }{
		{-7, -5}, {-5, -5}, {1.25, 1.25}, {5, 5}, {9.5, 5},
	} {
		if got := f.Clamp(tc.in); got != tc.out {
			t.Errorf("Clamp(%g) = %g, want %g", tc.in, got, tc.out)
		}
	}
}

func TestSplitTag(t *testing.T) {
	for _, tc := range []struct{ tag, prefix, local string }{
		{"crs:Exposure2012", "crs", "Exposure2012"},
		{"Exposure2012", "", "Exposure2012"},
		{"XMP-crs:Tint", "XMP-crs", "Tint"},
	} {
		prefix, local := SplitTag(tc.tag)
		if prefix != tc.prefix || local != tc.local {
			t.Errorf("SplitTag(%q) = %q, %q", tc.tag, prefix, local)
		}
	}
}

func TestIsFrameTag(t *testing.T) {
	for tag, want := range map[string]bool{
		"crs:UUID":          true,
		"crs:Version":       true,
		"crs:Exposure2012":  false,
		"dc:Description":    false,
		"crs:SupportsColor": true,
	} {
		if got := IsFrameTag(tag); got != want {
			t.Errorf("IsFrameTag(%q) = %t, want %t", tag, got, want)
		}
	}
}
