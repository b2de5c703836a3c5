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

package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JayLindblad/presetify/catalog"
)

// TestCatalogCoverage ensures that the model and the default catalog
// describe the same set of fields.
func TestCatalogCoverage(t *testing.T) {
	cat := catalog.Default()

	var want []string
	for _, f := range cat.Fields() {
		want = append(want, f.Name)
	}
	got := ScalarNames()
	sort.Strings(want)
	sort.Strings(got)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("scalar fields differ (-catalog +model):\n%s", d)
	}

	want = want[:0]
	for _, c := range cat.Curves() {
		want = append(want, c.Name)
	}
	got = CurveNames()
	sort.Strings(want)
	sort.Strings(got)
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("curves differ (-catalog +model):\n%s", d)
	}
}

func TestDefaults(t *testing.T) {
	cat := catalog.Default()
	a := Defaults(cat)

	for _, f := range cat.Fields() {
		v, err := a.Scalar(f.Name)
		if err != nil {
			t.Fatal(err)
		}
		if v != f.Default {
			t.Errorf("%s = %g, want %g", f.Name, v, f.Default)
		}
	}
	for _, cv := range cat.Curves() {
		c, err := a.Curve(cv.Name)
		if err != nil {
			t.Fatal(err)
		}
		if !c.IsIdentity() {
			t.Errorf("%s is not the identity: %v", cv.Name, c.Points)
		}
	}
	if a.Temperature != 5500 || a.SharpenRadius != 1 {
		t.Errorf("unexpected defaults: temperature %g, radius %g", a.Temperature, a.SharpenRadius)
	}
	if a.HasAdjustments(cat) {
		t.Error("default adjustments report HasAdjustments")
	}
}

func TestHasAdjustments(t *testing.T) {
	cat := catalog.Default()

	a := Defaults(cat)
	a.Exposure = 1.5
	if !a.HasAdjustments(cat) {
		t.Error("exposure change not detected")
	}

	b := Defaults(cat)
	b.ToneCurve = ToneCurve{Points: []ControlPoint{{0, 0}, {128, 140}, {255, 255}}}
	if !b.HasAdjustments(cat) {
		t.Error("tone curve change not detected")
	}

	c := Defaults(cat)
	c.HSL[Aqua].Saturation = -10
	if !c.HasAdjustments(cat) {
		t.Error("HSL change not detected")
	}
}

func TestScalarAccess(t *testing.T) {
	var a Adjustments

	if err := a.SetScalar("hueMagenta", 12); err != nil {
		t.Fatal(err)
	}
	if a.HSL[Magenta].Hue != 12 {
		t.Errorf("hueMagenta not stored in HSL[Magenta]: %+v", a.HSL)
	}
	if err := a.SetScalar("luminanceOrange", -3); err != nil {
		t.Fatal(err)
	}
	if a.HSL[Orange].Luminance != -3 {
		t.Errorf("luminanceOrange not stored in HSL[Orange]: %+v", a.HSL)
	}

	a.Vibrance = 42
	v, err := a.Scalar("vibrance")
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("vibrance = %g, want 42", v)
	}

	if _, err := a.Scalar("warp"); !errors.Is(err, catalog.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if err := a.SetScalar("warp", 1); !errors.Is(err, catalog.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err := a.Curve("exposure"); !errors.Is(err, catalog.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestClone(t *testing.T) {
	a := Defaults(catalog.Default())
	b := a.Clone()
	b.ToneCurve.Points[1].Output = 200

	if a.ToneCurve.Points[1].Output != 255 {
		t.Error("Clone shares tone curve points")
	}
}

func TestChannelString(t *testing.T) {
	if s := Purple.String(); s != "Purple" {
		t.Errorf("Purple.String() = %q", s)
	}
	if s := Channel(12).String(); s != "Channel(?)" {
		t.Errorf("Channel(12).String() = %q", s)
	}
}
