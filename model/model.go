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

// Package model holds the in-memory representation of a set of camera raw
// adjustments.
//
// The types in this package are plain values.  An [Adjustments] value is
// normally created by the metadata parser, and read by the preset encoder.
// Fields can be accessed directly, or generically by canonical field name
// using [Adjustments.Scalar] and [Adjustments.SetScalar].
package model

import (
	"slices"

	"golang.org/x/text/language"

	"github.com/JayLindblad/presetify/catalog"
)

// Channel identifies one of the eight HSL color channels.
type Channel int

// These are the HSL channels, in panel order.
const (
	Red Channel = iota
	Orange
	Yellow
	Green
	Aqua
	Blue
	Purple
	Magenta
)

func (c Channel) String() string {
	if c < Red || c > Magenta {
		return "Channel(?)"
	}
	return catalog.Channels[c]
}

// HSL holds the hue, saturation and luminance adjustments of one channel.
type HSL struct {
	Hue        float64
	Saturation float64
	Luminance  float64
}

// ControlPoint is one knot of a tone curve.  Both coordinates are in the
// range [0, 255].
type ControlPoint struct {
	Input  float64
	Output float64
}

// ToneCurve is a piecewise mapping from input to output brightness.
//
// The points are sorted by increasing input value, and no two points have
// the same input.  A valid curve has at least two points.
type ToneCurve struct {
	Points []ControlPoint
}

// IdentityCurve returns the curve which maps every input to itself.
func IdentityCurve() ToneCurve {
	return ToneCurve{
		Points: []ControlPoint{
			{Input: catalog.CurveMin, Output: catalog.CurveMin},
			{Input: catalog.CurveMax, Output: catalog.CurveMax},
		},
	}
}

// IsIdentity reports whether c is the two-point identity curve.
func (c ToneCurve) IsIdentity() bool {
	return slices.Equal(c.Points, IdentityCurve().Points)
}

// Clone returns a deep copy of c.
func (c ToneCurve) Clone() ToneCurve {
	return ToneCurve{Points: slices.Clone(c.Points)}
}

// PresetMetadata identifies a preset.
type PresetMetadata struct {
	// Name is the preset name shown by the editing application.  It must be
	// non-empty for the preset to be written.
	Name string

	Description string

	// Group is the preset group the application files the preset under.
	Group string

	// UUID is a lowercase, hyphenated UUID.  If empty, a new one is
	// generated when the preset is written.
	UUID string

	// Language, if not language.Und, is the language of Name, Group and
	// Description.
	Language language.Tag
}

// Adjustments is the complete set of develop settings extracted from an
// image.
type Adjustments struct {
	Exposure   float64
	Contrast   float64
	Highlights float64
	Shadows    float64
	Whites     float64
	Blacks     float64

	WhiteBalance float64 // index into the catalog options
	Temperature  float64
	Tint         float64
	Vibrance     float64
	Saturation   float64

	Texture float64
	Clarity float64
	Dehaze  float64

	ParametricShadows    float64
	ParametricDarks      float64
	ParametricLights     float64
	ParametricHighlights float64
	ToneCurveName        float64 // index into the catalog options

	Sharpness          float64
	SharpenRadius      float64
	SharpenDetail      float64
	SharpenEdgeMasking float64

	LuminanceNoiseReduction         float64
	LuminanceNoiseReductionDetail   float64
	LuminanceNoiseReductionContrast float64
	ColorNoiseReduction             float64
	ColorNoiseReductionDetail       float64
	ColorNoiseReductionSmoothness   float64

	VignetteAmount    float64
	VignetteMidpoint  float64
	VignetteFeather   float64
	VignetteRoundness float64

	GrainAmount    float64
	GrainSize      float64
	GrainFrequency float64

	ConvertToGrayscale float64 // index into the catalog options

	HSL [8]HSL

	ToneCurve      ToneCurve
	ToneCurveRed   ToneCurve
	ToneCurveGreen ToneCurve
	ToneCurveBlue  ToneCurve

	Preset PresetMetadata
}

// Defaults returns the adjustments with every field at its catalog default
// and all curves set to the identity.
func Defaults(cat *catalog.Catalog) Adjustments {
	var a Adjustments
	for _, f := range cat.Fields() {
		// Names which are not part of the model are skipped here; the
		// consistency of catalog and model is checked by the tests.
		_ = a.SetScalar(f.Name, f.Default)
	}
	for _, cv := range cat.Curves() {
		if c, err := a.Curve(cv.Name); err == nil {
			*c = IdentityCurve()
		}
	}
	return a
}

// HasAdjustments reports whether any field differs from its catalog default
// or any curve differs from the identity.
func (a *Adjustments) HasAdjustments(cat *catalog.Catalog) bool {
	for _, f := range cat.Fields() {
		v, err := a.Scalar(f.Name)
		if err == nil && v != f.Default {
			return true
		}
	}
	for _, cv := range cat.Curves() {
		c, err := a.Curve(cv.Name)
		if err == nil && !c.IsIdentity() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of a.
func (a Adjustments) Clone() Adjustments {
	a.ToneCurve = a.ToneCurve.Clone()
	a.ToneCurveRed = a.ToneCurveRed.Clone()
	a.ToneCurveGreen = a.ToneCurveGreen.Clone()
	a.ToneCurveBlue = a.ToneCurveBlue.Clone()
	return a
}
