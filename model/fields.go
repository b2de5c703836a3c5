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
	"golang.org/x/exp/maps"

	"github.com/JayLindblad/presetify/catalog"
)

type scalarRef func(a *Adjustments) *float64

var scalarFields = map[string]scalarRef{
	"exposure":   func(a *Adjustments) *float64 { return &a.Exposure },
	"contrast":   func(a *Adjustments) *float64 { return &a.Contrast },
	"highlights": func(a *Adjustments) *float64 { return &a.Highlights },
	"shadows":    func(a *Adjustments) *float64 { return &a.Shadows },
	"whites":     func(a *Adjustments) *float64 { return &a.Whites },
	"blacks":     func(a *Adjustments) *float64 { return &a.Blacks },

	"whiteBalance": func(a *Adjustments) *float64 { return &a.WhiteBalance },
	"temperature":  func(a *Adjustments) *float64 { return &a.Temperature },
	"tint":         func(a *Adjustments) *float64 { return &a.Tint },
	"vibrance":     func(a *Adjustments) *float64 { return &a.Vibrance },
	"saturation":   func(a *Adjustments) *float64 { return &a.Saturation },

	"texture": func(a *Adjustments) *float64 { return &a.Texture },
	"clarity": func(a *Adjustments) *float64 { return &a.Clarity },
	"dehaze":  func(a *Adjustments) *float64 { return &a.Dehaze },

	"parametricShadows":    func(a *Adjustments) *float64 { return &a.ParametricShadows },
	"parametricDarks":      func(a *Adjustments) *float64 { return &a.ParametricDarks },
	"parametricLights":     func(a *Adjustments) *float64 { return &a.ParametricLights },
	"parametricHighlights": func(a *Adjustments) *float64 { return &a.ParametricHighlights },
	"toneCurveName":        func(a *Adjustments) *float64 { return &a.ToneCurveName },

	"sharpness":          func(a *Adjustments) *float64 { return &a.Sharpness },
	"sharpenRadius":      func(a *Adjustments) *float64 { return &a.SharpenRadius },
	"sharpenDetail":      func(a *Adjustments) *float64 { return &a.SharpenDetail },
	"sharpenEdgeMasking": func(a *Adjustments) *float64 { return &a.SharpenEdgeMasking },

	"luminanceNoiseReduction":         func(a *Adjustments) *float64 { return &a.LuminanceNoiseReduction },
	"luminanceNoiseReductionDetail":   func(a *Adjustments) *float64 { return &a.LuminanceNoiseReductionDetail },
	"luminanceNoiseReductionContrast": func(a *Adjustments) *float64 { return &a.LuminanceNoiseReductionContrast },
	"colorNoiseReduction":             func(a *Adjustments) *float64 { return &a.ColorNoiseReduction },
	"colorNoiseReductionDetail":       func(a *Adjustments) *float64 { return &a.ColorNoiseReductionDetail },
	"colorNoiseReductionSmoothness":   func(a *Adjustments) *float64 { return &a.ColorNoiseReductionSmoothness },

	"vignetteAmount":    func(a *Adjustments) *float64 { return &a.VignetteAmount },
	"vignetteMidpoint":  func(a *Adjustments) *float64 { return &a.VignetteMidpoint },
	"vignetteFeather":   func(a *Adjustments) *float64 { return &a.VignetteFeather },
	"vignetteRoundness": func(a *Adjustments) *float64 { return &a.VignetteRoundness },

	"grainAmount":    func(a *Adjustments) *float64 { return &a.GrainAmount },
	"grainSize":      func(a *Adjustments) *float64 { return &a.GrainSize },
	"grainFrequency": func(a *Adjustments) *float64 { return &a.GrainFrequency },

	"convertToGrayscale": func(a *Adjustments) *float64 { return &a.ConvertToGrayscale },
}

func init() {
	for ch := range catalog.Channels {
		scalarFields[catalog.HSLName(0, ch)] = func(a *Adjustments) *float64 { return &a.HSL[ch].Hue }
		scalarFields[catalog.HSLName(1, ch)] = func(a *Adjustments) *float64 { return &a.HSL[ch].Saturation }
		scalarFields[catalog.HSLName(2, ch)] = func(a *Adjustments) *float64 { return &a.HSL[ch].Luminance }
	}
}

var curveFields = map[string]func(a *Adjustments) *ToneCurve{
	"toneCurve":      func(a *Adjustments) *ToneCurve { return &a.ToneCurve },
	"toneCurveRed":   func(a *Adjustments) *ToneCurve { return &a.ToneCurveRed },
	"toneCurveGreen": func(a *Adjustments) *ToneCurve { return &a.ToneCurveGreen },
	"toneCurveBlue":  func(a *Adjustments) *ToneCurve { return &a.ToneCurveBlue },
}

// Scalar returns the value of the scalar field with the given canonical
// name.
func (a *Adjustments) Scalar(name string) (float64, error) {
	ref, ok := scalarFields[name]
	if !ok {
		return 0, &catalog.UnknownFieldError{Name: name}
	}
	return *ref(a), nil
}

// SetScalar sets the scalar field with the given canonical name.
// The value is stored as given; no domain checks are performed.
func (a *Adjustments) SetScalar(name string, v float64) error {
	ref, ok := scalarFields[name]
	if !ok {
		return &catalog.UnknownFieldError{Name: name}
	}
	*ref(a) = v
	return nil
}

// Curve returns a pointer to the tone curve with the given canonical name.
func (a *Adjustments) Curve(name string) (*ToneCurve, error) {
	ref, ok := curveFields[name]
	if !ok {
		return nil, &catalog.UnknownFieldError{Name: name}
	}
	return ref(a), nil
}

// ScalarNames returns the canonical names of all scalar fields in the
// model, in no particular order.
func ScalarNames() []string {
	return maps.Keys(scalarFields)
}

// CurveNames returns the canonical names of all tone curves in the model,
// in no particular order.
func CurveNames() []string {
	return maps.Keys(curveFields)
}
