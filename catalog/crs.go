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
	"strings"
	"sync"
)

const (
	// Namespace is the camera raw settings namespace.
	Namespace = "http://ns.adobe.com/camera-raw-settings/1.0/"

	// Prefix is the conventional prefix for [Namespace].
	Prefix = "crs"
)

// Channels lists the HSL color channels in panel order.
var Channels = [8]string{"Red", "Orange", "Yellow", "Green", "Aqua", "Blue", "Purple", "Magenta"}

// HSLComponents lists the per-channel HSL adjustments in panel order.
var HSLComponents = [3]string{"Hue", "Saturation", "Luminance"}

// HSLName returns the canonical field name for an HSL component and
// channel, e.g. "hueRed".
func HSLName(component, channel int) string {
	return strings.ToLower(HSLComponents[component]) + Channels[channel]
}

func signed(name, local string, g Group) FieldSpec {
	return FieldSpec{Name: name, Tag: Prefix + ":" + local, Kind: Int, Group: g, Min: -100, Max: 100}
}

func amount(name, local string, g Group, def float64) FieldSpec {
	return FieldSpec{Name: name, Tag: Prefix + ":" + local, Kind: Int, Group: g, Min: 0, Max: 100, Default: def}
}

func enum(name, local string, g Group, def int, options ...string) FieldSpec {
	return FieldSpec{
		Name:    name,
		Tag:     Prefix + ":" + local,
		Kind:    Enum,
		Group:   g,
		Min:     0,
		Max:     float64(len(options) - 1),
		Default: float64(def),
		Options: options,
	}
}

func alias(f FieldSpec, locals ...string) FieldSpec {
	for _, local := range locals {
		f.Aliases = append(f.Aliases, Prefix+":"+local)
	}
	return f
}

func crsFields() []FieldSpec {
	fields := []FieldSpec{
		{Name: "exposure", Tag: "crs:Exposure2012", Kind: Float, Group: Basic, Min: -5, Max: 5, Precision: 2},
		signed("contrast", "Contrast2012", Basic),
		signed("highlights", "Highlights2012", Basic),
		signed("shadows", "Shadows2012", Basic),
		signed("whites", "Whites2012", Basic),
		signed("blacks", "Blacks2012", Basic),

		enum("whiteBalance", "WhiteBalance", Color, 0,
			"As Shot", "Auto", "Daylight", "Cloudy", "Shade", "Tungsten", "Fluorescent", "Flash", "Custom"),
		{Name: "temperature", Tag: "crs:Temperature", Kind: Int, Group: Color, Min: 2000, Max: 50000, Default: 5500},
		{Name: "tint", Tag: "crs:Tint", Kind: Int, Group: Color, Min: -150, Max: 150},
		alias(signed("vibrance", "Vibrance", Color), "Vibrance2012"),
		signed("saturation", "Saturation", Color),

		signed("texture", "Texture", Presence),
		alias(signed("clarity", "Clarity2012", Presence), "Clarity"),
		signed("dehaze", "Dehaze", Presence),

		signed("parametricShadows", "ParametricShadows", ToneCurve),
		signed("parametricDarks", "ParametricDarks", ToneCurve),
		signed("parametricLights", "ParametricLights", ToneCurve),
		signed("parametricHighlights", "ParametricHighlights", ToneCurve),

		{Name: "sharpness", Tag: "crs:Sharpness", Kind: Int, Group: Detail, Min: 0, Max: 150},
		{Name: "sharpenRadius", Tag: "crs:SharpenRadius", Kind: Float, Group: Detail, Min: 0.5, Max: 3, Default: 1, Precision: 1},
		amount("sharpenDetail", "SharpenDetail", Detail, 25),
		amount("sharpenEdgeMasking", "SharpenEdgeMasking", Detail, 0),
		amount("luminanceNoiseReduction", "LuminanceSmoothing", Detail, 0),
		amount("luminanceNoiseReductionDetail", "LuminanceNoiseReductionDetail", Detail, 50),
		amount("luminanceNoiseReductionContrast", "LuminanceNoiseReductionContrast", Detail, 0),
		amount("colorNoiseReduction", "ColorNoiseReduction", Detail, 0),
		amount("colorNoiseReductionDetail", "ColorNoiseReductionDetail", Detail, 50),
		amount("colorNoiseReductionSmoothness", "ColorNoiseReductionSmoothness", Detail, 50),

		signed("vignetteAmount", "PostCropVignetteAmount", Effects),
		amount("vignetteMidpoint", "PostCropVignetteMidpoint", Effects, 50),
		amount("vignetteFeather", "PostCropVignetteFeather", Effects, 50),
		signed("vignetteRoundness", "PostCropVignetteRoundness", Effects),
		amount("grainAmount", "GrainAmount", Effects, 0),
		amount("grainSize", "GrainSize", Effects, 25),
		amount("grainFrequency", "GrainFrequency", Effects, 50),

		enum("convertToGrayscale", "ConvertToGrayscale", Misc, 0, "False", "True"),
		enum("toneCurveName", "ToneCurveName2012", ToneCurve, 0,
			"Linear", "Medium Contrast", "Strong Contrast", "Custom"),
	}

	for comp, component := range HSLComponents {
		for ch, channel := range Channels {
			fields = append(fields, FieldSpec{
				Name:  HSLName(comp, ch),
				Tag:   Prefix + ":" + component + "Adjustment" + channel,
				Kind:  Float,
				Group: HSL,
				Min:   -100,
				Max:   100,
			})
		}
	}

	return fields
}

func crsCurves() []CurveSpec {
	return []CurveSpec{
		{Name: "toneCurve", Tag: "crs:ToneCurvePV2012"},
		{Name: "toneCurveRed", Tag: "crs:ToneCurvePV2012Red"},
		{Name: "toneCurveGreen", Tag: "crs:ToneCurvePV2012Green"},
		{Name: "toneCurveBlue", Tag: "crs:ToneCurvePV2012Blue"},
	}
}

// Default returns the camera raw settings catalog.  The same value is
// returned on every call; it must not be modified.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(crsFields(), crsCurves())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// frameTags lists the crs properties which describe the preset or the
// settings record itself, rather than an adjustment.
var frameTags = map[string]bool{
	"AlreadyApplied":             true,
	"CameraModelRestriction":     true,
	"CameraProfile":              true,
	"Cluster":                    true,
	"CompatibleVersion":          true,
	"ContactInfo":                true,
	"Copyright":                  true,
	"Description":                true,
	"Group":                      true,
	"HasCrop":                    true,
	"HasSettings":                true,
	"Name":                       true,
	"PresetType":                 true,
	"ProcessVersion":             true,
	"RawFileName":                true,
	"ShortName":                  true,
	"SortName":                   true,
	"SupportsAmount":             true,
	"SupportsColor":              true,
	"SupportsHighDynamicRange":   true,
	"SupportsMonochrome":         true,
	"SupportsNormalDynamicRange": true,
	"SupportsOutputReferred":     true,
	"SupportsSceneReferred":      true,
	"UUID":                       true,
	"Version":                    true,
}

// IsFrameTag reports whether tag is a crs property which identifies a
// preset or settings record, such as "crs:UUID" or "crs:Version".
func IsFrameTag(tag string) bool {
	prefix, local := SplitTag(tag)
	return prefix == Prefix && frameTags[local]
}
