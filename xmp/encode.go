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
	"bytes"
	"cmp"
	"encoding/xml"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/text/language"

	"github.com/JayLindblad/presetify/catalog"
	"github.com/JayLindblad/presetify/jvxml"
	"github.com/JayLindblad/presetify/model"
)

// Defaults for the fields of [EncodeOptions].
const (
	DefaultIndent         = "  "
	DefaultToolkit        = "Adobe XMP Core 7.0-c000 1.000000"
	DefaultVersion        = "16.5"
	DefaultProcessVersion = "11.0"
)

// EncodeOptions control the layout of preset documents.
// The zero value, and a nil pointer, select the defaults.
type EncodeOptions struct {
	// Indent is the indentation per nesting level.  If empty,
	// [DefaultIndent] is used.  Set Compact to disable indentation.
	Indent string

	// Compact writes the document without any line breaks.
	Compact bool

	// Packet wraps the document in <?xpacket?> processing instructions.
	Packet bool

	// Toolkit is the value of the x:xmptk attribute.
	Toolkit string

	// Version and ProcessVersion are written as crs:Version and
	// crs:ProcessVersion.
	Version        string
	ProcessVersion string
}

func (o *EncodeOptions) withDefaults() EncodeOptions {
	var res EncodeOptions
	if o != nil {
		res = *o
	}
	if res.Indent == "" {
		res.Indent = DefaultIndent
	}
	if res.Toolkit == "" {
		res.Toolkit = DefaultToolkit
	}
	if res.Version == "" {
		res.Version = DefaultVersion
	}
	if res.ProcessVersion == "" {
		res.ProcessVersion = DefaultProcessVersion
	}
	return res
}

// ErrInvalidModel is the sentinel underlying every [InvalidModelError].
var ErrInvalidModel = errors.New("invalid model")

// InvalidModelError is returned by [Encode] if the adjustments cannot be
// written as a preset.
type InvalidModelError struct {
	Reason string
}

func (e *InvalidModelError) Error() string {
	return "xmp: invalid model: " + e.Reason
}

// Unwrap allows errors.Is(err, ErrInvalidModel).
func (e *InvalidModelError) Unwrap() error {
	return ErrInvalidModel
}

// Encode writes the adjustments a as a camera raw preset document.
//
// Every scalar of the catalog is written as an attribute of the
// rdf:Description element, in catalog order.  The preset name, group and
// description follow as language alternatives, and then the tone curves as
// ordered lists of control points.  If a.Preset.UUID is empty, a random
// UUID is generated.
//
// Encode fails with an [*InvalidModelError] if the preset name is blank.
func Encode(cat *catalog.Catalog, a *model.Adjustments, opts *EncodeOptions) ([]byte, error) {
	if strings.TrimSpace(a.Preset.Name) == "" {
		return nil, &InvalidModelError{Reason: "empty preset name"}
	}
	o := opts.withDefaults()

	used := map[string]struct{}{
		RDFNamespace:      {},
		catalog.Namespace: {},
	}
	for _, f := range cat.Fields() {
		if err := addTagNamespace(used, f.Tag); err != nil {
			return nil, err
		}
	}
	for _, cv := range cat.Curves() {
		if err := addTagNamespace(used, cv.Tag); err != nil {
			return nil, err
		}
	}

	e, err := newEncoder(used, &o)
	if err != nil {
		return nil, err
	}

	attrs := e.frameAttrs(a, &o)
	for i := range cat.Fields() {
		f := &cat.Fields()[i]
		// Catalog and model are kept consistent by the model tests.
		v, _ := a.Scalar(f.Name)
		attrs = append(attrs, xml.Attr{Name: e.tagName(f.Tag), Value: FormatValue(f, v)})
	}
	attrs = append(attrs, xml.Attr{Name: e.makeName(catalog.Namespace, "HasSettings"), Value: "True"})

	err = e.EncodeToken(xml.StartElement{
		Name: e.makeName(RDFNamespace, "Description"),
		Attr: attrs,
	})
	if err != nil {
		return nil, err
	}

	lang := a.Preset.Language
	err = e.writeAlt(e.makeName(catalog.Namespace, "Name"), a.Preset.Name, lang)
	if err != nil {
		return nil, err
	}
	if a.Preset.Group != "" {
		err = e.writeAlt(e.makeName(catalog.Namespace, "Group"), a.Preset.Group, lang)
		if err != nil {
			return nil, err
		}
	}
	if a.Preset.Description != "" {
		err = e.writeAlt(e.makeName(catalog.Namespace, "Description"), a.Preset.Description, lang)
		if err != nil {
			return nil, err
		}
	}

	for i := range cat.Curves() {
		cv := &cat.Curves()[i]
		curve, err := a.Curve(cv.Name)
		if err != nil {
			continue
		}
		err = e.writeCurve(cv, curve)
		if err != nil {
			return nil, err
		}
	}

	err = e.EncodeToken(xml.EndElement{Name: e.makeName(RDFNamespace, "Description")})
	if err != nil {
		return nil, err
	}

	err = e.Close()
	if err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

func addTagNamespace(used map[string]struct{}, tag string) error {
	prefix, _ := catalog.SplitTag(tag)
	ns, ok := prefixNamespace[prefix]
	if !ok {
		return fmt.Errorf("xmp: tag %q: unknown namespace prefix %q", tag, prefix)
	}
	used[ns] = struct{}{}
	return nil
}

// frameAttrs returns the attributes which identify the preset record.
func (e *encoder) frameAttrs(a *model.Adjustments, o *EncodeOptions) []xml.Attr {
	crs := func(local, value string) xml.Attr {
		return xml.Attr{Name: e.makeName(catalog.Namespace, local), Value: value}
	}
	return []xml.Attr{
		{Name: e.makeName(RDFNamespace, "about"), Value: ""},
		crs("PresetType", "Normal"),
		crs("Cluster", ""),
		crs("UUID", presetUUID(a.Preset.UUID)),
		crs("SupportsAmount", "False"),
		crs("SupportsColor", "True"),
		crs("SupportsMonochrome", "True"),
		crs("SupportsHighDynamicRange", "True"),
		crs("SupportsNormalDynamicRange", "True"),
		crs("SupportsSceneReferred", "True"),
		crs("SupportsOutputReferred", "True"),
		crs("CameraModelRestriction", ""),
		crs("Copyright", ""),
		crs("ContactInfo", ""),
		crs("Version", o.Version),
		crs("ProcessVersion", o.ProcessVersion),
	}
}

// writeAlt writes a language alternative with a single x-default entry.
// If lang is set, the same text is repeated for that language.
func (e *encoder) writeAlt(name xml.Name, text string, lang language.Tag) error {
	langs := []string{"x-default"}
	if lang != language.Und {
		langs = append(langs, lang.String())
	}

	err := e.EncodeToken(xml.StartElement{Name: name})
	if err != nil {
		return err
	}
	err = e.EncodeToken(xml.StartElement{Name: e.makeName(RDFNamespace, "Alt")})
	if err != nil {
		return err
	}
	for _, l := range langs {
		li := e.makeName(RDFNamespace, "li")
		err = e.EncodeToken(xml.StartElement{
			Name: li,
			Attr: []xml.Attr{{Name: e.makeName(xmlNamespace, "lang"), Value: l}},
		})
		if err != nil {
			return err
		}
		err = e.EncodeToken(xml.CharData(text))
		if err != nil {
			return err
		}
		err = e.EncodeToken(xml.EndElement{Name: li})
		if err != nil {
			return err
		}
	}
	err = e.EncodeToken(xml.EndElement{Name: e.makeName(RDFNamespace, "Alt")})
	if err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: name})
}

// writeCurve writes the control points of c as an rdf:Seq, in order of
// increasing input.  Points whose input is written the same as that of the
// previous point are left out.  A curve with fewer than two points is
// written as the identity.
func (e *encoder) writeCurve(cv *catalog.CurveSpec, c *model.ToneCurve) error {
	items := curveItems(cv, c.Points)
	if len(items) < 2 {
		items = curveItems(cv, model.IdentityCurve().Points)
	}

	name := e.tagName(cv.Tag)
	seq := e.makeName(RDFNamespace, "Seq")
	li := e.makeName(RDFNamespace, "li")

	err := e.EncodeToken(xml.StartElement{Name: name})
	if err != nil {
		return err
	}
	err = e.EncodeToken(xml.StartElement{Name: seq})
	if err != nil {
		return err
	}
	for _, item := range items {
		err = e.EncodeToken(xml.StartElement{Name: li})
		if err != nil {
			return err
		}
		err = e.EncodeToken(xml.CharData(item))
		if err != nil {
			return err
		}
		err = e.EncodeToken(xml.EndElement{Name: li})
		if err != nil {
			return err
		}
	}
	err = e.EncodeToken(xml.EndElement{Name: seq})
	if err != nil {
		return err
	}
	return e.EncodeToken(xml.EndElement{Name: name})
}

// curveItems formats the points sorted by input, skipping points whose
// formatted input repeats.
func curveItems(cv *catalog.CurveSpec, points []model.ControlPoint) []string {
	points = slices.Clone(points)
	slices.SortStableFunc(points, func(a, b model.ControlPoint) int {
		return cmp.Compare(a.Input, b.Input)
	})

	items := make([]string, 0, len(points))
	prev := ""
	for i, p := range points {
		in := formatNumber(p.Input, cv.Precision)
		if i > 0 && in == prev {
			continue
		}
		prev = in
		items = append(items, FormatPoint(cv, p))
	}
	return items
}

// An encoder writes a preset document to a buffer.
type encoder struct {
	buf *bytes.Buffer
	*jvxml.Encoder
	nsToPrefix map[string]string
	packet     bool
}

// newEncoder returns an encoder which has written the document head, up to
// and including the rdf:RDF start tag.  All namespaces in nsUsed are
// declared on the rdf:RDF element.  Each namespace must have an entry in
// defaultPrefix.
func newEncoder(nsUsed map[string]struct{}, o *EncodeOptions) (*encoder, error) {
	nsToPrefix := map[string]string{
		xmlNamespace:  defaultPrefix[xmlNamespace],
		MetaNamespace: defaultPrefix[MetaNamespace],
	}
	for ns := range nsUsed {
		nsToPrefix[ns] = defaultPrefix[ns]
	}

	buf := &bytes.Buffer{}
	enc := jvxml.NewEncoder(buf)
	if !o.Compact {
		enc.Indent("", o.Indent)
		enc.AttrIndent(o.Indent + o.Indent)
	}
	e := &encoder{
		buf:        buf,
		Encoder:    enc,
		nsToPrefix: nsToPrefix,
		packet:     o.Packet,
	}

	if o.Packet {
		err := e.EncodeToken(xml.ProcInst{
			Target: "xpacket",
			Inst:   []byte("begin=\"\uFEFF\" id=\"W5M0MpCehiHzreSzNTczkc9d\""),
		})
		if err != nil {
			return nil, err
		}
	}

	err := e.EncodeToken(xml.StartElement{
		Name: e.makeName(MetaNamespace, "xmpmeta"),
		Attr: []xml.Attr{
			{Name: xml.Name{Space: "xmlns", Local: e.nsToPrefix[MetaNamespace]}, Value: MetaNamespace},
			{Name: e.makeName(MetaNamespace, "xmptk"), Value: o.Toolkit},
		},
	})
	if err != nil {
		return nil, err
	}

	var attrs []xml.Attr
	nameSpaces := maps.Keys(nsUsed)
	sort.Slice(nameSpaces, func(i, j int) bool {
		// rdf first, then by prefix
		if (nameSpaces[i] == RDFNamespace) != (nameSpaces[j] == RDFNamespace) {
			return nameSpaces[i] == RDFNamespace
		}
		return nsToPrefix[nameSpaces[i]] < nsToPrefix[nameSpaces[j]]
	})
	for _, ns := range nameSpaces {
		if ns == xmlNamespace || ns == MetaNamespace {
			continue
		}
		attrs = append(attrs, xml.Attr{Name: xml.Name{Space: "xmlns", Local: nsToPrefix[ns]}, Value: ns})
	}
	err = e.EncodeToken(xml.StartElement{
		Name: e.makeName(RDFNamespace, "RDF"),
		Attr: attrs,
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Close writes the end of the document.  This must be called after all
// data has been written to the encoder.
func (e *encoder) Close() error {
	err := e.EncodeToken(xml.EndElement{Name: e.makeName(RDFNamespace, "RDF")})
	if err != nil {
		return err
	}
	err = e.EncodeToken(xml.EndElement{Name: e.makeName(MetaNamespace, "xmpmeta")})
	if err != nil {
		return err
	}

	if e.packet {
		err = e.EncodeToken(xml.ProcInst{
			Target: "xpacket",
			Inst:   []byte("end=\"w\""),
		})
		if err != nil {
			return err
		}
	}

	err = e.Encoder.Close()
	if err != nil {
		return err
	}
	e.buf.WriteByte('\n')
	return nil
}

func (e *encoder) makeName(ns, local string) xml.Name {
	pfx, ok := e.nsToPrefix[ns]
	if !ok {
		panic("namespace not registered: " + ns)
	}
	return xml.Name{Space: pfx, Local: local}
}

// tagName converts a wire tag like "crs:Exposure2012" into an element or
// attribute name.
func (e *encoder) tagName(tag string) xml.Name {
	prefix, local := catalog.SplitTag(tag)
	return e.makeName(prefixNamespace[prefix], local)
}
