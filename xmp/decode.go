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
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNoDescription is returned by [ReadTags] if the input contains no
// rdf:Description element inside rdf:RDF.
var ErrNoDescription = errors.New("xmp: no rdf:Description found")

// ItemSep separates the items of rdf:Seq and rdf:Bag arrays in the values
// returned by [ReadTags].
const ItemSep = "; "

// ReadFile reads the tags of an XMP document from a file.
func ReadFile(filename string) (map[string]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTags(f)
}

// ReadTags reads the properties of an XMP document into a map from
// prefixed tag names, like "crs:Exposure2012", to string values.
//
// Attributes of rdf:Description and simple property elements map to their
// value.  The items of rdf:Seq and rdf:Bag arrays are joined using
// [ItemSep], and for rdf:Alt the x-default item, or else the first item, is
// used.  Structured values are skipped.  If several rdf:Description
// elements are present, their properties are merged.
//
// The result can be passed to the metadata parser.
func ReadTags(r io.Reader) (map[string]string, error) {
	dec := xml.NewDecoder(r)
	tags := make(map[string]string)
	pfx := newPrefixMap()

	var level int
	descriptionLevel := -1
	propertyLevel := -1
	found := false
	var propertyElement []xml.Token
	for {
		t, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := t.(type) {
		case xml.StartElement:
			pfx.declare(t.Attr)
			if level > 0 || t.Name == elemRDFRoot {
				level++
			} else {
				continue
			}
			if descriptionLevel < 0 && t.Name == elemRDFDescription {
				found = true
				for _, a := range t.Attr {
					if a.Name.Space == "xmlns" || a.Name.Space == "" && a.Name.Local == "xmlns" {
						continue
					}
					switch a.Name {
					case attrRDFAbout, attrRDFID, attrRDFNodeID, attrXMLLang:
						// not properties
					default:
						tags[pfx.tag(a.Name)] = a.Value
					}
				}
				descriptionLevel = level
			} else if descriptionLevel >= 0 && propertyLevel < 0 {
				// start recording the XML tokens which make up a property element
				propertyLevel = level
				propertyElement = nil
			}
		case xml.EndElement:
			if level == propertyLevel {
				// propertyElement holds the start element and the content,
				// but not the end element.
				start := propertyElement[0].(xml.StartElement)
				if v, ok := propertyValue(start, propertyElement[1:]); ok {
					tags[pfx.tag(start.Name)] = v
				}
				propertyLevel = -1
			}
			if level == descriptionLevel {
				descriptionLevel = -1
			}
			if level > 0 {
				level--
			}
		}

		if propertyLevel >= 0 {
			propertyElement = append(propertyElement, xml.CopyToken(t))
		}
	}

	if !found {
		return nil, ErrNoDescription
	}
	return tags, nil
}

// propertyValue returns the string value of a property element.  The
// tokens are the content of the element, without the end element.
func propertyValue(start xml.StartElement, tokens []xml.Token) (string, bool) {
	for _, a := range start.Attr {
		switch a.Name {
		case attrRDFResource:
			return a.Value, true
		case attrRDFParseType:
			// parseType="Resource" structs are not represented
			return "", false
		}
	}

	var text strings.Builder
	for i, t := range tokens {
		switch t := t.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			switch t.Name {
			case elemRDFSeq, elemRDFBag:
				return strings.Join(arrayItems(tokens[i+1:]), ItemSep), true
			case elemRDFAlt:
				return altItem(tokens[i+1:]), true
			default:
				return "", false
			}
		}
	}
	return strings.TrimSpace(text.String()), true
}

// arrayItems returns the texts of the rdf:li children at the top level of
// tokens.
func arrayItems(tokens []xml.Token) []string {
	items := []string{}
	for _, item := range listItems(tokens) {
		items = append(items, item.text)
	}
	return items
}

// altItem returns the x-default item of a language alternative, or the
// first item if there is no default.
func altItem(tokens []xml.Token) string {
	items := listItems(tokens)
	for _, item := range items {
		if item.lang == "x-default" {
			return item.text
		}
	}
	if len(items) > 0 {
		return items[0].text
	}
	return ""
}

type listItem struct {
	lang string
	text string
}

func listItems(tokens []xml.Token) []listItem {
	var items []listItem
	depth := 0
	var cur *listItem
	for _, t := range tokens {
		switch t := t.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 && t.Name == elemRDFLi {
				items = append(items, listItem{})
				cur = &items[len(items)-1]
				for _, a := range t.Attr {
					if a.Name == attrXMLLang {
						cur.lang = a.Value
					}
				}
			}
		case xml.EndElement:
			if depth == 0 {
				// end of the enclosing array
				return items
			}
			if depth == 1 {
				cur = nil
			}
			depth--
		case xml.CharData:
			if depth == 1 && cur != nil {
				cur.text += string(t)
			}
		}
	}
	return items
}

// prefixMap assigns prefixes to the namespaces found in a document.
type prefixMap struct {
	nsToPrefix map[string]string
	prefixToNS map[string]string
	declared   map[string]string
}

func newPrefixMap() *prefixMap {
	m := &prefixMap{
		nsToPrefix: make(map[string]string),
		prefixToNS: make(map[string]string),
		declared:   make(map[string]string),
	}
	// conventional prefixes are reserved for their namespaces
	for pfx, ns := range prefixNamespace {
		m.prefixToNS[pfx] = ns
	}
	return m
}

// declare records the namespace declarations among attr.
func (m *prefixMap) declare(attr []xml.Attr) {
	for _, a := range attr {
		if a.Name.Space == "xmlns" && a.Value != "" {
			if _, seen := m.declared[a.Value]; !seen {
				m.declared[a.Value] = a.Name.Local
			}
		}
	}
}

// tag returns the prefixed form of name.  Known namespaces use their
// conventional prefix.  Other namespaces use the prefix declared in the
// document, unless that prefix is already taken, in which case a new one
// is generated.
func (m *prefixMap) tag(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	pfx, ok := m.nsToPrefix[name.Space]
	if !ok {
		pfx, ok = defaultPrefix[name.Space]
		if !ok {
			pfx = m.declared[name.Space]
			if pfx == "" || m.prefixToNS[pfx] != "" {
				pfx = getPrefix(m.prefixToNS, name.Space)
			}
			m.prefixToNS[pfx] = name.Space
		}
		m.nsToPrefix[name.Space] = pfx
	}
	return pfx + ":" + name.Local
}

var (
	elemRDFRoot        = xml.Name{Space: RDFNamespace, Local: "RDF"}
	elemRDFDescription = xml.Name{Space: RDFNamespace, Local: "Description"}
	elemRDFSeq         = xml.Name{Space: RDFNamespace, Local: "Seq"}
	elemRDFBag         = xml.Name{Space: RDFNamespace, Local: "Bag"}
	elemRDFAlt         = xml.Name{Space: RDFNamespace, Local: "Alt"}
	elemRDFLi          = xml.Name{Space: RDFNamespace, Local: "li"}

	attrRDFAbout     = xml.Name{Space: RDFNamespace, Local: "about"}
	attrRDFID        = xml.Name{Space: RDFNamespace, Local: "ID"}
	attrRDFNodeID    = xml.Name{Space: RDFNamespace, Local: "nodeID"}
	attrRDFParseType = xml.Name{Space: RDFNamespace, Local: "parseType"}
	attrRDFResource  = xml.Name{Space: RDFNamespace, Local: "resource"}
	attrXMLLang      = xml.Name{Space: xmlNamespace, Local: "lang"}
)
