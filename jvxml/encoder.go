// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jvxml writes XML token streams in the layout used by XMP packets.
//
// The encoder is derived from the one in encoding/xml, with two changes.
// Names are written literally, with Name.Space used as the namespace
// prefix.  The attributes of a start tag can be placed on separate lines,
// see [Encoder.AttrIndent].
package jvxml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Token is one of the token types from encoding/xml.
type Token = xml.Token

// An Encoder writes XML data to an output stream.
type Encoder struct {
	p printer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{printer{w: bufio.NewWriter(w)}}
}

// Indent sets the encoder to generate XML in which each element
// begins on a new indented line that starts with prefix and is followed by
// one or more copies of indent according to the nesting depth.
func (enc *Encoder) Indent(prefix, indent string) {
	enc.p.prefix = prefix
	enc.p.indent = indent
}

// AttrIndent places the second and later attributes of each start tag on
// lines of their own.  These lines are indented like the element, followed
// by attrIndent.  AttrIndent has no effect unless indentation is enabled
// using [Encoder.Indent].
func (enc *Encoder) AttrIndent(attrIndent string) {
	enc.p.attrIndent = attrIndent
}

var (
	endComment  = []byte("-->")
	endProcInst = []byte("?>")
)

// EncodeToken writes the given XML token to the stream.
// It returns an error if start and end elements are not properly matched.
//
// EncodeToken does not flush the output.  Callers need to call
// [Encoder.Flush] or [Encoder.Close] when finished.
//
// A [xml.ProcInst] with Target set to "xml" is only allowed as the first
// token in the stream.
func (enc *Encoder) EncodeToken(t Token) error {
	p := &enc.p
	switch t := t.(type) {
	case xml.StartElement:
		if err := p.writeStart(t.Name, t.Attr); err != nil {
			return err
		}
	case xml.EndElement:
		if err := p.writeEnd(t.Name); err != nil {
			return err
		}
	case xml.CharData:
		escapeText(p, t, false)
	case xml.Comment:
		if bytes.Contains(t, endComment) {
			return fmt.Errorf("xml: EncodeToken of Comment containing --> marker")
		}
		p.writeIndent(0)
		p.WriteString("<!--")
		p.Write(t)
		p.WriteString("-->")
	case xml.ProcInst:
		if t.Target == "xml" && (p.w.Buffered() != 0 || p.written) {
			return fmt.Errorf("xml: EncodeToken of ProcInst xml target only valid for xml declaration, first token encoded")
		}
		if !isNameString(t.Target) {
			return fmt.Errorf("xml: EncodeToken of ProcInst with invalid Target")
		}
		if bytes.Contains(t.Inst, endProcInst) {
			return fmt.Errorf("xml: EncodeToken of ProcInst containing ?> marker")
		}
		p.writeIndent(0)
		p.WriteString("<?")
		p.WriteString(t.Target)
		if len(t.Inst) > 0 {
			p.WriteByte(' ')
			p.Write(t.Inst)
		}
		p.WriteString("?>")
	case xml.Directive:
		if !isValidDirective(t) {
			return fmt.Errorf("xml: EncodeToken of Directive containing wrong < or > markers")
		}
		p.WriteString("<!")
		p.Write(t)
		p.WriteString(">")
	default:
		return fmt.Errorf("xml: EncodeToken of invalid token type %T", t)
	}
	return p.cachedWriteError()
}

// isValidDirective reports whether dir is a valid directive text,
// meaning angle brackets are matched, ignoring comments and strings.
func isValidDirective(dir xml.Directive) bool {
	var (
		depth     int
		inquote   uint8
		incomment bool
	)
	begComment := []byte("<!--")
	for i, c := range dir {
		switch {
		case incomment:
			if c == '>' {
				if n := 1 + i - len(endComment); n >= 0 && bytes.Equal(dir[n:i+1], endComment) {
					incomment = false
				}
			}
		case inquote != 0:
			if c == inquote {
				inquote = 0
			}
		case c == '\'' || c == '"':
			inquote = c
		case c == '<':
			if i+len(begComment) < len(dir) && bytes.Equal(dir[i:i+len(begComment)], begComment) {
				incomment = true
			} else {
				depth++
			}
		case c == '>':
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0 && inquote == 0 && !incomment
}

// Flush flushes any buffered XML to the underlying writer.
func (enc *Encoder) Flush() error {
	if err := enc.p.w.Flush(); err != nil {
		return err
	}
	enc.p.written = true
	return nil
}

// Close the Encoder, indicating that no more data will be written. It flushes
// any buffered XML to the underlying writer and returns an error if the
// written XML is invalid (e.g. by containing unclosed elements).
func (enc *Encoder) Close() error {
	return enc.p.Close()
}

type printer struct {
	w          *bufio.Writer
	indent     string
	prefix     string
	attrIndent string
	depth      int
	indentedIn bool
	putNewline bool
	written    bool
	tags       []xml.Name
	closed     bool
	err        error
}

// qualified returns the literal form of name.
func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func checkName(name xml.Name) error {
	if !isNameString(qualified(name)) {
		return fmt.Errorf("xml: invalid name %q", qualified(name))
	}
	return nil
}

// writeStart writes the given start element.
func (p *printer) writeStart(name xml.Name, attr []xml.Attr) error {
	if name.Local == "" {
		return fmt.Errorf("xml: start tag with no name")
	}
	if err := checkName(name); err != nil {
		return err
	}
	for _, a := range attr {
		if a.Name.Local == "" {
			continue
		}
		if err := checkName(a.Name); err != nil {
			return err
		}
	}

	p.tags = append(p.tags, name)

	depth := p.depth
	p.writeIndent(1)
	p.WriteByte('<')
	p.WriteString(qualified(name))

	first := true
	for _, a := range attr {
		if a.Name.Local == "" {
			continue
		}
		if !first && p.attrIndent != "" && p.indenting() {
			p.WriteByte('\n')
			p.WriteString(p.prefix)
			for i := 0; i < depth; i++ {
				p.WriteString(p.indent)
			}
			p.WriteString(p.attrIndent)
		} else {
			p.WriteByte(' ')
		}
		first = false
		p.WriteString(qualified(a.Name))
		p.WriteString(`="`)
		p.EscapeString(a.Value)
		p.WriteByte('"')
	}

	p.WriteByte('>')
	return nil
}

func (p *printer) writeEnd(name xml.Name) error {
	if name.Local == "" {
		return fmt.Errorf("xml: end tag with no name")
	}
	if len(p.tags) == 0 {
		return fmt.Errorf("xml: end tag </%s> without start tag", qualified(name))
	}
	if top := p.tags[len(p.tags)-1]; top != name {
		return fmt.Errorf("xml: end tag </%s> does not match start tag <%s>", qualified(name), qualified(top))
	}
	p.tags = p.tags[:len(p.tags)-1]

	p.writeIndent(-1)
	p.WriteByte('<')
	p.WriteByte('/')
	p.WriteString(qualified(name))
	p.WriteByte('>')
	return nil
}

var errClosed = errors.New("use of closed Encoder")

// Write implements io.Writer
func (p *printer) Write(b []byte) (n int, err error) {
	if p.closed && p.err == nil {
		p.err = errClosed
	}
	if p.err == nil {
		n, p.err = p.w.Write(b)
	}
	return n, p.err
}

// WriteString implements io.StringWriter
func (p *printer) WriteString(s string) (n int, err error) {
	if p.closed && p.err == nil {
		p.err = errClosed
	}
	if p.err == nil {
		n, p.err = p.w.WriteString(s)
	}
	return n, p.err
}

// WriteByte implements io.ByteWriter
func (p *printer) WriteByte(c byte) error {
	if p.closed && p.err == nil {
		p.err = errClosed
	}
	if p.err == nil {
		p.err = p.w.WriteByte(c)
	}
	return p.err
}

// Close the Encoder, indicating that no more data will be written. It flushes
// any buffered XML to the underlying writer and returns an error if the
// written XML is invalid (e.g. by containing unclosed elements).
func (p *printer) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.w.Flush(); err != nil {
		return err
	}
	if len(p.tags) > 0 {
		return fmt.Errorf("unclosed tag <%s>", qualified(p.tags[len(p.tags)-1]))
	}
	return nil
}

// return the bufio Writer's cached write error
func (p *printer) cachedWriteError() error {
	_, err := p.Write(nil)
	return err
}

func (p *printer) indenting() bool {
	return len(p.prefix) > 0 || len(p.indent) > 0
}

func (p *printer) writeIndent(depthDelta int) {
	if !p.indenting() {
		return
	}
	if depthDelta < 0 {
		p.depth--
		if p.indentedIn {
			p.indentedIn = false
			return
		}
		p.indentedIn = false
	}
	if p.putNewline {
		p.WriteByte('\n')
	} else {
		p.putNewline = true
	}
	if len(p.prefix) > 0 {
		p.WriteString(p.prefix)
	}
	if len(p.indent) > 0 {
		for i := 0; i < p.depth; i++ {
			p.WriteString(p.indent)
		}
	}
	if depthDelta > 0 {
		p.depth++
		p.indentedIn = true
	}
}
