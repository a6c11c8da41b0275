package scheme

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Wire element and attribute names.
const (
	schemeElement   = "scheme"
	optionElement   = "option"
	valueElement    = "value"
	colorsElement   = "colors"
	attrsElement    = "attributes"
	metaInfoElement = "metaInfo"
	propertyElement = "property"
	fontElement     = "font"
	consoleFontElem = "console-font"

	nameAttr         = "name"
	valueAttr        = "value"
	versionAttr      = "version"
	parentSchemeAttr = "parent_scheme"
	defaultSchemeAtt = "default_scheme"
	baseAttrsAttr    = "baseAttributes"
)

// Element is a generic node of the hierarchical scheme document. The scheme
// format predates any fixed struct shape (unknown tags must survive being
// ignored), so reading walks a tree rather than unmarshaling into a rigid
// struct.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*Element `xml:",any"`
}

// NewElement returns a named element with no attributes or children.
func NewElement(name string) *Element {
	return &Element{XMLName: xml.Name{Local: name}}
}

// Name returns the element's local tag name.
func (e *Element) Name() string { return e.XMLName.Local }

// Attr returns the named attribute's value, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// AttrDefault returns the named attribute's value, or def when absent.
func (e *Element) AttrDefault(name, def string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return def
}

// SetAttr sets or replaces an attribute and returns the element.
func (e *Element) SetAttr(name, value string) *Element {
	for i, a := range e.Attrs {
		if a.Name.Local == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	return e
}

// AddChild appends a child element and returns the parent.
func (e *Element) AddChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	return e
}

// AddOption appends an <option name="..." value="..."/> child.
func (e *Element) AddOption(name, value string) *Element {
	opt := NewElement(optionElement).SetAttr(nameAttr, name).SetAttr(valueAttr, value)
	return e.AddChild(opt)
}

// ChildrenNamed returns all direct children with the given tag name.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name() == name {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child with the given tag name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// ParseDocument reads an element tree from serialized XML.
func ParseDocument(data []byte) (*Element, error) {
	var root Element
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("scheme: parse document: %w", err)
	}
	normalizeText(&root)
	return &root, nil
}

// Serialize renders the element tree as indented XML.
func (e *Element) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("scheme: serialize document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// normalizeText strips the indentation whitespace that chardata unmarshaling
// collects around child elements. Elements with children never carry
// meaningful text in this format; leaf text (meta-info properties) is
// trimmed of surrounding whitespace.
func normalizeText(e *Element) {
	if len(e.Children) > 0 {
		e.Text = ""
	} else {
		e.Text = strings.TrimSpace(e.Text)
	}
	for _, c := range e.Children {
		normalizeText(c)
	}
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(v), err
}

func formatFloat32(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
