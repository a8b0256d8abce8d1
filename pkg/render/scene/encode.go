package scene

import (
	"bufio"
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
)

// EncodeSVG writes e and its subtree as indented SVG markup.
func EncodeSVG(w io.Writer, e *Element) error {
	bw := bufio.NewWriter(w)
	writeElement(bw, e, 0)
	return bw.Flush()
}

// MarshalSVG returns the SVG markup of e.
func MarshalSVG(e *Element) []byte {
	var buf bytes.Buffer
	_ = EncodeSVG(&buf, e)
	return buf.Bytes()
}

func writeElement(w *bufio.Writer, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.Attrs {
		writeAttr(w, a.Name, a.Value)
	}
	if len(e.Classes) > 0 {
		writeAttr(w, "class", strings.Join(e.Classes, " "))
	}

	switch {
	case len(e.Children) == 0 && e.Text == "":
		w.WriteString("/>\n")
	case len(e.Children) == 0:
		w.WriteByte('>')
		writeText(w, e.Tag, e.Text)
		w.WriteString("</" + e.Tag + ">\n")
	default:
		w.WriteString(">\n")
		if e.Text != "" {
			w.WriteString(indent + "  ")
			writeText(w, e.Tag, e.Text)
			w.WriteByte('\n')
		}
		for _, c := range e.Children {
			writeElement(w, c, depth+1)
		}
		w.WriteString(indent + "</" + e.Tag + ">\n")
	}
}

func writeAttr(w *bufio.Writer, name, value string) {
	w.WriteByte(' ')
	w.WriteString(name)
	w.WriteString(`="`)
	_ = xml.EscapeText(w, []byte(value))
	w.WriteByte('"')
}

// writeText escapes character data. <style> content goes out raw inside
// CDATA so selectors like "a > b" survive.
func writeText(w *bufio.Writer, tag, s string) {
	if tag == "style" && !strings.Contains(s, "]]>") {
		w.WriteString("<![CDATA[" + s + "]]>")
		return
	}
	_ = xml.EscapeText(w, []byte(s))
}

// jsonElement is the wire form of an Element.
type jsonElement struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Order    []string          `json:"order,omitempty"`
	Classes  []string          `json:"classes,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []jsonElement     `json:"children,omitempty"`
}

func toJSON(e *Element) jsonElement {
	out := jsonElement{Tag: e.Tag, Classes: e.Classes, Text: e.Text}
	if len(e.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(e.Attrs))
		out.Order = make([]string, 0, len(e.Attrs))
		for _, a := range e.Attrs {
			out.Attrs[a.Name] = a.Value
			out.Order = append(out.Order, a.Name)
		}
	}
	for _, c := range e.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func fromJSON(j jsonElement) *Element {
	e := &Element{Tag: j.Tag, Classes: j.Classes, Text: j.Text}
	for _, name := range j.Order {
		e.Attrs = append(e.Attrs, Attr{Name: name, Value: j.Attrs[name]})
	}
	for _, c := range j.Children {
		child := fromJSON(c)
		child.parent = e
		e.Children = append(e.Children, child)
	}
	return e
}

// EncodeJSON writes e and its subtree as pretty-printed JSON. Attribute
// order is kept in a separate "order" list.
func EncodeJSON(w io.Writer, e *Element) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(e))
}

// DecodeJSON reads a tree written by [EncodeJSON].
func DecodeJSON(r io.Reader) (*Element, error) {
	var j jsonElement
	if err := json.NewDecoder(r).Decode(&j); err != nil {
		return nil, err
	}
	return fromJSON(j), nil
}
