package richtext

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

//
// Renderable elements
//

// Element is the renderable output unit produced by the built-in resolvers.
// The renderer treats resolver results opaquely except for key stamping, so
// caller-supplied resolvers are free to return any value; only *Element
// results participate in keying and HTML serialization.
type Element struct {
	Tag   string
	Attrs map[string]any

	// Children may hold *Element, string, numeric values, or nested []any
	// sequences, which are flattened during serialization.
	Children []any

	// Key is the stable ordering key stamped by the renderer. Zero means
	// the element has not been keyed; stamped keys start at 1 and strictly
	// increase over one render call.
	Key int
}

// Tags serialized without content or a closing tag.
var voidTags = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// NewElement creates an element with the given tag, attributes, and
// children. Nil children are dropped.
func NewElement(tag string, attrs map[string]any, children ...any) *Element {
	e := &Element{Tag: tag, Attrs: attrs}
	for _, c := range children {
		if c == nil {
			continue
		}
		e.Children = append(e.Children, c)
	}
	return e
}

// HTML serializes the element subtree to HTML. Attributes are emitted in
// sorted order so output is deterministic; text content and attribute
// values are escaped. Nil-valued attributes are skipped.
func (e *Element) HTML() string {
	var sb strings.Builder
	e.appendHTML(&sb)
	return sb.String()
}

// WriteHTML serializes the element subtree to w.
func (e *Element) WriteHTML(w io.Writer) error {
	_, err := io.WriteString(w, e.HTML())
	return err
}

func (e *Element) appendHTML(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.Tag)

	if len(e.Attrs) > 0 {
		names := make([]string, 0, len(e.Attrs))
		for name := range e.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			v := e.Attrs[name]
			if v == nil {
				continue
			}
			sb.WriteByte(' ')
			sb.WriteString(name)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(attrText(v)))
			sb.WriteByte('"')
		}
	}

	if voidTags[e.Tag] {
		sb.WriteString(" />")
		return
	}

	sb.WriteByte('>')
	for _, c := range e.Children {
		appendValueHTML(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(e.Tag)
	sb.WriteByte('>')
}

// appendValueHTML serializes an arbitrary rendered value: elements recurse,
// strings are escaped, sequences are flattened, nil vanishes.
func appendValueHTML(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
	case *Element:
		x.appendHTML(sb)
	case string:
		sb.WriteString(html.EscapeString(x))
	case []any:
		for _, item := range x {
			appendValueHTML(sb, item)
		}
	default:
		sb.WriteString(html.EscapeString(fmt.Sprintf("%v", x)))
	}
}

func attrText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
