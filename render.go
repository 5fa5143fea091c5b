package richtext

import (
	"bytes"
	"strings"
)

//
// Tree renderer
//

// Options configures a single render call. All fields are optional; the
// zero value (or a nil *Options) means built-in resolvers only, no blok
// resolvers, and identity text handling.
type Options struct {
	// NodeResolvers overrides or extends the built-in node table per tag.
	// An override fully replaces the built-in entry for that tag.
	NodeResolvers map[string]NodeResolver

	// MarkResolvers overrides or extends the built-in mark table per tag.
	MarkResolvers map[string]MarkResolver

	// BlokResolvers maps embedded-component names to renderers.
	BlokResolvers map[string]BlokResolver

	// DefaultBlokResolver handles component names missing from
	// BlokResolvers. Nil means unmapped components render to nothing.
	DefaultBlokResolver func(component string, props map[string]any) any

	// TextResolver transforms raw text payloads before mark wrapping.
	// Nil means the text is used verbatim.
	TextResolver func(text string) string

	// DefaultStringResolver transforms bare-string input documents.
	// Nil means the string is returned as-is.
	DefaultStringResolver func(s string) string
}

// Render transforms a document tree into a tree of renderable values.
//
// doc may be a *Node or Node whose Type is "doc" (the content sequence is
// rendered), or a bare string (passed through DefaultStringResolver). Any
// other input renders to nil; malformed or unknown content degrades to
// nil or pass-through rather than failing.
//
// The result is nil, a string, or a []any sequence of rendered values
// (typically *Element) in document order. Every *Element produced during
// one call is stamped with a distinct, strictly increasing Key.
//
// Render never mutates doc. Concurrent calls are independent: each builds
// its own effective resolver tables and key counter.
func Render(doc any, opts *Options) any {
	if opts == nil {
		opts = &Options{}
	}
	switch d := doc.(type) {
	case *Node:
		if d == nil || d.Type != NodeDoc {
			return nil
		}
		return newRenderer(opts).renderDoc(d)
	case Node:
		if d.Type != NodeDoc {
			return nil
		}
		return newRenderer(opts).renderDoc(&d)
	case string:
		if opts.DefaultStringResolver != nil {
			return opts.DefaultStringResolver(d)
		}
		return d
	}
	return nil
}

// RenderJSON decodes a JSON document and renders it. Decode errors are
// returned as-is; rendering itself never fails.
func RenderJSON(data []byte, opts *Options) (any, error) {
	n, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return Render(n, opts), nil
}

// RenderHTML renders doc and serializes the result to an HTML string.
// A nil render result yields the empty string.
func RenderHTML(doc any, opts *Options) string {
	var sb strings.Builder
	appendValueHTML(&sb, Render(doc, opts))
	return sb.String()
}

// renderer holds the effective resolver tables and the key counter for one
// render call. Nothing here survives across calls.
type renderer struct {
	nodes       map[string]NodeResolver
	marks       map[string]MarkResolver
	bloks       map[string]BlokResolver
	defaultBlok func(string, map[string]any) any
	text        func(string) string

	key int
}

func newRenderer(opts *Options) *renderer {
	return &renderer{
		nodes:       buildNodeResolvers(opts.NodeResolvers),
		marks:       buildMarkResolvers(opts.MarkResolvers),
		bloks:       opts.BlokResolvers,
		defaultBlok: opts.DefaultBlokResolver,
		text:        opts.TextResolver,
	}
}

func (r *renderer) renderDoc(doc *Node) any {
	seq := r.renderNodes(doc.Content)
	if seq == nil {
		return nil
	}
	return seq
}

// renderNodes renders an ordered node sequence, filtering out nodes that
// resolve to nil and splicing embedded-component expansions in place.
// Returns nil when nothing survives, never an empty sequence.
func (r *renderer) renderNodes(nodes []Node) []any {
	if len(nodes) == 0 {
		return nil
	}
	var out []any
	for i := range nodes {
		n := &nodes[i]
		if n.Type == NodeBlok {
			out = append(out, r.renderBlok(n)...)
			continue
		}
		if v := r.renderNode(n); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (r *renderer) renderNode(n *Node) any {
	if n.Type == NodeText {
		return r.renderText(n)
	}
	resolve, ok := r.nodes[n.Type]
	if !ok {
		// Unknown tag: drop the node, keep going.
		return nil
	}
	return r.stamp(resolve(r.renderNodes(n.Content), n.Attrs))
}

// renderText folds the mark sequence right-to-left: the last mark listed
// is applied first (innermost), so the first mark listed ends up as the
// outermost wrapper. Marks without a resolver pass content through.
func (r *renderer) renderText(n *Node) any {
	var text string
	if n.Text != nil {
		text = *n.Text
	}
	if r.text != nil {
		text = r.text(text)
	}

	var cur any = text
	for i := len(n.Marks) - 1; i >= 0; i-- {
		m := &n.Marks[i]
		resolve, ok := r.marks[m.Type]
		if !ok {
			continue
		}
		cur = r.stamp(resolve(cur, m.Attrs))
	}
	return cur
}

// renderBlok expands one embedded-component node into zero or more sibling
// outputs, one per body record, resolved by component name.
func (r *renderer) renderBlok(n *Node) []any {
	body, _ := n.GetAttr("body").([]any)
	var out []any
	for _, item := range body {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		component, _ := rec["component"].(string)
		props := make(map[string]any, len(rec))
		for k, v := range rec {
			if k != "component" {
				props[k] = v
			}
		}

		var v any
		if resolve, ok := r.bloks[component]; ok {
			v = resolve(props)
		} else if r.defaultBlok != nil {
			v = r.defaultBlok(component, props)
		}
		if v != nil {
			out = append(out, r.stamp(v))
		}
	}
	return out
}

// stamp assigns the next ordering key to element results. Keys strictly
// increase across the whole render call, never resetting between sibling
// groups. Already-keyed elements and non-element values pass through.
func (r *renderer) stamp(v any) any {
	if e, ok := v.(*Element); ok && e != nil && e.Key == 0 {
		r.key++
		e.Key = r.key
	}
	return v
}
