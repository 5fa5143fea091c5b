/*
Package richtext renders structured rich text documents into renderable
element trees.

A document is a JSON-shaped tree of typed nodes: block containers
(paragraphs, headings, lists, blockquotes, code blocks), leaf nodes
(images, rules, breaks), text leaves decorated with marks (bold, links,
styling), and embedded components ("bloks") referenced by name. The
renderer walks the tree and maps every node and mark through a resolver
table with sensible built-in defaults, all of which can be replaced per
tag by the caller.

# Quick Start

Decode a document and render it to HTML:

	input := `{"type":"doc","content":[{"type":"paragraph","content":[
		{"type":"text","text":"Hello","marks":[{"type":"bold"}]}]}]}`
	doc, err := richtext.DecodeString(input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(richtext.RenderHTML(doc, nil))
	// <p><b>Hello</b></p>

Build documents programmatically:

	doc := richtext.NewDoc()
	doc.AddNode(richtext.NewNode(richtext.NodeParagraph).
		AddText("Hello ", richtext.NewMark(richtext.MarkBold, nil)).
		AddText("world!"))

# Core Types

The main types are:

  - Node: a tagged tree node with attrs, child content, or text payload
  - Mark: an inline decoration attached to a text node
  - Element: the renderable output unit produced by the built-in resolvers
  - Options: per-call resolver overrides and text hooks

Unknown/custom JSON fields are preserved in Raw maps for full round-trip
fidelity.

# Rendering

Render produces the raw output tree; RenderHTML serializes it:

	out := richtext.Render(doc, nil)           // nil, string, or []any
	html := richtext.RenderHTML(doc, nil)      // HTML string
	out, err := richtext.RenderJSON(data, nil) // decode + render

Rendering is permissive by design. Unknown node tags vanish from the
output, unknown marks pass their content through unwrapped, a
non-document input renders to nil, and attrs are handed to resolvers
unvalidated. Render never returns an error.

Every Element produced during one call is stamped with a distinct,
strictly increasing Key for stable downstream reconciliation. Keys are
call-local: they restart for each Render invocation and carry no meaning
across calls.

# Custom Resolvers

Any node or mark tag can be overridden, and new tags added:

	html := richtext.RenderHTML(doc, &richtext.Options{
		NodeResolvers: map[string]richtext.NodeResolver{
			richtext.NodeHeading: func(children []any, attrs map[string]any) any {
				return richtext.NewElement("h2", nil, children...)
			},
		},
	})

Embedded components resolve by name, with an optional fallback:

	opts := &richtext.Options{
		BlokResolvers: map[string]richtext.BlokResolver{
			"button": func(props map[string]any) any {
				return richtext.NewElement("button", nil, props["label"])
			},
		},
		DefaultBlokResolver: func(name string, props map[string]any) any {
			return richtext.NewElement("div", map[string]any{"data-component": name})
		},
	}

Text payloads can be transformed before mark wrapping via
Options.TextResolver, and bare-string input documents via
Options.DefaultStringResolver.

# Traversal

Walk all nodes:

	err := richtext.Walk(doc, func(n *richtext.Node) error {
		fmt.Println(n.Type)
		return nil
	})

Walk with context information:

	richtext.WalkWithContext(doc, func(n *richtext.Node, ctx richtext.WalkContext) error {
		fmt.Printf("depth %d: %s\n", ctx.Depth, n.Type)
		return nil
	})

Filter and Transform return new trees and never mutate their input:

	headings := richtext.Filter(doc, func(n *richtext.Node) bool {
		return n.Type == richtext.NodeHeading
	})

	demoted := richtext.Transform(doc, func(n *richtext.Node) *richtext.Node {
		if n.Type == richtext.NodeHeading {
			n.SetAttr("level", 3)
		}
		return n
	})

# Error Handling

Only decoding can fail. Errors include path information:

	doc, err := richtext.Decode(reader)
	if err != nil {
		var rErr *richtext.Error
		if errors.As(err, &rErr) {
			// rErr.Path shows where the error occurred,
			// e.g. "content[2].marks[0]"
			fmt.Printf("error at %s: %v\n", rErr.Path, rErr.Err)
		}
	}

# Thread Safety

Documents are safe for concurrent reads without synchronization.
Concurrent writes require external synchronization. Render calls share no
state: each builds its own resolver tables and key counter, so rendering
several documents in parallel is safe.
*/
package richtext
