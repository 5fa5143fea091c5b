package richtext

import "fmt"

//
// Resolver registry
//

// NodeResolver maps a container or leaf node to a rendered value. It
// receives the already-rendered child sequence (nil when the node has no
// content or every child pruned away) and the node's attrs. Returning nil
// drops the node from the output.
type NodeResolver func(children []any, attrs map[string]any) any

// MarkResolver wraps already-rendered text content in an inline decoration.
// The content argument is the accumulated inner value: the raw string for
// the innermost mark, the previous mark's output for the ones outside it.
type MarkResolver func(content any, attrs map[string]any) any

// BlokResolver renders one embedded component instance from its props
// (the body record minus the component name). Returning nil drops it.
type BlokResolver func(props map[string]any) any

// buildNodeResolvers layers overrides on top of the built-in node table.
// Override entries replace built-ins wholesale; unknown tags are added.
// The built-in table is never mutated.
func buildNodeResolvers(overrides map[string]NodeResolver) map[string]NodeResolver {
	out := make(map[string]NodeResolver, len(builtinNodeResolvers)+len(overrides))
	for tag, r := range builtinNodeResolvers {
		out[tag] = r
	}
	for tag, r := range overrides {
		out[tag] = r
	}
	return out
}

// buildMarkResolvers is the mark-table analogue of buildNodeResolvers.
func buildMarkResolvers(overrides map[string]MarkResolver) map[string]MarkResolver {
	out := make(map[string]MarkResolver, len(builtinMarkResolvers)+len(overrides))
	for tag, r := range builtinMarkResolvers {
		out[tag] = r
	}
	for tag, r := range overrides {
		out[tag] = r
	}
	return out
}

var builtinNodeResolvers = map[string]NodeResolver{
	NodeHeading:        resolveHeading,
	NodeParagraph:      containerResolver("p"),
	NodeBlockquote:     containerResolver("blockquote"),
	NodeOrderedList:    containerResolver("ol"),
	NodeBulletList:     containerResolver("ul"),
	NodeListItem:       containerResolver("li"),
	NodeCodeBlock:      resolveCodeBlock,
	NodeHorizontalRule: voidResolver("hr"),
	NodeHardBreak:      voidResolver("br"),
	NodeImage:          resolveImage,
	NodeEmoji:          resolveEmoji,
}

var builtinMarkResolvers = map[string]MarkResolver{
	MarkBold:        inlineResolver("b"),
	MarkItalic:      inlineResolver("i"),
	MarkStrike:      inlineResolver("s"),
	MarkUnderline:   inlineResolver("u"),
	MarkCode:        inlineResolver("code"),
	MarkSubscript:   inlineResolver("sub"),
	MarkSuperscript: inlineResolver("sup"),
	MarkStyled:      resolveStyled,
	MarkLink:        resolveLink,
	MarkHighlight:   styleResolver("background-color"),
	MarkTextStyle:   styleResolver("color"),
	MarkAnchor:      resolveAnchor,
}

//
// Built-in node resolvers
//

// containerResolver wraps children in a simple container element. An empty
// child sequence prunes the whole container rather than emitting <tag></tag>.
func containerResolver(tag string) NodeResolver {
	return func(children []any, _ map[string]any) any {
		if children == nil {
			return nil
		}
		return NewElement(tag, nil, children...)
	}
}

// voidResolver ignores children and attrs and emits a fixed void element.
func voidResolver(tag string) NodeResolver {
	return func([]any, map[string]any) any {
		return NewElement(tag, nil)
	}
}

// The heading level is not validated; a missing or out-of-range level
// produces whatever tag fmt prints.
func resolveHeading(children []any, attrs map[string]any) any {
	return NewElement(fmt.Sprintf("h%v", attrs["level"]), nil, children...)
}

func resolveCodeBlock(children []any, attrs map[string]any) any {
	var codeAttrs map[string]any
	if class := attrs["class"]; class != nil {
		codeAttrs = map[string]any{"class": class}
	}
	return NewElement("pre", nil, NewElement("code", codeAttrs, children...))
}

// resolveImage passes attrs through verbatim (src, alt, title, and any
// extra keys) and ignores children.
func resolveImage(_ []any, attrs map[string]any) any {
	return NewElement("img", attrs)
}

func resolveEmoji(_ []any, attrs map[string]any) any {
	if attrs == nil {
		return nil
	}
	span := NewElement("span", map[string]any{
		"data-type": "emoji",
		"data-name": attrs["name"],
	})
	if glyph, ok := attrs["emoji"].(string); ok && glyph != "" {
		span.Children = append(span.Children, glyph)
		return span
	}
	if src, ok := attrs["fallbackImage"].(string); ok && src != "" {
		span.Children = append(span.Children, NewElement("img", map[string]any{
			"src":       src,
			"alt":       attrs["name"],
			"draggable": "false",
			"loading":   "lazy",
			"align":     "absmiddle",
		}))
	}
	return span
}

//
// Built-in mark resolvers
//

// inlineResolver wraps content in a simple inline element with no
// attribute use.
func inlineResolver(tag string) MarkResolver {
	return func(content any, _ map[string]any) any {
		return NewElement(tag, nil, content)
	}
}

// styleResolver wraps content in a span carrying a single CSS property
// taken from attrs.color.
func styleResolver(property string) MarkResolver {
	return func(content any, attrs map[string]any) any {
		color := attrs["color"]
		if color == nil {
			return NewElement("span", nil, content)
		}
		style := fmt.Sprintf("%s:%v;", property, color)
		return NewElement("span", map[string]any{"style": style}, content)
	}
}

func resolveStyled(content any, attrs map[string]any) any {
	out := map[string]any{}
	if class := attrs["class"]; class != nil {
		out["class"] = class
	}
	return NewElement("span", out, content)
}

func resolveAnchor(content any, attrs map[string]any) any {
	if id := attrs["id"]; id != nil {
		return NewElement("span", map[string]any{"id": id}, content)
	}
	return NewElement("span", nil, content)
}

// resolveLink builds a hyperlink from the mark attrs. The href is rewritten
// with a mailto: scheme for email links and gains a #fragment suffix when
// an anchor attr is present; target and any other attrs pass through.
func resolveLink(content any, attrs map[string]any) any {
	if attrs == nil {
		return NewElement("a", nil, content)
	}

	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}

	href, hrefIsString := attrs["href"].(string)
	rewrote := false

	if linktype, ok := attrs["linktype"].(string); ok {
		delete(out, "linktype")
		if linktype == "email" {
			href = "mailto:" + href
			rewrote = true
		}
	}
	if anchor, ok := attrs["anchor"].(string); ok && anchor != "" {
		delete(out, "anchor")
		href += "#" + anchor
		rewrote = true
	}
	if hrefIsString || rewrote {
		out["href"] = href
	}

	return NewElement("a", out, content)
}
