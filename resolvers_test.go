package richtext

import (
	"strings"
	"testing"
)

// renderOne renders a single-node document and returns the HTML.
func renderOne(t *testing.T, nodeJSON string) string {
	t.Helper()
	doc := mustDecode(t, `{"type":"doc","content":[`+nodeJSON+`]}`)
	return RenderHTML(doc, nil)
}

// ========================================
// Node Resolvers
// ========================================

func TestBuiltinNodeResolvers(t *testing.T) {
	tests := []struct {
		name string
		node string
		want string
	}{
		{
			name: "heading level 3",
			node: `{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"t"}]}`,
			want: "<h3>t</h3>",
		},
		{
			name: "paragraph",
			node: `{"type":"paragraph","content":[{"type":"text","text":"x"}]}`,
			want: "<p>x</p>",
		},
		{
			name: "blockquote",
			node: `{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"q"}]}]}`,
			want: "<blockquote><p>q</p></blockquote>",
		},
		{
			name: "ordered list",
			node: `{"type":"ordered_list","content":[{"type":"list_item","content":[{"type":"paragraph","content":[{"type":"text","text":"1"}]}]}]}`,
			want: "<ol><li><p>1</p></li></ol>",
		},
		{
			name: "bullet list",
			node: `{"type":"bullet_list","content":[{"type":"list_item","content":[{"type":"paragraph","content":[{"type":"text","text":"a"}]}]}]}`,
			want: "<ul><li><p>a</p></li></ul>",
		},
		{
			name: "code block with class",
			node: `{"type":"code_block","attrs":{"class":"language-js"},"content":[{"type":"text","text":"1;"}]}`,
			want: `<pre><code class="language-js">1;</code></pre>`,
		},
		{
			name: "code block without attrs",
			node: `{"type":"code_block","content":[{"type":"text","text":"1;"}]}`,
			want: "<pre><code>1;</code></pre>",
		},
		{
			name: "horizontal rule",
			node: `{"type":"horizontal_rule"}`,
			want: "<hr />",
		},
		{
			name: "hard break",
			node: `{"type":"hard_break"}`,
			want: "<br />",
		},
		{
			name: "image passes attrs through",
			node: `{"type":"image","attrs":{"src":"/a.png","alt":"A","title":"T","data-extra":"kept"}}`,
			want: `<img alt="A" data-extra="kept" src="/a.png" title="T" />`,
		},
		{
			name: "emoji with glyph",
			node: `{"type":"emoji","attrs":{"name":"smile","emoji":"🙂"}}`,
			want: `<span data-name="smile" data-type="emoji">🙂</span>`,
		},
		{
			name: "emoji with fallback image",
			node: `{"type":"emoji","attrs":{"name":"smile","fallbackImage":"/e.png"}}`,
			want: `<span data-name="smile" data-type="emoji"><img align="absmiddle" alt="smile" draggable="false" loading="lazy" src="/e.png" /></span>`,
		},
		{
			name: "emoji without attrs prunes",
			node: `{"type":"emoji"}`,
			want: "",
		},
		{
			name: "empty bullet list prunes",
			node: `{"type":"bullet_list","content":[]}`,
			want: "",
		},
		{
			name: "empty blockquote prunes",
			node: `{"type":"blockquote"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderOne(t, tt.node); got != tt.want {
				t.Errorf("renderOne() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHeadingLevelNotValidated(t *testing.T) {
	// Levels are passed straight through, valid range or not.
	doc := mustDecode(t, `{"type":"doc","content":[{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"t"}]}]}`)
	seq := asSequence(t, Render(doc, nil))
	if tag := asElement(t, seq[0]).Tag; tag != "h9" {
		t.Errorf("Tag = %s, want h9", tag)
	}

	doc = mustDecode(t, `{"type":"doc","content":[{"type":"heading","content":[{"type":"text","text":"t"}]}]}`)
	seq = asSequence(t, Render(doc, nil))
	if tag := asElement(t, seq[0]).Tag; !strings.HasPrefix(tag, "h") {
		t.Errorf("Tag = %s, want h-prefixed", tag)
	}
}

// ========================================
// Mark Resolvers
// ========================================

func markedText(markJSON string) string {
	return `{"type":"paragraph","content":[{"type":"text","text":"x","marks":[` + markJSON + `]}]}`
}

func TestBuiltinMarkResolvers(t *testing.T) {
	tests := []struct {
		name string
		mark string
		want string
	}{
		{"bold", `{"type":"bold"}`, "<p><b>x</b></p>"},
		{"italic", `{"type":"italic"}`, "<p><i>x</i></p>"},
		{"strike", `{"type":"strike"}`, "<p><s>x</s></p>"},
		{"underline", `{"type":"underline"}`, "<p><u>x</u></p>"},
		{"code", `{"type":"code"}`, "<p><code>x</code></p>"},
		{"subscript", `{"type":"subscript"}`, "<p><sub>x</sub></p>"},
		{"superscript", `{"type":"superscript"}`, "<p><sup>x</sup></p>"},
		{
			"styled with class",
			`{"type":"styled","attrs":{"class":"fancy"}}`,
			`<p><span class="fancy">x</span></p>`,
		},
		{
			"styled without attrs",
			`{"type":"styled"}`,
			"<p><span>x</span></p>",
		},
		{
			"link",
			`{"type":"link","attrs":{"href":"/a","target":"_self"}}`,
			`<p><a href="/a" target="_self">x</a></p>`,
		},
		{
			"link without attrs",
			`{"type":"link"}`,
			"<p><a>x</a></p>",
		},
		{
			"link with anchor",
			`{"type":"link","attrs":{"href":"/a","anchor":"sec"}}`,
			`<p><a href="/a#sec">x</a></p>`,
		},
		{
			"email link",
			`{"type":"link","attrs":{"linktype":"email","href":"a@b.com"}}`,
			`<p><a href="mailto:a@b.com">x</a></p>`,
		},
		{
			"url linktype removed",
			`{"type":"link","attrs":{"linktype":"url","href":"/a"}}`,
			`<p><a href="/a">x</a></p>`,
		},
		{
			"highlight",
			`{"type":"highlight","attrs":{"color":"#ff0"}}`,
			`<p><span style="background-color:#ff0;">x</span></p>`,
		},
		{
			"highlight without color",
			`{"type":"highlight"}`,
			"<p><span>x</span></p>",
		},
		{
			"text style",
			`{"type":"textStyle","attrs":{"color":"red"}}`,
			`<p><span style="color:red;">x</span></p>`,
		},
		{
			"anchor",
			`{"type":"anchor","attrs":{"id":"here"}}`,
			`<p><span id="here">x</span></p>`,
		},
		{
			"anchor without id",
			`{"type":"anchor"}`,
			"<p><span>x</span></p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderOne(t, markedText(tt.mark)); got != tt.want {
				t.Errorf("renderOne() = %s, want %s", got, tt.want)
			}
		})
	}
}

// ========================================
// Registry Merge
// ========================================

func TestBuildNodeResolversMerge(t *testing.T) {
	custom := func([]any, map[string]any) any { return NewElement("x", nil) }
	merged := buildNodeResolvers(map[string]NodeResolver{
		NodeParagraph: custom,
		"brandNew":    custom,
	})

	if len(merged) != len(builtinNodeResolvers)+1 {
		t.Errorf("merged size = %d, want %d", len(merged), len(builtinNodeResolvers)+1)
	}
	if _, ok := merged["brandNew"]; !ok {
		t.Error("unknown override tag not added")
	}
	if _, ok := merged[NodeHeading]; !ok {
		t.Error("built-in tag lost during merge")
	}

	// The override must replace, and the built-in table must survive.
	if got := merged[NodeParagraph]([]any{"c"}, nil).(*Element).Tag; got != "x" {
		t.Errorf("override tag = %s, want x", got)
	}
	if got := builtinNodeResolvers[NodeParagraph]([]any{"c"}, nil).(*Element).Tag; got != "p" {
		t.Errorf("builtin tag = %s, want p (table mutated)", got)
	}
}

func TestBuildMarkResolversMerge(t *testing.T) {
	custom := func(content any, _ map[string]any) any { return NewElement("mark", nil, content) }
	merged := buildMarkResolvers(map[string]MarkResolver{MarkBold: custom})

	if got := merged[MarkBold]("x", nil).(*Element).Tag; got != "mark" {
		t.Errorf("override tag = %s, want mark", got)
	}
	if got := builtinMarkResolvers[MarkBold]("x", nil).(*Element).Tag; got != "b" {
		t.Errorf("builtin tag = %s, want b (table mutated)", got)
	}
}
