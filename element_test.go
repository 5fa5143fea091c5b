package richtext

import (
	"bytes"
	"testing"
)

func TestNewElementDropsNilChildren(t *testing.T) {
	e := NewElement("p", nil, "a", nil, "b", nil)
	if len(e.Children) != 2 {
		t.Errorf("len(Children) = %d, want 2", len(e.Children))
	}
}

func TestElementHTMLEscaping(t *testing.T) {
	e := NewElement("p", map[string]any{"title": `say "hi" & <bye>`}, "a < b & c")
	want := `<p title="say &#34;hi&#34; &amp; &lt;bye&gt;">a &lt; b &amp; c</p>`
	if got := e.HTML(); got != want {
		t.Errorf("HTML() = %s, want %s", got, want)
	}
}

func TestElementAttrOrderDeterministic(t *testing.T) {
	e := NewElement("img", map[string]any{"src": "/a", "alt": "x", "title": "t"})
	want := `<img alt="x" src="/a" title="t" />`
	for i := 0; i < 10; i++ {
		if got := e.HTML(); got != want {
			t.Fatalf("HTML() = %s, want %s", got, want)
		}
	}
}

func TestElementNilAttrValueSkipped(t *testing.T) {
	e := NewElement("img", map[string]any{"src": "/a", "title": nil})
	if got := e.HTML(); got != `<img src="/a" />` {
		t.Errorf("HTML() = %s", got)
	}
}

func TestElementVoidTags(t *testing.T) {
	if got := NewElement("hr", nil).HTML(); got != "<hr />" {
		t.Errorf("hr = %s", got)
	}
	if got := NewElement("br", nil).HTML(); got != "<br />" {
		t.Errorf("br = %s", got)
	}
}

func TestElementNestedSequencesFlattened(t *testing.T) {
	e := NewElement("div", nil, []any{"a", []any{NewElement("b", nil, "c")}, "d"})
	if got := e.HTML(); got != "<div>a<b>c</b>d</div>" {
		t.Errorf("HTML() = %s", got)
	}
}

func TestElementNumericChildren(t *testing.T) {
	e := NewElement("span", nil, 42)
	if got := e.HTML(); got != "<span>42</span>" {
		t.Errorf("HTML() = %s", got)
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	e := NewElement("p", nil, "hi")
	if err := e.WriteHTML(&buf); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	if buf.String() != "<p>hi</p>" {
		t.Errorf("WriteHTML() wrote %s", buf.String())
	}
}
