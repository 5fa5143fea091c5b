package richtext

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

//
// Public API
//

// Known node type tags. The renderer ships built-in resolvers for all of
// these; unknown tags are legal in a document and degrade gracefully.
const (
	NodeDoc            = "doc"
	NodeHeading        = "heading"
	NodeParagraph      = "paragraph"
	NodeBlockquote     = "blockquote"
	NodeOrderedList    = "ordered_list"
	NodeBulletList     = "bullet_list"
	NodeListItem       = "list_item"
	NodeCodeBlock      = "code_block"
	NodeHorizontalRule = "horizontal_rule"
	NodeHardBreak      = "hard_break"
	NodeImage          = "image"
	NodeEmoji          = "emoji"
	NodeText           = "text"
	NodeBlok           = "blok"
)

// Known mark type tags.
const (
	MarkBold        = "bold"
	MarkItalic      = "italic"
	MarkStrike      = "strike"
	MarkUnderline   = "underline"
	MarkCode        = "code"
	MarkLink        = "link"
	MarkStyled      = "styled"
	MarkSubscript   = "subscript"
	MarkSuperscript = "superscript"
	MarkHighlight   = "highlight"
	MarkTextStyle   = "textStyle"
	MarkAnchor      = "anchor"
)

// Node represents a rich text node (document root, container, leaf, text,
// or embedded component). Known fields are modeled; unknown/custom fields
// are preserved in Raw.
//
// Exactly one of Content and Text is meaningful for any given node kind:
// container kinds carry Content, the text kind carries Text and Marks.
// Node is not safe for concurrent modification. For concurrent reads, no
// synchronization is needed.
type Node struct {
	// Required
	Type string `json:"type"`

	// Kind-specific properties (heading level, image src, blok body, ...).
	Attrs map[string]any `json:"attrs,omitempty"`

	// Ordered child nodes; absent for leaf kinds.
	Content []Node `json:"content,omitempty"`

	// Text-node fields
	Marks []Mark  `json:"marks,omitempty"`
	Text  *string `json:"text,omitempty"`

	// Raw holds unknown/custom fields and preserves explicit nulls.
	Raw map[string]any `json:"-"`
}

// Mark represents an inline decoration attached to a text node.
// Marks are stored outermost-first: the first mark in a text node's Marks
// slice ends up as the outermost wrapper when rendered.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`

	Raw map[string]any `json:"-"`
}

// WalkContext provides context during tree traversal.
type WalkContext struct {
	Index  int   // position within the parent's content sequence
	Parent *Node // nil for the root
	Depth  int   // 0 for the root
}

// Decode parses a JSON rich text document into a Node tree.
//   - Requires type on all nodes and marks
//   - Captures unknown fields into Raw (including explicit nulls)
//   - Does not normalize or semantically validate
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rm json.RawMessage
	if err := dec.Decode(&rm); err != nil {
		return nil, wrap("decode", "", err)
	}
	n, err := parseNode(rm, "")
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// DecodeString is a convenience wrapper for Decode.
func DecodeString(s string) (*Node, error) {
	return Decode(strings.NewReader(s))
}

// Encode serializes the node tree back to JSON.
//   - Re-emits all known and unknown fields
//   - Does not mutate the input
func Encode(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(n)
}

// EncodeString is a convenience wrapper for Encode.
func EncodeString(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Walk visits n and all its descendants depth-first in document order;
// stops early on fn error.
func Walk(n *Node, fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for i := range n.Content {
		if err := Walk(&n.Content[i], fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkWithContext visits n and all its descendants with additional context.
func WalkWithContext(n *Node, fn func(*Node, WalkContext) error) error {
	if n == nil {
		return nil
	}
	return walkCtx(n, WalkContext{}, fn)
}

func walkCtx(n *Node, ctx WalkContext, fn func(*Node, WalkContext) error) error {
	if err := fn(n, ctx); err != nil {
		return err
	}
	for i := range n.Content {
		child := WalkContext{Index: i, Parent: n, Depth: ctx.Depth + 1}
		if err := walkCtx(&n.Content[i], child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns clones of all nodes in the tree matching the predicate,
// in document order.
func Filter(n *Node, pred func(*Node) bool) []*Node {
	result := make([]*Node, 0)
	Walk(n, func(m *Node) error {
		if pred(m) {
			result = append(result, m.Clone())
		}
		return nil
	})
	return result
}

// Transform applies fn to a clone of each node top-down, returning a new
// tree. If fn returns nil, the node (and its subtree) is excluded.
func Transform(n *Node, fn func(*Node) *Node) *Node {
	if n == nil {
		return nil
	}
	out := fn(n.Clone())
	if out == nil {
		return nil
	}
	if out.Content != nil {
		kept := make([]Node, 0, len(out.Content))
		for i := range out.Content {
			if t := Transform(&out.Content[i], fn); t != nil {
				kept = append(kept, *t)
			}
		}
		out.Content = kept
	}
	return out
}

// IsDoc reports whether this node is a document root.
func (n *Node) IsDoc() bool { return n != nil && n.Type == NodeDoc }

// IsText reports whether this node is a text leaf.
func (n *Node) IsText() bool { return n != nil && n.Type == NodeText }

// IsBlok reports whether this node is an embedded-component node.
func (n *Node) IsBlok() bool { return n != nil && n.Type == NodeBlok }

// GetText extracts the plain text of the subtree rooted at n. Text leaves
// are concatenated in document order; hard breaks and the ends of
// paragraph-level containers become newlines.
func (n *Node) GetText() string {
	var buf strings.Builder
	n.collectText(&buf)
	return buf.String()
}

func (n *Node) collectText(buf *strings.Builder) {
	switch n.Type {
	case NodeText:
		if n.Text != nil {
			buf.WriteString(*n.Text)
		}
		return
	case NodeHardBreak:
		buf.WriteString("\n")
		return
	}
	for i := range n.Content {
		n.Content[i].collectText(buf)
	}
	switch n.Type {
	case NodeParagraph, NodeHeading, NodeCodeBlock:
		buf.WriteString("\n")
	}
}

// GetAttr returns the named attribute or nil. Safe on nodes without attrs.
func (n *Node) GetAttr(key string) any {
	if n == nil || n.Attrs == nil {
		return nil
	}
	return n.Attrs[key]
}

// HasMark checks if a text node carries a mark of the given type.
func (n *Node) HasMark(markType string) bool {
	for _, m := range n.Marks {
		if m.Type == markType {
			return true
		}
	}
	return false
}

// Clone deep-copies the node, including Raw and nested slices/maps.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := *n

	if n.Text != nil {
		t := *n.Text
		out.Text = &t
	}
	out.Attrs = deepCopyMap(n.Attrs)
	out.Content = cloneNodes(n.Content)
	out.Marks = cloneMarks(n.Marks)
	out.Raw = deepCopyMap(n.Raw)

	return &out
}

// AddNode appends a child node and returns the receiver for chaining.
func (n *Node) AddNode(child *Node) *Node {
	n.Content = append(n.Content, *child)
	return n
}

// AddText appends a text child with the given marks.
func (n *Node) AddText(text string, marks ...Mark) *Node {
	child := Node{
		Type:  NodeText,
		Text:  &text,
		Marks: marks,
		Raw:   map[string]any{},
	}
	n.Content = append(n.Content, child)
	return n
}

// SetAttr sets a single attribute, allocating the attrs map if needed.
func (n *Node) SetAttr(key string, value any) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]any{}
	}
	n.Attrs[key] = value
	return n
}

// NewDoc creates an empty document root.
func NewDoc() *Node {
	return &Node{
		Type:    NodeDoc,
		Content: []Node{},
		Raw:     map[string]any{},
	}
}

// NewNode creates a node with the given type.
func NewNode(nodeType string) *Node {
	return &Node{
		Type: nodeType,
		Raw:  map[string]any{},
	}
}

// NewMark creates a mark with the given type and attributes.
func NewMark(markType string, attrs map[string]any) Mark {
	return Mark{
		Type:  markType,
		Attrs: attrs,
		Raw:   map[string]any{},
	}
}

//
// Errors (typed + path aware)
//

var (
	ErrMissingType    = errors.New("missing type")
	ErrInvalidType    = errors.New("invalid type")
	ErrExpectedObject = errors.New("expected JSON object")
	ErrExpectedArray  = errors.New("expected JSON array")
)

type Error struct {
	Op   string // "decode", "node", "mark"
	Path string // e.g. "content[3].marks[1]"
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("richtext %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("richtext %s at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

//
// Parsing (path aware)
//

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func parseNode(b []byte, path string) (Node, error) {
	obj, err := decodeObjectUseNumber(b)
	if err != nil {
		return Node{}, wrap("node", path, err)
	}

	t, ok := obj["type"]
	if !ok {
		return Node{}, wrap("node", path, ErrMissingType)
	}
	ts, ok := t.(string)
	if !ok || ts == "" {
		return Node{}, wrap("node", path, ErrInvalidType)
	}

	var n Node
	n.Type = ts
	n.Raw = map[string]any{}

	for k, v := range obj {
		switch k {
		case "type":
		case "attrs":
			if v == nil {
				n.Raw[k] = nil // preserve explicit null
				continue
			}
			m, ok := v.(map[string]any)
			if !ok {
				return Node{}, wrap("node", joinPath(path, "attrs"), ErrExpectedObject)
			}
			n.Attrs = m
		case "content":
			if v == nil {
				n.Raw[k] = nil // preserve explicit null
				continue
			}
			content, err := parseNodeArray(v, joinPath(path, "content"))
			if err != nil {
				return Node{}, err
			}
			n.Content = content
		case "marks":
			if v == nil {
				n.Raw[k] = nil // preserve explicit null
				continue
			}
			marks, err := parseMarkArray(v, joinPath(path, "marks"))
			if err != nil {
				return Node{}, err
			}
			n.Marks = marks
		case "text":
			if v == nil {
				n.Raw[k] = nil // preserve explicit null
				continue
			}
			if s, ok := v.(string); ok {
				n.Text = &s
			} else {
				n.Raw[k] = v
			}
		default:
			n.Raw[k] = v
		}
	}

	return n, nil
}

func parseNodeArray(v any, path string) ([]Node, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, wrap("node", path, ErrExpectedArray)
	}
	if len(arr) == 0 {
		return []Node{}, nil // preserve empty array
	}

	out := make([]Node, 0, len(arr))
	for i, item := range arr {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, wrap("node", fmt.Sprintf("%s[%d]", path, i), err)
		}
		n, err := parseNode(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseMarkArray(v any, path string) ([]Mark, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, wrap("node", path, ErrExpectedArray)
	}
	if len(arr) == 0 {
		return []Mark{}, nil
	}

	out := make([]Mark, 0, len(arr))
	for i, item := range arr {
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, wrap("mark", fmt.Sprintf("%s[%d]", path, i), err)
		}
		m, err := parseMark(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func parseMark(b []byte, path string) (Mark, error) {
	obj, err := decodeObjectUseNumber(b)
	if err != nil {
		return Mark{}, wrap("mark", path, err)
	}

	t, ok := obj["type"]
	if !ok {
		return Mark{}, wrap("mark", path, ErrMissingType)
	}
	ts, ok := t.(string)
	if !ok || ts == "" {
		return Mark{}, wrap("mark", path, ErrInvalidType)
	}

	var m Mark
	m.Type = ts
	m.Raw = map[string]any{}

	for k, v := range obj {
		switch k {
		case "type":
		case "attrs":
			if v == nil {
				m.Raw[k] = nil
				continue
			}
			am, ok := v.(map[string]any)
			if !ok {
				return Mark{}, wrap("mark", joinPath(path, "attrs"), ErrExpectedObject)
			}
			m.Attrs = am
		default:
			m.Raw[k] = v
		}
	}

	return m, nil
}

func decodeObjectUseNumber(b []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrExpectedObject
	}
	return obj, nil
}

//
// JSON marshaling (re-emits Raw + known fields)
//

func (n Node) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.Raw)+5)

	for k, v := range n.Raw {
		m[k] = v
	}

	m["type"] = n.Type

	if n.Attrs != nil {
		m["attrs"] = n.Attrs
	}
	if n.Content != nil {
		m["content"] = n.Content
	}
	if n.Marks != nil {
		m["marks"] = n.Marks
	}
	if n.Text != nil {
		m["text"] = *n.Text
	}

	return json.Marshal(m)
}

func (m Mark) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Raw)+2)

	for k, v := range m.Raw {
		out[k] = v
	}

	out["type"] = m.Type
	if m.Attrs != nil {
		out["attrs"] = m.Attrs
	}

	return json.Marshal(out)
}

//
// Deep copy helpers (for Clone)
//

func cloneNodes(in []Node) []Node {
	if in == nil {
		return nil
	}
	out := make([]Node, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}

func cloneMarks(in []Mark) []Mark {
	if in == nil {
		return nil
	}
	out := make([]Mark, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].Attrs = deepCopyMap(in[i].Attrs)
		out[i].Raw = deepCopyMap(in[i].Raw)
	}
	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyAny(v)
	}
	return out
}

func deepCopyAny(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return deepCopyMap(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = deepCopyAny(x[i])
		}
		return out
	case json.RawMessage:
		cp := make([]byte, len(x))
		copy(cp, x)
		return json.RawMessage(cp)
	case []byte:
		cp := make([]byte, len(x))
		copy(cp, x)
		return cp
	default:
		// primitives (string, bool, nil, json.Number, etc.)
		return x
	}
}
