package sitemap

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Node is one item of the parsed document. Element names and attribute
// names carry the resolved namespace URL in Name.Space, never a prefix.
type Node struct {
	Type     NodeType
	Name     xml.Name
	Attr     []xml.Attr
	Data     string
	Target   string
	Children []*Node
}

// Document is a sitemap loaded into memory. Namespace declarations are not
// kept as attributes; they are rebuilt when the document is written.
type Document struct {
	Encoding string
	Prolog   []*Node
	Root     *Node
	Epilog   []*Node

	// first prefix each namespace URL was bound to in the source
	prefixes map[string]string
	// namespace URLs declared on the root element, in source order
	rootNamespaces []string
}

// Parse reads a namespaced XML document. Encodings other than UTF-8 are
// decoded on the way in; the document is always written back as UTF-8,
// without a byte order mark.
func Parse(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	dec := xml.NewDecoder(br)
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{prefixes: make(map[string]string)}

	var stack []*Node
	var scopes []map[string]string

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Root != nil {
				return nil, parseErrorf("multiple root elements: <%s> after <%s>", t.Name.Local, doc.Root.Name.Local)
			}

			scope := make(map[string]string)
			if len(scopes) > 0 {
				for prefix, uri := range scopes[len(scopes)-1] {
					scope[prefix] = uri
				}
			}

			el := &Node{Type: ElementNode, Name: t.Name}
			seen := make(map[xml.Name]bool, len(t.Attr))
			for _, attr := range t.Attr {
				if seen[attr.Name] {
					return nil, parseErrorf("duplicate attribute %s on element <%s>", attrLabel(attr.Name), t.Name.Local)
				}
				seen[attr.Name] = true

				prefix, isDecl := namespaceDecl(attr)
				if !isDecl {
					el.Attr = append(el.Attr, attr)
					continue
				}
				scope[prefix] = attr.Value
				if attr.Value == "" {
					continue
				}
				if _, known := doc.prefixes[attr.Value]; !known {
					doc.prefixes[attr.Value] = prefix
				}
				if len(stack) == 0 {
					doc.rootNamespaces = appendUnique(doc.rootNamespaces, attr.Value)
				}
			}

			if !bound(scope, t.Name.Space) {
				return nil, parseErrorf("unbound namespace prefix %q on element <%s>", t.Name.Space, t.Name.Local)
			}
			for _, attr := range el.Attr {
				if !bound(scope, attr.Name.Space) {
					return nil, parseErrorf("unbound namespace prefix %q on attribute %s", attr.Name.Space, attr.Name.Local)
				}
			}

			if len(stack) == 0 {
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			scopes = append(scopes, scope)

		case xml.EndElement:
			stack = stack[:len(stack)-1]
			scopes = scopes[:len(scopes)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if strings.TrimSpace(string(t)) != "" {
					return nil, parseErrorf("text outside the root element")
				}
				continue
			}
			stack[len(stack)-1].appendText(string(t))

		case xml.Comment:
			doc.place(stack, &Node{Type: CommentNode, Data: string(t)})

		case xml.ProcInst:
			if t.Target == "xml" {
				doc.Encoding = procInstParam(string(t.Inst), "encoding")
				continue
			}
			doc.place(stack, &Node{Type: ProcInstNode, Target: t.Target, Data: string(t.Inst)})

		case xml.Directive:
			doc.place(stack, &Node{Type: DirectiveNode, Data: string(t)})
		}
	}

	if doc.Root == nil {
		return nil, parseErrorf("no root element")
	}

	return doc, nil
}

// place attaches a non-element node to the open element, or to the prolog or
// epilog when it sits outside the root.
func (d *Document) place(stack []*Node, n *Node) {
	switch {
	case len(stack) > 0:
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	case d.Root == nil:
		d.Prolog = append(d.Prolog, n)
	default:
		d.Epilog = append(d.Epilog, n)
	}
}

func (n *Node) appendText(s string) {
	if last := len(n.Children) - 1; last >= 0 && n.Children[last].Type == TextNode {
		n.Children[last].Data += s
		return
	}
	n.Children = append(n.Children, &Node{Type: TextNode, Data: s})
}

// Text returns the character data before the first child element or
// comment.
func (n *Node) Text() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Type != TextNode {
			break
		}
		sb.WriteString(c.Data)
	}
	return sb.String()
}

// SetText replaces the leading character data of n with s.
func (n *Node) SetText(s string) {
	i := 0
	for i < len(n.Children) && n.Children[i].Type == TextNode {
		i++
	}
	rest := n.Children[i:]
	children := make([]*Node, 0, len(rest)+1)
	if s != "" {
		children = append(children, &Node{Type: TextNode, Data: s})
	}
	n.Children = append(children, rest...)
}

// Child returns the first direct child element with the given name.
func (n *Node) Child(name xml.Name) *Node {
	for _, c := range n.Children {
		if c.Type == ElementNode && c.Name == name {
			return c
		}
	}
	return nil
}

// namespaceDecl reports whether attr is an xmlns declaration and the prefix
// it binds ("" for the default namespace). The decoder leaves these names
// untranslated.
func namespaceDecl(attr xml.Attr) (string, bool) {
	switch {
	case attr.Name.Space == "xmlns":
		return attr.Name.Local, true
	case attr.Name.Space == "" && attr.Name.Local == "xmlns":
		return "", true
	}
	return "", false
}

// bound reports whether space is a namespace URL in scope. The decoder
// leaves unknown prefixes in place, so anything not found here is an
// undeclared prefix.
func bound(scope map[string]string, space string) bool {
	if space == "" || space == xmlNamespace {
		return true
	}
	for _, uri := range scope {
		if uri == space {
			return true
		}
	}
	return false
}

func attrLabel(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func procInstParam(inst, param string) string {
	idx := strings.Index(inst, param)
	if idx < 0 {
		return ""
	}
	v := strings.TrimSpace(inst[idx+len(param):])
	if !strings.HasPrefix(v, "=") {
		return ""
	}
	v = strings.TrimSpace(v[1:])
	if v == "" || (v[0] != '\'' && v[0] != '"') {
		return ""
	}
	quote := v[0]
	v = v[1:]
	end := strings.IndexByte(v, quote)
	if end < 0 {
		return ""
	}
	return v[:end]
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
