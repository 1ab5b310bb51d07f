package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/romangod6/sitemap-updater/internal/models"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

type nsDecl struct {
	prefix string
	uri    string
}

// namespaceTable maps namespace URLs to the prefixes used on output. The
// sitemap namespace is always the default namespace, xsi keeps "xsi", and
// everything else keeps its source prefix unless that prefix is taken.
type namespaceTable struct {
	defaultNS  string
	elemPrefix map[string]string
	attrPrefix map[string]string
	decls      []nsDecl
}

func (d *Document) namespaceTable() *namespaceTable {
	used := append([]string(nil), d.rootNamespaces...)
	attrURIs := make(map[string]bool)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type != ElementNode {
			return
		}
		if n.Name.Space != "" && n.Name.Space != xmlNamespace {
			used = appendUnique(used, n.Name.Space)
		}
		for _, attr := range n.Attr {
			if attr.Name.Space != "" && attr.Name.Space != xmlNamespace {
				used = appendUnique(used, attr.Name.Space)
				attrURIs[attr.Name.Space] = true
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d.Root)

	t := &namespaceTable{
		elemPrefix: make(map[string]string),
		attrPrefix: make(map[string]string),
	}
	taken := map[string]bool{"": true, "xml": true, "xmlns": true}

	for _, uri := range used {
		switch uri {
		case models.SitemapNamespace:
			t.defaultNS = uri
			t.elemPrefix[uri] = ""
		case models.XSINamespace:
			t.elemPrefix[uri] = "xsi"
			taken["xsi"] = true
		}
	}

	for _, uri := range used {
		if _, ok := t.elemPrefix[uri]; ok {
			continue
		}
		prefix, ok := d.prefixes[uri]
		if !ok || taken[prefix] {
			prefix = nextPrefix(taken)
		}
		t.elemPrefix[uri] = prefix
		taken[prefix] = true
	}

	for _, uri := range used {
		prefix := t.elemPrefix[uri]
		if prefix != "" {
			t.decls = append(t.decls, nsDecl{prefix: prefix, uri: uri})
		}
		if !attrURIs[uri] {
			continue
		}
		// attributes never pick up the default namespace
		if prefix == "" {
			prefix = nextPrefix(taken)
			taken[prefix] = true
			t.decls = append(t.decls, nsDecl{prefix: prefix, uri: uri})
		}
		t.attrPrefix[uri] = prefix
	}

	return t
}

func nextPrefix(taken map[string]bool) string {
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("ns%d", i)
		if !taken[prefix] {
			return prefix
		}
	}
}

func (t *namespaceTable) elementName(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == xmlNamespace:
		return "xml:" + name.Local
	}
	if prefix := t.elemPrefix[name.Space]; prefix != "" {
		return prefix + ":" + name.Local
	}
	return name.Local
}

func (t *namespaceTable) attrName(name xml.Name) string {
	switch {
	case name.Space == "":
		return name.Local
	case name.Space == xmlNamespace:
		return "xml:" + name.Local
	}
	return t.attrPrefix[name.Space] + ":" + name.Local
}

// defaultFor returns the default namespace an unprefixed element name needs
// in scope.
func (t *namespaceTable) defaultFor(name xml.Name) string {
	if name.Space == "" || name.Space == xmlNamespace {
		return ""
	}
	if t.elemPrefix[name.Space] == "" {
		return name.Space
	}
	return ""
}

type treeWriter struct {
	buf bytes.Buffer
	ns  *namespaceTable
}

// WriteTo serializes the document as UTF-8 with an XML declaration. All
// namespaces in use are declared on the root element.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	tw := &treeWriter{ns: d.namespaceTable()}

	tw.buf.WriteString(xml.Header)
	for _, n := range d.Prolog {
		tw.node(n, "")
		tw.buf.WriteByte('\n')
	}
	tw.element(d.Root, "", true)
	for _, n := range d.Epilog {
		tw.buf.WriteByte('\n')
		tw.node(n, "")
	}
	tw.buf.WriteByte('\n')

	return tw.buf.WriteTo(w)
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	_, _ = d.WriteTo(&buf)
	return buf.Bytes()
}

func (tw *treeWriter) node(n *Node, defaultNS string) {
	switch n.Type {
	case ElementNode:
		tw.element(n, defaultNS, false)
	case TextNode:
		tw.buf.WriteString(textEscaper.Replace(n.Data))
	case CommentNode:
		tw.buf.WriteString("<!--")
		tw.buf.WriteString(n.Data)
		tw.buf.WriteString("-->")
	case ProcInstNode:
		tw.buf.WriteString("<?")
		tw.buf.WriteString(n.Target)
		if n.Data != "" {
			tw.buf.WriteByte(' ')
			tw.buf.WriteString(n.Data)
		}
		tw.buf.WriteString("?>")
	case DirectiveNode:
		tw.buf.WriteString("<!")
		tw.buf.WriteString(n.Data)
		tw.buf.WriteByte('>')
	}
}

func (tw *treeWriter) element(n *Node, defaultNS string, root bool) {
	name := tw.ns.elementName(n.Name)

	tw.buf.WriteByte('<')
	tw.buf.WriteString(name)

	if want := tw.ns.defaultFor(n.Name); want != defaultNS {
		tw.writeAttr("xmlns", want)
		defaultNS = want
	}
	if root {
		for _, decl := range tw.ns.decls {
			tw.writeAttr("xmlns:"+decl.prefix, decl.uri)
		}
	}
	for _, attr := range n.Attr {
		tw.writeAttr(tw.ns.attrName(attr.Name), attr.Value)
	}

	if len(n.Children) == 0 {
		tw.buf.WriteString("/>")
		return
	}

	tw.buf.WriteByte('>')
	for _, c := range n.Children {
		tw.node(c, defaultNS)
	}
	tw.buf.WriteString("</")
	tw.buf.WriteString(name)
	tw.buf.WriteByte('>')
}

func (tw *treeWriter) writeAttr(name, value string) {
	tw.buf.WriteByte(' ')
	tw.buf.WriteString(name)
	tw.buf.WriteString(`="`)
	tw.buf.WriteString(attrEscaper.Replace(value))
	tw.buf.WriteByte('"')
}
