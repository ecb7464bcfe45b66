package scraper

import (
	"errors"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// errNoRoot reports a document without a single element.
var errNoRoot = errors.New("document has no root element")

// xmlNode is one element of a leniently parsed document. Names keep the
// prefix the document used ("dc:date", "content:encoded"), so lookups match
// the literal tag regardless of the namespace URL behind it.
type xmlNode struct {
	name   string
	attrs  map[string]string
	parent *xmlNode
	kids   []*xmlNode
	text   strings.Builder

	// defaultNS is the namespace unprefixed names resolve to here.
	defaultNS string
}

// parseXMLTree reads raw in non-strict mode. Syntax errors after the root
// element has opened end the walk and keep what was read, so HTML and
// truncated documents still yield a tree. Only input without any element is
// an error.
func parseXMLTree(raw string) (*xmlNode, error) {
	p := xpp.NewXMLPullParser(strings.NewReader(raw), false, charset.NewReaderLabel)

	var root *xmlNode
	var open []*xmlNode
	for {
		event, err := p.Next()
		if err != nil {
			if root == nil {
				return nil, err
			}
			return root, nil
		}

		switch event {
		case xpp.StartTag:
			var parent *xmlNode
			if len(open) > 0 {
				parent = open[len(open)-1]
			}
			n := &xmlNode{attrs: nodeAttrs(p), defaultNS: defaultNamespace(p, parent)}
			if p.Space != "" && p.Space == n.defaultNS {
				// a prefix bound to the default namespace must not rename
				// unprefixed elements
				n.name = p.Name
			} else {
				n.name = qualifiedName(p, p.Space, p.Name)
			}
			if parent != nil {
				n.parent = parent
				parent.kids = append(parent.kids, n)
			} else if root == nil {
				root = n
			}
			open = append(open, n)
		case xpp.EndTag:
			if len(open) > 0 {
				open = open[:len(open)-1]
			}
		case xpp.Text:
			for _, n := range open {
				n.text.WriteString(p.Text)
			}
		case xpp.EndDocument:
			if root == nil {
				return nil, errNoRoot
			}
			return root, nil
		}
	}
}

// qualifiedName maps a resolved namespace URL back to the prefix declared
// for it. Undeclared prefixes are left as encoding/xml reports them.
func qualifiedName(p *xpp.XMLPullParser, space, local string) string {
	if space == "" {
		return local
	}
	if prefix, ok := p.Spaces[space]; ok {
		if prefix == "" {
			return local
		}
		return prefix + ":" + local
	}
	return space + ":" + local
}

func defaultNamespace(p *xpp.XMLPullParser, parent *xmlNode) string {
	for _, a := range p.Attrs {
		if a.Name.Space == "" && a.Name.Local == "xmlns" {
			return strings.TrimSpace(a.Value)
		}
	}
	if parent != nil {
		return parent.defaultNS
	}
	return ""
}

func nodeAttrs(p *xpp.XMLPullParser) map[string]string {
	if len(p.Attrs) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(p.Attrs))
	for _, a := range p.Attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		attrs[qualifiedName(p, a.Name.Space, a.Name.Local)] = a.Value
	}
	return attrs
}

// Text is the concatenated character data of n and its descendants.
func (n *xmlNode) Text() string {
	if n == nil {
		return ""
	}
	return n.text.String()
}

// Attr returns the named attribute, or "" when n is nil or lacks it.
func (n *xmlNode) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.attrs[name]
}

// FindAll returns every descendant named name in document order.
func (n *xmlNode) FindAll(name string) []*xmlNode {
	var out []*xmlNode
	var walk func(*xmlNode)
	walk = func(cur *xmlNode) {
		for _, k := range cur.kids {
			if k.name == name {
				out = append(out, k)
			}
			walk(k)
		}
	}
	walk(n)
	return out
}

// Find returns the first descendant named name, or nil.
func (n *xmlNode) Find(name string) *xmlNode {
	for _, k := range n.kids {
		if k.name == name {
			return k
		}
		if found := k.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindText returns the text of the first descendant named name.
func (n *xmlNode) FindText(name string) string {
	return n.Find(name).Text()
}
