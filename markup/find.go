// Package markup inspects rendered documentation HTML: it finds elements and
// reads their attributes, and imports responsive image markup back into
// image assets.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

func Parse(s string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// FindElements returns every element named tag below doc, in document order.
func FindElements(doc *html.Node, tag string) []*html.Node {
	nodes := make([]*html.Node, 0)
	var crawler func(*html.Node)
	crawler = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			nodes = append(nodes, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			crawler(child)
		}
	}
	crawler(doc)
	return nodes
}

// First returns the first element named tag below doc, or nil.
func First(doc *html.Node, tag string) *html.Node {
	if nodes := FindElements(doc, tag); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func HasClass(node *html.Node, class string) bool {
	v, ok := Attr(node, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
