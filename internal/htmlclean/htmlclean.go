// Package htmlclean does the small amount of HTML work the extractors need:
// keeping the original image source on <img> tags and decoding entity-encoded
// text to plain strings. It does not sanitize.
package htmlclean

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PreservedSrcAttr holds the WordPress image URL until media is rewritten.
const PreservedSrcAttr = "data-wp-src"

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func blank(s string) bool {
	return s == "" || s == "NULL"
}

// Clean parses an HTML fragment, copies every <img src> into data-wp-src and
// renders the fragment back. Empty and NULL input yields "". If the fragment
// cannot be parsed the input is returned unchanged.
func Clean(fragment string) string {
	if blank(fragment) {
		return ""
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext())
	if err != nil {
		return fragment
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		markImages(n)
		if err := html.Render(&buf, n); err != nil {
			return fragment
		}
	}
	return buf.String()
}

func markImages(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		if src, ok := attr(n, "src"); ok {
			setAttr(n, PreservedSrcAttr, src)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		markImages(c)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Text returns the plain text of an HTML fragment with entities decoded.
// Empty and NULL input yields "".
func Text(fragment string) string {
	if blank(fragment) {
		return ""
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext())
	if err != nil {
		return html.UnescapeString(fragment)
	}

	var sb strings.Builder
	for _, n := range nodes {
		collectText(&sb, n)
	}
	return sb.String()
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}
