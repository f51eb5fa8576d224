package masslobby

import (
	"regexp"
	"strings"

	"malobby-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tables in a disclosure are scoped by "Lobbyist:" / "Client:" labels that
// precede them in the document, with no structural link between label and
// table. The resolver walks the document's linear reading order backward
// from the table to the nearest matching label. The same label has been
// observed under two encodings (a two-cell row and a strong+span pair), so
// matchers are tried as an ordered list: the first matcher that finds any
// preceding occurrence wins, even if its value cell turns out to be
// missing. New encodings are added by appending matchers, the walk itself
// never changes.

type labelMatcher struct {
	match func(n *html.Node) bool
	value func(n *html.Node) (string, bool)
}

// a label in its own table cell, value in the sibling cell:
//
//	<tr><td>Client:</td><td>Acme Corp</td></tr>
func rowLabelMatcher(label *regexp.Regexp) labelMatcher {
	return labelMatcher{
		match: func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "td" &&
				label.MatchString(htmlutil.GetText(n))
		},
		value: func(n *html.Node) (string, bool) {
			cell := htmlutil.NextSiblingElement(n, "td")
			if cell == nil {
				return "", false
			}
			return htmlutil.CleanText(htmlutil.GetText(cell)), true
		},
	}
}

// a bold label followed by a span holding the value:
//
//	<strong>Client:</strong><span>Acme Corp</span>
func spanLabelMatcher(label *regexp.Regexp) labelMatcher {
	return labelMatcher{
		match: func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "strong" &&
				label.MatchString(htmlutil.GetText(n))
		},
		value: func(n *html.Node) (string, bool) {
			cell := htmlutil.NextSiblingElement(n, "span")
			if cell == nil {
				return "", false
			}
			return htmlutil.CleanText(htmlutil.GetText(cell)), true
		},
	}
}

// a span carrying both label and value, located by id substring:
//
//	<span id="..._lblLobbyistName">Lobbyist: Jane Doe</span>
func idLabelMatcher(idSubstring, stripPrefix string) labelMatcher {
	return labelMatcher{
		match: func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "span" &&
				strings.Contains(htmlutil.Attr(n, "id"), idSubstring)
		},
		value: func(n *html.Node) (string, bool) {
			text := htmlutil.CleanText(htmlutil.GetText(n))
			return strings.TrimPrefix(text, stripPrefix), true
		},
	}
}

var (
	lobbyistLabelRegex = regexp.MustCompile(`^\s*Lobbyist:`)
	clientLabelRegex   = regexp.MustCompile(`^\s*Client:\s*`)
)

var lobbyistRowMatchers = []labelMatcher{
	rowLabelMatcher(lobbyistLabelRegex),
}

// row layout is checked before the span layout. this precedence mirrors
// the observed source documents and is an assumption, not a rule the
// format guarantees.
var clientRowMatchers = []labelMatcher{
	rowLabelMatcher(clientLabelRegex),
	spanLabelMatcher(clientLabelRegex),
}

var metLobbyistMatchers = []labelMatcher{
	idLabelMatcher("lblLobbyistName", "Lobbyist: "),
}

// docOrder indexes every element node of a document in reading order so
// that "nearest preceding" lookups are a backward slice walk.
type docOrder struct {
	nodes []*html.Node
	index map[*html.Node]int
}

func newDocOrder(doc *goquery.Document) *docOrder {
	o := &docOrder{index: map[*html.Node]int{}}
	for _, root := range doc.Nodes {
		o.collect(root)
	}
	return o
}

func (o *docOrder) collect(n *html.Node) {
	if n.Type == html.ElementNode {
		o.index[n] = len(o.nodes)
		o.nodes = append(o.nodes, n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		o.collect(child)
	}
}

// nearestLabel resolves the label scoping `at`. It stops at the first
// occurrence walking backward, never the first in document order. The
// second return is false when no matcher found a usable value and the
// caller should fall back to the ambient name.
func (o *docOrder) nearestLabel(at *html.Node, matchers []labelMatcher) (string, bool) {
	start, ok := o.index[at]
	if !ok {
		return "", false
	}
	for _, m := range matchers {
		for i := start - 1; i >= 0; i-- {
			if !m.match(o.nodes[i]) {
				continue
			}
			// this matcher claims the label even when its value cell is
			// missing; later matchers are not consulted
			return m.value(o.nodes[i])
		}
	}
	return "", false
}
