package masslobby

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestNearestLabelRowLayout(t *testing.T) {
	doc := mustDoc(t, `
		<table><tr><td>Client: </td><td>Acme Corp</td></tr></table>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	name, ok := order.nearestLabel(target.Nodes[0], clientRowMatchers)
	require.True(t, ok)
	require.Equal(t, "Acme Corp", name)
}

func TestNearestLabelSpanLayout(t *testing.T) {
	doc := mustDoc(t, `
		<div><strong>Client: </strong><span>Beta Industries</span></div>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	name, ok := order.nearestLabel(target.Nodes[0], clientRowMatchers)
	require.True(t, ok)
	require.Equal(t, "Beta Industries", name)
}

// the row layout is checked before the span layout even when the span
// layout sits closer to the table
func TestNearestLabelRowPrecedence(t *testing.T) {
	doc := mustDoc(t, `
		<table><tr><td>Client: </td><td>Row Client</td></tr></table>
		<div><strong>Client: </strong><span>Span Client</span></div>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	name, ok := order.nearestLabel(target.Nodes[0], clientRowMatchers)
	require.True(t, ok)
	require.Equal(t, "Row Client", name)
}

// nearest means nearest walking backward, not first in document order
func TestNearestLabelPicksClosest(t *testing.T) {
	doc := mustDoc(t, `
		<table><tr><td>Lobbyist: </td><td>First Lobbyist</td></tr></table>
		<table><tr><td>Lobbyist: </td><td>Second Lobbyist</td></tr></table>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	name, ok := order.nearestLabel(target.Nodes[0], lobbyistRowMatchers)
	require.True(t, ok)
	require.Equal(t, "Second Lobbyist", name)
}

// labels after the table never apply to it
func TestNearestLabelIgnoresFollowing(t *testing.T) {
	doc := mustDoc(t, `
		<table id="target"><tr><td>data</td></tr></table>
		<table><tr><td>Client: </td><td>Too Late</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	_, ok := order.nearestLabel(target.Nodes[0], clientRowMatchers)
	require.False(t, ok)
}

// a matched label with a missing value cell claims the lookup; the
// resolver reports no value rather than trying other matchers
func TestNearestLabelMissingValueCell(t *testing.T) {
	doc := mustDoc(t, `
		<div><strong>Client: </strong><span>Span Client</span></div>
		<table><tr><td>Client: </td></tr></table>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	_, ok := order.nearestLabel(target.Nodes[0], clientRowMatchers)
	require.False(t, ok)
}

func TestNearestLabelMETSpan(t *testing.T) {
	doc := mustDoc(t, `
		<span id="ContentPlaceHolder1_x_lblLobbyistName">Lobbyist: Jane Doe</span>
		<table id="target"><tr><td>data</td></tr></table>
	`)
	order := newDocOrder(doc)
	target := doc.Find("table#target")

	name, ok := order.nearestLabel(target.Nodes[0], metLobbyistMatchers)
	require.True(t, ok)
	require.Equal(t, "Jane Doe", name)
}
