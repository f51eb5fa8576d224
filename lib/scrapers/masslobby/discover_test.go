package masslobby

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisclosureLinks(t *testing.T) {
	doc := mustDoc(t, `
		<a href="CompleteDisclosure.aspx?sysvalue=a1">one</a>
		<a href="CompleteDisclosure.aspx?sysvalue=a2">two</a>
		<a href="CompleteDisclosure.aspx?sysvalue=a1">one again</a>
		<a href="Summary.aspx?page=2">next</a>
	`)
	base, err := url.Parse("https://www.sec.state.ma.us/LobbyistPublicSearch/Summary.aspx")
	require.NoError(t, err)

	links := DisclosureLinks(base, doc)
	require.Equal(t, []string{
		"https://www.sec.state.ma.us/LobbyistPublicSearch/CompleteDisclosure.aspx?sysvalue=a1",
		"https://www.sec.state.ma.us/LobbyistPublicSearch/CompleteDisclosure.aspx?sysvalue=a2",
	}, links)
}
