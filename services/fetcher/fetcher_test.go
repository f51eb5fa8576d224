package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"malobby-backend/lib/scrapers/masslobby"
	"malobby-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSaveName(t *testing.T) {
	url := "https://www.sec.state.ma.us/LobbyistPublicSearch/CompleteDisclosure.aspx?sysvalue=abc%2f123"
	name := SaveName(url)
	require.Equal(t, "www.sec.state.ma.us_LobbyistPublicSearch_CompleteDisclosure.aspx_sysvalue=abc%2f123.html", name)

	// the disclosure id must survive the filename round trip
	require.Equal(t, "abc/123", masslobby.DisclosureID(name))
}

func TestStateManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewStateManager(path)
	require.NoError(t, err)
	require.NoError(t, s.Initialize([]string{"a", "b", "c"}))
	require.NoError(t, s.SetStatus("a", StatusCompleted))
	require.NoError(t, s.SetStatus("b", StatusFailedSmall))

	// a fresh manager resumes from the file and retries failures
	s2, err := NewStateManager(path)
	require.NoError(t, err)
	pending := s2.Pending()
	require.ElementsMatch(t, []string{"b", "c"}, pending)

	counts := s2.Counts()
	require.Equal(t, 1, counts[StatusCompleted])
	require.Equal(t, 1, counts[StatusFailedSmall])
	require.Equal(t, 1, counts[StatusPending])
}

func TestFetcherRun(t *testing.T) {
	cleanup := telemetry.SetupForTesting("fetcher_test")
	defer cleanup()

	page := "<html><body>" + strings.Repeat("x", 2048) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	defer server.Close()

	dir := t.TempDir()
	f, err := New(Options{
		OutputDir: filepath.Join(dir, "out"),
		StatePath: filepath.Join(dir, "state.json"),
		Workers:   2,
	})
	require.NoError(t, err)

	url := server.URL + "/CompleteDisclosure.aspx?sysvalue=abc"
	counts, err := f.Run(context.Background(), []string{url})
	require.NoError(t, err)
	require.Equal(t, 1, counts[StatusCompleted])

	saved, err := os.ReadFile(filepath.Join(dir, "out", SaveName(url)))
	require.NoError(t, err)
	require.Equal(t, page, string(saved))

	// a second run has nothing left to do
	counts, err = f.Run(context.Background(), []string{url})
	require.NoError(t, err)
	require.Equal(t, 1, counts[StatusCompleted])
}

func TestDiscover(t *testing.T) {
	cleanup := telemetry.SetupForTesting("fetcher_test")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="CompleteDisclosure.aspx?sysvalue=a">one</a>
			<a href="CompleteDisclosure.aspx?sysvalue=b">two</a>
			<a href="CompleteDisclosure.aspx?sysvalue=a">dup</a>
			<a href="Summary.aspx?x=1">not a disclosure</a>
		</body></html>`))
	}))
	defer server.Close()

	dir := t.TempDir()
	f, err := New(Options{
		OutputDir: filepath.Join(dir, "out"),
		StatePath: filepath.Join(dir, "state.json"),
	})
	require.NoError(t, err)

	urls, err := f.Discover(context.Background(), []string{server.URL + "/Summary.aspx"})
	require.NoError(t, err)
	require.Equal(t, []string{
		server.URL + "/CompleteDisclosure.aspx?sysvalue=a",
		server.URL + "/CompleteDisclosure.aspx?sysvalue=b",
	}, urls)
}

func TestFetcherSmallResponse(t *testing.T) {
	cleanup := telemetry.SetupForTesting("fetcher_test")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tiny"))
	}))
	defer server.Close()

	dir := t.TempDir()
	f, err := New(Options{
		OutputDir: filepath.Join(dir, "out"),
		StatePath: filepath.Join(dir, "state.json"),
	})
	require.NoError(t, err)

	status, err := f.attempt(context.Background(), server.URL+"/page")
	require.Error(t, err)
	require.Equal(t, StatusFailedSmall, status)
}
