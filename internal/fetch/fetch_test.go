package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const issuePage = `<html><body>
<h1 class="issue-title">Test Series #%d</h1>
<div class="release-date">January %d, 1999</div>
<div class="antagonists"><ul>
  <li><a href="/wiki/Green_Goblin"><img src="/img/goblin.jpg"/>Green Goblin (Norman Osborn)</a></li>
  <li>Unnamed henchmen</li>
</ul></div>
</body></html>`

func TestWikiSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n int
		if _, err := fmt.Sscanf(r.URL.Path, "/issue/%d", &n); err != nil || n > 2 {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, issuePage, n, n)
	}))
	defer srv.Close()

	src := NewWikiSource("Test Series", srv.URL+"/issue/%d")
	src.Range = IssueRange{1, 10} // server 404s after issue 2

	input, err := src.FetchSeries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(input.Issues) != 2 {
		t.Fatalf("expected fetch to stop at the first missing page, got %d issues", len(input.Issues))
	}

	first := input.Issues[0]
	if first.IssueNumber != 1 || first.Title != "Test Series #1" {
		t.Fatalf("unexpected issue: %+v", first)
	}
	if first.ReleaseDate != "January 1, 1999" {
		t.Fatalf("unexpected release date %q", first.ReleaseDate)
	}
	if len(first.Antagonists) != 2 {
		t.Fatalf("expected 2 raw mentions, got %d", len(first.Antagonists))
	}
	m := first.Antagonists[0]
	if m.Name != "Green Goblin (Norman Osborn)" {
		t.Fatalf("raw name must stay unnormalized, got %q", m.Name)
	}
	if m.URL != "/wiki/Green_Goblin" || m.ImageURL != "/img/goblin.jpg" {
		t.Fatalf("unexpected mention links: %+v", m)
	}
	// placeholder filtering is the resolver's job, not the fetcher's
	if input.Issues[0].Antagonists[1].Name != "Unnamed henchmen" {
		t.Fatalf("unexpected second mention: %+v", first.Antagonists[1])
	}
}

func TestMirrorSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"series":"Test Series","baseUrl":"https://wiki.example/%d","issues":[
			{"issueNumber":1,"title":"One","antagonists":[{"name":"Vulture"}]}
		]}`)
	}))
	defer srv.Close()

	input, err := NewMirrorSource(srv.URL + "/series.json").FetchSeries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Series != "Test Series" || len(input.Issues) != 1 {
		t.Fatalf("unexpected input: %+v", input)
	}
}

func TestMirrorSourceRejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":"","issues":[]}`)
	}))
	defer srv.Close()

	if _, err := NewMirrorSource(srv.URL).FetchSeries(context.Background()); err == nil {
		t.Fatal("expected validation error for empty series name")
	}
}

func TestDefaultIssueRange(t *testing.T) {
	if r := DefaultIssueRange("Amazing Spider-Man"); r.Start != 1 || r.End != 441 {
		t.Fatalf("unexpected known range: %+v", r)
	}
	if r := DefaultIssueRange("No Such Series"); r.Start != 1 || r.End != 100 {
		t.Fatalf("expected default fallback range, got %+v", r)
	}
}
