package fetch

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"roguedex/pkg/models"
)

// WikiSource scrapes one issue page per issue number from a reference
// wiki. BaseURL is a printf template with one %d slot for the issue
// number, e.g. "https://wiki.example/Amazing_Spider-Man_%d".
type WikiSource struct {
	Series  string
	BaseURL string
	Range   IssueRange
	Client  *http.Client
}

// NewWikiSource builds a wiki source over the series' default issue range.
func NewWikiSource(series, baseURL string) *WikiSource {
	return &WikiSource{
		Series:  series,
		BaseURL: baseURL,
		Range:   DefaultIssueRange(series),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *WikiSource) Name() string { return "wiki" }

// FetchSeries fetches every issue page in the range in order. A 404 ends
// the series (the wiki has no page past the last published issue); other
// non-200 statuses fail the run.
func (s *WikiSource) FetchSeries(ctx context.Context) (*models.SeriesInput, error) {
	input := &models.SeriesInput{
		Series:  s.Series,
		BaseURL: s.BaseURL,
		Issues:  []models.Issue{},
	}

	for n := s.Range.Start; n <= s.Range.End; n++ {
		issue, err := s.fetchIssue(ctx, n)
		if err != nil {
			return nil, err
		}
		if issue == nil {
			log.Printf("[fetch] %s: no page for issue %d, stopping", s.Series, n)
			break
		}
		input.Issues = append(input.Issues, *issue)
	}
	return input, nil
}

func (s *WikiSource) fetchIssue(ctx context.Context, n int) (*models.Issue, error) {
	url := fmt.Sprintf(s.BaseURL, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("wiki: build request for issue %d: %w", n, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki: fetch issue %d: %w", n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki: issue %d: status %d", n, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wiki: parse issue %d: %w", n, err)
	}
	return parseIssuePage(doc, n), nil
}

// parseIssuePage maps one wiki issue page into the raw issue shape. Names
// are passed through untouched; normalization is the resolver's job.
func parseIssuePage(doc *goquery.Document, n int) *models.Issue {
	issue := &models.Issue{
		IssueNumber: n,
		Title:       strings.TrimSpace(doc.Find("h1.issue-title").First().Text()),
		ReleaseDate: strings.TrimSpace(doc.Find(".release-date").First().Text()),
		Antagonists: []models.Mention{},
	}
	issue.ChronologicalPlacementHint = strings.TrimSpace(doc.Find(".placement-hint").First().Text())

	doc.Find(".antagonists li").Each(func(_ int, sel *goquery.Selection) {
		m := models.Mention{}
		if link := sel.Find("a").First(); link.Length() > 0 {
			m.Name = strings.TrimSpace(link.Text())
			m.URL, _ = link.Attr("href")
		} else {
			m.Name = strings.TrimSpace(sel.Text())
		}
		if img := sel.Find("img").First(); img.Length() > 0 {
			m.ImageURL, _ = img.Attr("src")
		}
		if m.Name != "" {
			issue.Antagonists = append(issue.Antagonists, m)
		}
	})
	return issue
}
