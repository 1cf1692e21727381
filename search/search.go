package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the Q&A search endpoint the original tool targets.
const DefaultBaseURL = "https://zhidao.baidu.com/search?word="

// The provider paginates in steps of 10 results.
const pageStep = 10

// FetchError reports a failed search page fetch. A failed page fails the
// whole aggregation; a partial corpus would bias scoring unpredictably.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("search fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Aggregator issues paged queries against a search provider and collapses
// the result pages into a single plain-text corpus.
type Aggregator struct {
	fetcher Fetcher
	baseURL string
	pages   int
}

// NewAggregator wires a page fetch strategy to a provider base URL.
// pages beyond the first enlarge the corpus to counter small-sample bias.
func NewAggregator(fetcher Fetcher, baseURL string, pages int) *Aggregator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pages <= 0 {
		pages = 1
	}
	return &Aggregator{fetcher: fetcher, baseURL: baseURL, pages: pages}
}

// Aggregate fetches every configured result page for query and returns
// their visible text joined in page order. Pages are fetched concurrently;
// joining by page index keeps the corpus deterministic regardless of
// arrival order.
func (a *Aggregator) Aggregate(ctx context.Context, query string) (string, error) {
	texts := make([]string, a.pages)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < a.pages; i++ {
		i := i
		g.Go(func() error {
			pageURL := a.pageURL(query, i)
			markup, err := a.fetcher.Fetch(gctx, pageURL)
			if err != nil {
				return &FetchError{URL: pageURL, Err: err}
			}
			texts[i] = StripMarkup(markup)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(texts, "\n"), nil
}

func (a *Aggregator) pageURL(query string, page int) string {
	u := a.baseURL + url.QueryEscape(query)
	if page > 0 {
		u += fmt.Sprintf("&pn=%d", page*pageStep)
	}
	return u
}

// StripMarkup collapses page markup to its visible text, skipping script
// and style content and trimming each line's surrounding whitespace.
func StripMarkup(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		case html.TextNode:
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
