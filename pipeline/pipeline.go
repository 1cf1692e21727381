package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // captures arrive PNG-encoded
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"quiz-helper/capture"
	"quiz-helper/crop"
	"quiz-helper/keywords"
	"quiz-helper/ocr"
	"quiz-helper/score"
	"quiz-helper/search"
)

// ErrRunInFlight is returned when a run is requested while a previous run
// still holds the capture source. Overlapping requests are rejected, not
// queued; the operator simply triggers again.
var ErrRunInFlight = errors.New("run already in flight")

// Recognizer is the OCR surface the pipeline consumes.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) ([]ocr.Fragment, error)
}

// Options carries every collaborator a pipeline needs. Dependencies are
// explicit so runs never touch ambient global state.
type Options struct {
	Capture    capture.Provider
	OCR        Recognizer
	Reducer    *keywords.Reducer
	Aggregator *search.Aggregator

	Question crop.Region
	Choices  crop.Region

	// UseRawQuestion sends the full question text to the search provider
	// instead of the reduced keywords (the historical behavior).
	UseRawQuestion bool
}

// Pipeline runs one capture-and-analyze cycle per trigger. Nothing is
// cached between runs; a fresh capture can legitimately yield a different
// ranking.
type Pipeline struct {
	opts Options
	mu   sync.Mutex
}

// Result is the ranked outcome of one run.
type Result struct {
	Question   string
	Keywords   []string
	Candidates []score.ScoredCandidate
	Elapsed    time.Duration
}

// Best returns the most-mentioned candidate.
func (r *Result) Best() (score.ScoredCandidate, bool) {
	return score.Best(r.Candidates)
}

// Worst returns the least-mentioned candidate, for contrast.
func (r *Result) Worst() (score.ScoredCandidate, bool) {
	return score.Worst(r.Candidates)
}

func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run captures the screen, reads the question and choices regions
// concurrently, reduces the question to a search query, aggregates the
// search corpus, and ranks the choices by occurrence count. Any sub-step
// failure aborts the whole run; there are no partial results.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if !p.mu.TryLock() {
		return nil, ErrRunInFlight
	}
	defer p.mu.Unlock()

	start := time.Now()

	raw, err := p.opts.Capture.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capturing: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("capturing: unreadable screenshot: %v", err)
	}

	// The two regions are independent and I/O-bound; read them in parallel
	// and join before going near the search provider.
	var questionFragments, choiceFragments []ocr.Fragment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fragments, err := p.readRegion(gctx, img, p.opts.Question)
		if err != nil {
			return fmt.Errorf("extracting question: %w", err)
		}
		questionFragments = fragments
		return nil
	})
	g.Go(func() error {
		fragments, err := p.readRegion(gctx, img, p.opts.Choices)
		if err != nil {
			return fmt.Errorf("extracting choices: %w", err)
		}
		choiceFragments = fragments
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	question := ocr.CleanQuestion(ocr.JoinFragments(questionFragments))
	terms := p.opts.Reducer.ReduceQuestion(question)
	candidates := p.opts.Reducer.SplitChoices(fragmentTexts(choiceFragments))
	log.Printf("Question: %s (keywords: %v, candidates: %d)", question, terms, len(candidates))

	query := strings.Join(terms, " ")
	if p.opts.UseRawQuestion || len(terms) == 0 {
		query = question
	}

	corpus, err := p.opts.Aggregator.Aggregate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	return &Result{
		Question:   question,
		Keywords:   terms,
		Candidates: score.Score(candidates, corpus),
		Elapsed:    time.Since(start),
	}, nil
}

func (p *Pipeline) readRegion(ctx context.Context, img image.Image, r crop.Region) ([]ocr.Fragment, error) {
	buf, err := crop.Extract(img, r)
	if err != nil {
		return nil, err
	}
	return p.opts.OCR.Recognize(ctx, buf)
}

func fragmentTexts(fragments []ocr.Fragment) []string {
	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		texts = append(texts, f.Text)
	}
	return texts
}
