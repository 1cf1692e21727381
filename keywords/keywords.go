package keywords

import "strings"

// DefaultTopN is the number of salient terms kept from a question.
const DefaultTopN = 4

// Segmenter provides word segmentation and statistical keyword extraction
// for mixed Chinese/English text.
type Segmenter interface {
	// Cut splits text into word/phrase tokens.
	Cut(text string) []string
	// Extract returns up to topN salient terms by weight, in the
	// extractor's natural order.
	Extract(text string, topN int) []string
}

// Reducer turns recognized question text into a focused search query and
// recovered choice fragments into discrete candidates.
type Reducer struct {
	seg  Segmenter
	topN int
}

func NewReducer(seg Segmenter, topN int) *Reducer {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Reducer{seg: seg, topN: topN}
}

// ReduceQuestion returns the top-N salient terms of the question text.
// Ties keep the extractor's output order.
func (r *Reducer) ReduceQuestion(rawText string) []string {
	rawText = strings.TrimSpace(rawText)
	if rawText == "" {
		return nil
	}
	terms := r.seg.Extract(rawText, r.topN)
	if len(terms) > r.topN {
		terms = terms[:r.topN]
	}
	return terms
}

// SplitChoices converts OCR fragments from the choices region into
// candidate strings. Multiple fragments pass through verbatim in order.
// A single fragment means OCR merged the visually separated choices, so it
// is segmented into constituent tokens. An empty result is a legitimate
// terminal state, not an error.
func (r *Reducer) SplitChoices(fragments []string) []string {
	var frags []string
	for _, f := range fragments {
		if f = strings.TrimSpace(f); f != "" {
			frags = append(frags, f)
		}
	}

	switch len(frags) {
	case 0:
		return nil
	case 1:
		var candidates []string
		for _, tok := range r.seg.Cut(frags[0]) {
			if tok = strings.TrimSpace(tok); tok != "" {
				candidates = append(candidates, tok)
			}
		}
		return candidates
	default:
		return frags
	}
}
