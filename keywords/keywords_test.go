package keywords

import (
	"reflect"
	"strings"
	"testing"
)

// fakeSegmenter splits on a fixed separator and extracts the longest words
// first, keeping tests independent of the jieba dictionaries.
type fakeSegmenter struct {
	cuts     map[string][]string
	extracts map[string][]string
}

func (f *fakeSegmenter) Cut(text string) []string {
	if toks, ok := f.cuts[text]; ok {
		return toks
	}
	return strings.Fields(text)
}

func (f *fakeSegmenter) Extract(text string, topN int) []string {
	terms := f.extracts[text]
	if len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

func TestReduceQuestion(t *testing.T) {
	seg := &fakeSegmenter{extracts: map[string][]string{
		"What is the capital of France?": {"capital", "France", "what"},
	}}

	r := NewReducer(seg, 2)
	got := r.ReduceQuestion("What is the capital of France?")
	want := []string{"capital", "France"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReduceQuestion = %v, want %v", got, want)
	}
}

func TestReduceQuestionEmpty(t *testing.T) {
	r := NewReducer(&fakeSegmenter{}, 4)
	if got := r.ReduceQuestion("   "); got != nil {
		t.Errorf("ReduceQuestion(blank) = %v, want nil", got)
	}
}

func TestReduceQuestionDefaultTopN(t *testing.T) {
	r := NewReducer(&fakeSegmenter{}, 0)
	if r.topN != DefaultTopN {
		t.Errorf("topN = %d, want %d", r.topN, DefaultTopN)
	}
}

func TestSplitChoicesVerbatim(t *testing.T) {
	r := NewReducer(&fakeSegmenter{}, 4)
	got := r.SplitChoices([]string{"cat", "dog", "bird"})
	want := []string{"cat", "dog", "bird"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitChoices = %v, want %v", got, want)
	}
}

func TestSplitChoicesMergedFragment(t *testing.T) {
	seg := &fakeSegmenter{cuts: map[string][]string{
		"catdogbird": {"cat", "dog", "bird"},
	}}
	r := NewReducer(seg, 4)

	got := r.SplitChoices([]string{"catdogbird"})
	want := []string{"cat", "dog", "bird"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitChoices = %v, want %v", got, want)
	}
}

func TestSplitChoicesEmpty(t *testing.T) {
	seg := &fakeSegmenter{cuts: map[string][]string{"???": nil}}
	r := NewReducer(seg, 4)

	if got := r.SplitChoices(nil); got != nil {
		t.Errorf("SplitChoices(nil) = %v, want nil", got)
	}
	if got := r.SplitChoices([]string{" ", ""}); got != nil {
		t.Errorf("SplitChoices(blank fragments) = %v, want nil", got)
	}
	// A single fragment that segments to nothing is still a valid empty set.
	if got := r.SplitChoices([]string{"???"}); got != nil {
		t.Errorf("SplitChoices(unsegmentable) = %v, want nil", got)
	}
}

func TestSplitChoicesTrimsWhitespace(t *testing.T) {
	r := NewReducer(&fakeSegmenter{}, 4)
	got := r.SplitChoices([]string{" cat ", "dog", "  "})
	want := []string{"cat", "dog"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitChoices = %v, want %v", got, want)
	}
}
