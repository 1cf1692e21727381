package keywords

import (
	"github.com/yanyiwu/gojieba"
)

// Jieba is the production Segmenter, backed by jieba's dictionary
// segmentation and TF-IDF keyword extraction.
type Jieba struct {
	x *gojieba.Jieba
}

func NewJieba() *Jieba {
	return &Jieba{x: gojieba.NewJieba()}
}

func (j *Jieba) Cut(text string) []string {
	return j.x.Cut(text, true)
}

func (j *Jieba) Extract(text string, topN int) []string {
	return j.x.Extract(text, topN)
}

// Free releases the underlying dictionaries. Call once on shutdown.
func (j *Jieba) Free() {
	j.x.Free()
}
