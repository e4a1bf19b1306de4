// Package study derives study aids (flashcard points, deck state, mind-map
// layouts) from a summarization's text.
package study

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// minFragmentLen is the trimmed length below which a sentence fragment is
// too short to stand alone as a study point.
const minFragmentLen = 10

// minFragments is the threshold under which the sentence split is judged
// too fine and the paragraph fallback kicks in.
const minFragments = 3

// Separators for the primary split: whitespace after sentence-ending
// punctuation, or a bullet/numbered-list marker at a line start.
var sentenceSepRE = regexp.MustCompile(`[.?!]\s+|\n\s*[-•*]\s*|\n\s*\d+\.\s*`)

var paragraphSepRE = regexp.MustCompile(`\n\s*\n`)

// SourceText picks the text study aids are derived from: the summary, or
// the raw input when no summary exists.
func SourceText(inputText, summary string) string {
	if s := strings.TrimSpace(summary); s != "" {
		return s
	}
	return strings.TrimSpace(inputText)
}

// Segment splits a block of text into ordered study points. Sentence-like
// fragments longer than ten characters are preferred; when fewer than three
// qualify, the text is re-split on blank lines instead (with no length
// filter). Deterministic for identical input.
func Segment(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	points := splitSentences(text)
	if len(points) < minFragments {
		points = splitParagraphs(text)
	}
	return points
}

func splitSentences(text string) []string {
	var fragments []string
	start := 0
	for _, loc := range sentenceSepRE.FindAllStringIndex(text, -1) {
		end := loc[0]
		if isSentencePunct(text[loc[0]]) {
			// Keep the punctuation mark with its sentence.
			end = loc[0] + 1
		}
		fragments = append(fragments, text[start:end])
		start = loc[1]
	}
	fragments = append(fragments, text[start:])

	var points []string
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" || utf8.RuneCountInString(f) <= minFragmentLen {
			continue
		}
		points = append(points, f)
	}
	return points
}

func splitParagraphs(text string) []string {
	var points []string
	for _, p := range paragraphSepRE.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		points = append(points, p)
	}
	return points
}

func isSentencePunct(b byte) bool {
	return b == '.' || b == '?' || b == '!'
}

// SegmentCache memoizes Segment by source text so repeated derivations of
// the same summarization (flashcards, mind map, study points endpoint) do
// not re-run the split. Safe for concurrent use.
type SegmentCache struct {
	mu      sync.Mutex
	entries map[string][]string
}

const segmentCacheLimit = 128

func NewSegmentCache() *SegmentCache {
	return &SegmentCache{entries: make(map[string][]string)}
}

func (c *SegmentCache) Segment(text string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if points, ok := c.entries[text]; ok {
		return points
	}
	if len(c.entries) >= segmentCacheLimit {
		c.entries = make(map[string][]string)
	}
	points := Segment(text)
	c.entries[text] = points
	return points
}
