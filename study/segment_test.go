package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cellSummary = "The mitochondria is the powerhouse of the cell. It produces ATP. Photosynthesis occurs in chloroplasts."

func TestSegment_Sentences(t *testing.T) {
	points := Segment(cellSummary)

	require.Len(t, points, 3)
	assert.Equal(t, "The mitochondria is the powerhouse of the cell.", points[0])
	assert.Equal(t, "It produces ATP.", points[1])
	assert.Equal(t, "Photosynthesis occurs in chloroplasts.", points[2])
}

func TestSegment_Deterministic(t *testing.T) {
	first := Segment(cellSummary)
	second := Segment(cellSummary)
	assert.Equal(t, first, second)
}

func TestSegment_DropsShortFragments(t *testing.T) {
	text := "Hi. No. The quick brown fox jumps over the lazy dog. Another long sentence lives in this text. A third long sentence rounds out the set."
	points := Segment(text)

	require.Len(t, points, 3)
	for _, p := range points {
		assert.Greater(t, len(p), 10)
	}
}

func TestSegment_BulletMarkers(t *testing.T) {
	text := "Topics:\n- first bullet point here\n- second bullet point here\n- third bullet point here"
	points := Segment(text)

	require.Len(t, points, 3)
	assert.Equal(t, "first bullet point here", points[0])
	assert.Equal(t, "second bullet point here", points[1])
	assert.Equal(t, "third bullet point here", points[2])
}

func TestSegment_NumberedMarkers(t *testing.T) {
	text := "Steps to follow for this recipe:\n1. preheat the oven fully\n2. mix all dry ingredients\n3. bake for thirty minutes"
	points := Segment(text)

	require.Len(t, points, 4)
	assert.Equal(t, "Steps to follow for this recipe:", points[0])
	assert.Equal(t, "preheat the oven fully", points[1])
	assert.Equal(t, "mix all dry ingredients", points[2])
	assert.Equal(t, "bake for thirty minutes", points[3])
}

func TestSegment_ParagraphFallback(t *testing.T) {
	// Every sentence fragment is at or under the length floor, so the
	// paragraph split applies, which keeps them all.
	text := "Short one.\n\nTiny.\n\nAlso small."
	points := Segment(text)

	require.Len(t, points, 3)
	assert.Equal(t, "Short one.", points[0])
	assert.Equal(t, "Tiny.", points[1])
	assert.Equal(t, "Also small.", points[2])
}

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, Segment(""))
	assert.Empty(t, Segment("   \n\t  "))
}

func TestSourceText(t *testing.T) {
	assert.Equal(t, "summary text", SourceText("input text", "summary text"))
	assert.Equal(t, "input text", SourceText("input text", ""))
	assert.Equal(t, "input text", SourceText("input text", "  \n "))
	assert.Equal(t, "", SourceText("", ""))
}

func TestSegmentCache_ReturnsSameResult(t *testing.T) {
	cache := NewSegmentCache()

	first := cache.Segment(cellSummary)
	second := cache.Segment(cellSummary)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, Segment(cellSummary), first)
}

func TestSegmentCache_EvictsBeyondLimit(t *testing.T) {
	cache := NewSegmentCache()
	for i := 0; i < segmentCacheLimit+10; i++ {
		cache.Segment(cellSummary + string(rune('a'+i%26)) + string(rune('a'+i/26)))
	}

	// Still serves correct results after the internal reset.
	points := cache.Segment(cellSummary)
	assert.Len(t, points, 3)
}
