package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word     string
		expected int
	}{
		{"cat", 1},
		{"hello", 2},
		{"banana", 3},
		{"mode", 1},
		{"rhythm", 1},
		{"strength", 1},
		{"readability", 5},
		{"a", 1},
		{"xyz", 1}, // no vowels still counts as one
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.expected, countSyllables(tt.word))
		})
	}
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 1, countSentences("no terminator at all"))
	assert.Equal(t, 2, countSentences("First. Second."))
	assert.Equal(t, 1, countSentences("Wait... what"))
	assert.Equal(t, 3, countSentences("One! Two? Three."))
}

func TestFleschReadingEase(t *testing.T) {
	assert.Equal(t, 0.0, FleschReadingEase(""))

	simple := strings.Repeat("The cat sat on the mat. ", 20)
	hard := strings.Repeat("extraordinarily incomprehensible organizational responsibilities ", 40) + "."

	simpleScore := FleschReadingEase(simple)
	hardScore := FleschReadingEase(hard)

	assert.Greater(t, simpleScore, hardScore)
	assert.GreaterOrEqual(t, simpleScore, 90.0)
	assert.LessOrEqual(t, simpleScore, 100.0)
	assert.Equal(t, 0.0, hardScore)
}

func TestReadabilityGrade(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, "Very Easy"},
		{90, "Very Easy"},
		{85, "Easy"},
		{75, "Fairly Easy"},
		{65, "Standard"},
		{55, "Fairly Difficult"},
		{40, "Difficult"},
		{30, "Difficult"},
		{29.9, "Very Confusing"},
		{0, "Very Confusing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ReadabilityGrade(tt.score), "score %v", tt.score)
	}
}
