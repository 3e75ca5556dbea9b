package seo

import (
	"math"
	"strings"
)

// FleschReadingEase computes the Flesch Reading Ease score of a block of text,
// clamped to [0, 100]. Empty text scores 0. Syllables are estimated by
// counting vowel groups, which is accurate enough for scoring bands.
func FleschReadingEase(text string) float64 {
	words := splitWords(text)
	if len(words) == 0 {
		return 0
	}

	sentences := countSentences(text)
	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	return math.Max(0, math.Min(100, score))
}

// ReadabilityGrade maps a Flesch Reading Ease score to its standard
// grade-level label.
func ReadabilityGrade(score float64) string {
	switch {
	case score >= 90:
		return "Very Easy"
	case score >= 80:
		return "Easy"
	case score >= 70:
		return "Fairly Easy"
	case score >= 60:
		return "Standard"
	case score >= 50:
		return "Fairly Difficult"
	case score >= 30:
		return "Difficult"
	default:
		return "Very Confusing"
	}
}

// countSentences counts runs of sentence-ending punctuation, never less than 1.
func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if !inTerminator {
				count++
			}
			inTerminator = true
		default:
			inTerminator = false
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// countSyllables estimates syllables in a word by counting vowel groups, with
// a silent trailing "e" discounted. Every word has at least one syllable.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}
