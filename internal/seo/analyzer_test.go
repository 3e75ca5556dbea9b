package seo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordRun produces n easy-to-read words split into short sentences.
func wordRun(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("word ")
		if (i+1)%8 == 0 {
			b.WriteString(". ")
		}
	}
	return b.String()
}

func TestAnalyze_WellFormedPageScoresFull(t *testing.T) {
	title := "A Complete Guide to Growing Tomatoes in Your Own Garden"
	meta := strings.Repeat("a", 140)
	body := strings.Repeat("The cat sat on the mat. ", 100)

	page := fmt.Sprintf(`<html><head>
		<title>%s</title>
		<meta name="description" content="%s">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<link rel="canonical" href="https://example.com/guide">
	</head><body>
		<h1>Growing Tomatoes</h1>
		<img src="/tomato.jpg" alt="A ripe tomato">
		<p>%s</p>
	</body></html>`, title, meta, body)

	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{
		HTML:       []byte(page),
		URL:        "https://example.com/guide",
		StatusCode: 200,
	})

	assert.Empty(t, result.Issues)
	assert.Equal(t, 100, result.SEOScore)
	assert.Equal(t, title, result.Title)
	assert.Equal(t, meta, result.MetaDescription)
	assert.Equal(t, []string{"Growing Tomatoes"}, result.H1Tags)
	assert.Equal(t, "https://example.com/guide", result.CanonicalURL)
	assert.True(t, result.MobileFriendly)
	assert.True(t, result.HasSSL)
	assert.GreaterOrEqual(t, result.WordCount, 500)
}

func TestAnalyze_ThinInsecurePage(t *testing.T) {
	// No title, no meta description, 120 words, plain http -- but the page
	// does have an H1 and a viewport tag.
	page := `<html><head>
		<meta name="viewport" content="width=device-width, initial-scale=1">
	</head><body><h1>Welcome</h1><p>` + wordRun(119) + `</p></body></html>`

	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{
		HTML:       []byte(page),
		URL:        "http://example.com/",
		StatusCode: 200,
	})

	require.Equal(t, 120, result.WordCount)

	types := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		types = append(types, issue.Type)
	}
	assert.Equal(t, []string{"missing_title", "missing_meta_description", "thin_content", "missing_ssl"}, types)

	// 100 - 15 (title) - 8 (meta) - 8 (thin) - 15 (ssl), no bonuses
	assert.Equal(t, 54, result.SEOScore)
	assert.False(t, result.HasSSL)
	assert.True(t, result.MobileFriendly)
}

func TestAnalyze_Deterministic(t *testing.T) {
	page := []byte(`<html><head><title>Some page</title></head><body><h1>Hi</h1><p>` + wordRun(250) + `</p></body></html>`)
	input := AnalyzeInput{
		HTML:         page,
		URL:          "https://example.com/page",
		StatusCode:   200,
		ResponseTime: 120 * time.Millisecond,
		FetchedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	analyzer := NewAnalyzer(DefaultThresholds())
	first := analyzer.Analyze(input)
	second := analyzer.Analyze(input)

	assert.Equal(t, first, second)
}

func TestAnalyze_TitleLengthBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		titleLen int
		issue    string
	}{
		{"just under minimum", 29, "title_too_short"},
		{"at minimum", 30, ""},
		{"at maximum", 60, ""},
		{"just over maximum", 61, "title_too_long"},
	}

	analyzer := NewAnalyzer(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fmt.Sprintf(`<html><head><title>%s</title></head><body></body></html>`,
				strings.Repeat("t", tt.titleLen))
			result := analyzer.Analyze(AnalyzeInput{HTML: []byte(page), URL: "https://example.com/"})

			types := make(map[string]bool)
			for _, issue := range result.Issues {
				types[issue.Type] = true
			}

			assert.False(t, types["missing_title"])
			if tt.issue == "" {
				assert.False(t, types["title_too_short"])
				assert.False(t, types["title_too_long"])
			} else {
				assert.True(t, types[tt.issue])
			}
		})
	}
}

func TestAnalyze_MetaDescriptionBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		metaLen int
		issue   string
	}{
		{"just under minimum", 119, "meta_description_too_short"},
		{"at minimum", 120, ""},
		{"at maximum", 160, ""},
		{"just over maximum", 161, "meta_description_too_long"},
	}

	analyzer := NewAnalyzer(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := fmt.Sprintf(`<html><head><meta name="description" content="%s"></head><body></body></html>`,
				strings.Repeat("m", tt.metaLen))
			result := analyzer.Analyze(AnalyzeInput{HTML: []byte(page), URL: "https://example.com/"})

			types := make(map[string]bool)
			for _, issue := range result.Issues {
				types[issue.Type] = true
			}

			assert.False(t, types["missing_meta_description"])
			if tt.issue == "" {
				assert.False(t, types["meta_description_too_short"])
				assert.False(t, types["meta_description_too_long"])
			} else {
				assert.True(t, types[tt.issue])
			}
		})
	}
}

func TestAnalyze_H1Rules(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		issue string
	}{
		{"no h1", "<p>text</p>", "missing_h1"},
		{"single h1", "<h1>One</h1>", ""},
		{"two h1s", "<h1>One</h1><h1>Two</h1>", "multiple_h1"},
		{"empty h1 ignored", "<h1>  </h1>", "missing_h1"},
	}

	analyzer := NewAnalyzer(DefaultThresholds())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := "<html><body>" + tt.body + "</body></html>"
			result := analyzer.Analyze(AnalyzeInput{HTML: []byte(page), URL: "https://example.com/"})

			types := make(map[string]bool)
			for _, issue := range result.Issues {
				types[issue.Type] = true
			}

			if tt.issue == "" {
				assert.False(t, types["missing_h1"])
				assert.False(t, types["multiple_h1"])
			} else {
				assert.True(t, types[tt.issue])
			}
		})
	}
}

func TestAnalyze_MissingAltText(t *testing.T) {
	analyzer := NewAnalyzer(DefaultThresholds())

	withAlt := `<html><body><img src="a.jpg" alt="a"><img src="b.jpg" alt="b"></body></html>`
	result := analyzer.Analyze(AnalyzeInput{HTML: []byte(withAlt), URL: "https://example.com/"})
	for _, issue := range result.Issues {
		assert.NotEqual(t, "missing_alt_text", issue.Type)
	}

	missingAlt := `<html><body><img src="a.jpg" alt="a"><img src="b.jpg"><img src="c.jpg" alt=""></body></html>`
	result = analyzer.Analyze(AnalyzeInput{HTML: []byte(missingAlt), URL: "https://example.com/"})

	var found bool
	for _, issue := range result.Issues {
		if issue.Type == "missing_alt_text" {
			found = true
			assert.Contains(t, issue.Message, "2 image(s)")
		}
	}
	assert.True(t, found)
}

func TestAnalyze_HardToReadGatedOnWordCount(t *testing.T) {
	analyzer := NewAnalyzer(DefaultThresholds())

	// One enormous run-on sentence of polysyllabic words scores near zero on
	// the Flesch scale.
	hardWords := func(n int) string {
		return strings.Repeat("extraordinarily incomprehensible organizational responsibilities ", n) + "."
	}

	short := `<html><body><p>` + hardWords(30) + `</p></body></html>` // 120 words
	result := analyzer.Analyze(AnalyzeInput{HTML: []byte(short), URL: "https://example.com/"})
	require.Less(t, result.WordCount, 200)
	assert.Less(t, result.ReadabilityScore, 30.0)
	for _, issue := range result.Issues {
		assert.NotEqual(t, "hard_to_read", issue.Type)
	}

	long := `<html><body><p>` + hardWords(60) + `</p></body></html>` // 240 words
	result = analyzer.Analyze(AnalyzeInput{HTML: []byte(long), URL: "https://example.com/"})
	require.GreaterOrEqual(t, result.WordCount, 200)
	assert.Less(t, result.ReadabilityScore, 30.0)

	var found bool
	for _, issue := range result.Issues {
		if issue.Type == "hard_to_read" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAnalyze_WordCountSkipsScriptAndStyle(t *testing.T) {
	page := `<html><head><style>body { color: red; }</style></head><body>
		<script>var ignored = "one two three four five";</script>
		<noscript>also ignored here</noscript>
		<p>one two three</p>
	</body></html>`

	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{HTML: []byte(page), URL: "https://example.com/"})

	assert.Equal(t, 3, result.WordCount)
}

func TestAnalyze_MalformedHTMLBestEffort(t *testing.T) {
	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{
		HTML: []byte("<<<not <html <at all"),
		URL:  "https://example.com/",
	})

	// Missing features read as absent rather than aborting the page.
	types := make(map[string]bool)
	for _, issue := range result.Issues {
		types[issue.Type] = true
	}
	assert.True(t, types["missing_title"])
	assert.True(t, types["missing_h1"])
	assert.True(t, types["missing_viewport"])
}

func TestAnalyze_EveryIssueCarriesBothWordings(t *testing.T) {
	page := `<html><body><img src="x.jpg"><h1>a</h1><h1>b</h1></body></html>`

	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{HTML: []byte(page), URL: "http://example.com/"})

	require.NotEmpty(t, result.Issues)
	for _, issue := range result.Issues {
		assert.NotEmpty(t, issue.Message, issue.Type)
		assert.NotEmpty(t, issue.SimpleMessage, issue.Type)
		assert.NotEmpty(t, issue.Suggestion, issue.Type)
		assert.NotEmpty(t, issue.SimpleSuggestion, issue.Type)
	}
}

func TestAnalyze_PassesThroughFetchMetadata(t *testing.T) {
	fetchedAt := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	analyzer := NewAnalyzer(DefaultThresholds())
	result := analyzer.Analyze(AnalyzeInput{
		HTML:         []byte("<html><body></body></html>"),
		URL:          "https://example.com/page",
		StatusCode:   404,
		ResponseTime: 250 * time.Millisecond,
		FetchedAt:    fetchedAt,
	})

	assert.Equal(t, "https://example.com/page", result.URL)
	assert.Equal(t, 404, result.StatusCode)
	assert.Equal(t, int64(250), result.ResponseTimeMs)
	assert.Equal(t, fetchedAt, result.FetchedAt)
}
