package seo

import (
	"fmt"

	"seocrawler/internal/models"
)

// Penalty per issue severity and bonus values applied on top of the base score.
const (
	baseScore       = 100
	criticalPenalty = 15
	warningPenalty  = 8
	infoPenalty     = 3

	titleBonus       = 5
	metaBonus        = 5
	richContentBonus = 5
	readabilityBonus = 3
	readabilityNudge = 1
)

// Thresholds holds the numeric boundaries the rule set and the bonus
// calculation work from. The defaults are a reasonable starting point, not a
// standard, so callers can tune them without touching the rules themselves.
type Thresholds struct {
	TitleMinLength    int
	TitleMaxLength    int
	TitleBonusMin     int
	TitleBonusMax     int
	MetaMinLength     int
	MetaMaxLength     int
	ThinContentWords  int
	RichContentWords  int
	ReadabilityWords  int
	HardToReadBelow   float64
	GoodReadability   float64
	DecentReadability float64
}

// DefaultThresholds returns the stock rule boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMinLength:    30,
		TitleMaxLength:    60,
		TitleBonusMin:     50,
		TitleBonusMax:     60,
		MetaMinLength:     120,
		MetaMaxLength:     160,
		ThinContentWords:  300,
		RichContentWords:  500,
		ReadabilityWords:  200,
		HardToReadBelow:   30,
		GoodReadability:   70,
		DecentReadability: 60,
	}
}

// ruleInput is everything a rule may inspect.
type ruleInput struct {
	features    *pageFeatures
	hasSSL      bool
	readability float64
}

// ruleFunc checks one rule and returns the issue it produces, or nil.
type ruleFunc func(in ruleInput, t Thresholds) *models.Issue

// ruleTable is evaluated top to bottom. The order is part of the contract:
// issue ordering in the output is stable across runs for identical input.
var ruleTable = []ruleFunc{
	checkMissingTitle,
	checkTitleTooShort,
	checkTitleTooLong,
	checkMissingMetaDescription,
	checkMetaDescriptionTooShort,
	checkMetaDescriptionTooLong,
	checkMissingH1,
	checkMultipleH1,
	checkThinContent,
	checkMissingAltText,
	checkMissingSSL,
	checkMissingViewport,
	checkHardToRead,
}

// evaluate runs the full rule table against one page.
func evaluate(in ruleInput, t Thresholds) []models.Issue {
	issues := make([]models.Issue, 0)
	for _, rule := range ruleTable {
		if issue := rule(in, t); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// scoreFor computes the final SEO score: base score minus severity penalties,
// plus bonuses for good practices, clamped to [0, 100].
func scoreFor(issues []models.Issue, in ruleInput, t Thresholds) int {
	score := baseScore

	for _, issue := range issues {
		switch issue.Severity {
		case models.SeverityCritical:
			score -= criticalPenalty
		case models.SeverityWarning:
			score -= warningPenalty
		case models.SeverityInfo:
			score -= infoPenalty
		}
	}

	if n := runeLen(in.features.title); n >= t.TitleBonusMin && n <= t.TitleBonusMax {
		score += titleBonus
	}
	if n := runeLen(in.features.metaDescription); n >= t.MetaMinLength && n <= t.MetaMaxLength {
		score += metaBonus
	}
	if in.features.wordCount >= t.RichContentWords {
		score += richContentBonus
	}

	// Readability only counts once there is enough text for the formula to
	// mean anything.
	if in.features.wordCount >= t.ReadabilityWords {
		switch {
		case in.readability >= t.GoodReadability:
			score += readabilityBonus
		case in.readability >= t.DecentReadability:
			score += readabilityNudge
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func runeLen(s string) int {
	return len([]rune(s))
}

func checkMissingTitle(in ruleInput, t Thresholds) *models.Issue {
	if in.features.title != "" {
		return nil
	}
	return &models.Issue{
		Type:             "missing_title",
		Severity:         models.SeverityCritical,
		Message:          "Page is missing a title tag",
		SimpleMessage:    "This page has no title",
		Suggestion:       fmt.Sprintf("Add a descriptive title tag between %d-%d characters", t.TitleBonusMin, t.TitleBonusMax),
		SimpleSuggestion: "Give the page a short name that says what it's about",
	}
}

func checkTitleTooShort(in ruleInput, t Thresholds) *models.Issue {
	n := runeLen(in.features.title)
	if n == 0 || n >= t.TitleMinLength {
		return nil
	}
	return &models.Issue{
		Type:             "title_too_short",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("Page title is only %d characters long", n),
		SimpleMessage:    "The page title is very short",
		Suggestion:       fmt.Sprintf("Aim for %d-%d characters for optimal display in search results", t.TitleBonusMin, t.TitleBonusMax),
		SimpleSuggestion: "Make the title a bit longer and more descriptive",
	}
}

func checkTitleTooLong(in ruleInput, t Thresholds) *models.Issue {
	n := runeLen(in.features.title)
	if n <= t.TitleMaxLength {
		return nil
	}
	return &models.Issue{
		Type:             "title_too_long",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("Page title is %d characters long and may be truncated", n),
		SimpleMessage:    "The page title is too long",
		Suggestion:       fmt.Sprintf("Keep the title under %d characters to avoid truncation in search results", t.TitleMaxLength),
		SimpleSuggestion: "Shorten the title so search engines show all of it",
	}
}

func checkMissingMetaDescription(in ruleInput, _ Thresholds) *models.Issue {
	if in.features.metaDescription != "" {
		return nil
	}
	return &models.Issue{
		Type:             "missing_meta_description",
		Severity:         models.SeverityWarning,
		Message:          "Page is missing a meta description",
		SimpleMessage:    "This page has no summary for search engines",
		Suggestion:       "Add a meta description between 120-160 characters",
		SimpleSuggestion: "Write a one-or-two sentence summary of the page",
	}
}

func checkMetaDescriptionTooShort(in ruleInput, t Thresholds) *models.Issue {
	n := runeLen(in.features.metaDescription)
	if n == 0 || n >= t.MetaMinLength {
		return nil
	}
	return &models.Issue{
		Type:             "meta_description_too_short",
		Severity:         models.SeverityInfo,
		Message:          fmt.Sprintf("Meta description is only %d characters long", n),
		SimpleMessage:    "The search engine summary is short",
		Suggestion:       fmt.Sprintf("Aim for %d-%d characters for optimal display in search results", t.MetaMinLength, t.MetaMaxLength),
		SimpleSuggestion: "Expand the summary so it fills the search result snippet",
	}
}

func checkMetaDescriptionTooLong(in ruleInput, t Thresholds) *models.Issue {
	n := runeLen(in.features.metaDescription)
	if n <= t.MetaMaxLength {
		return nil
	}
	return &models.Issue{
		Type:             "meta_description_too_long",
		Severity:         models.SeverityInfo,
		Message:          fmt.Sprintf("Meta description is %d characters long", n),
		SimpleMessage:    "The search engine summary is too long",
		Suggestion:       fmt.Sprintf("Keep the meta description under %d characters", t.MetaMaxLength),
		SimpleSuggestion: "Trim the summary so it isn't cut off in search results",
	}
}

func checkMissingH1(in ruleInput, _ Thresholds) *models.Issue {
	if len(in.features.h1Tags) > 0 {
		return nil
	}
	return &models.Issue{
		Type:             "missing_h1",
		Severity:         models.SeverityCritical,
		Message:          "Page is missing an H1 heading",
		SimpleMessage:    "This page has no main heading",
		Suggestion:       "Add a single H1 heading that describes the page content",
		SimpleSuggestion: "Add one big heading at the top of the page",
	}
}

func checkMultipleH1(in ruleInput, _ Thresholds) *models.Issue {
	if len(in.features.h1Tags) <= 1 {
		return nil
	}
	return &models.Issue{
		Type:             "multiple_h1",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("Page has %d H1 headings", len(in.features.h1Tags)),
		SimpleMessage:    "This page has more than one main heading",
		Suggestion:       "Use only one H1 heading per page",
		SimpleSuggestion: "Keep a single big heading and demote the rest",
	}
}

func checkThinContent(in ruleInput, t Thresholds) *models.Issue {
	if in.features.wordCount >= t.ThinContentWords {
		return nil
	}
	return &models.Issue{
		Type:             "thin_content",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("Page has only %d words", in.features.wordCount),
		SimpleMessage:    "This page has very little text",
		Suggestion:       fmt.Sprintf("Add more quality content, aiming for at least %d words", t.ThinContentWords),
		SimpleSuggestion: "Write more about the topic so visitors and search engines find it useful",
	}
}

func checkMissingAltText(in ruleInput, _ Thresholds) *models.Issue {
	if in.features.imagesNoAlt == 0 {
		return nil
	}
	return &models.Issue{
		Type:             "missing_alt_text",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("%d image(s) missing alt text", in.features.imagesNoAlt),
		SimpleMessage:    "Some images have no text description",
		Suggestion:       "Add descriptive alt text to all images for accessibility and SEO",
		SimpleSuggestion: "Describe each image in words for people who can't see it",
	}
}

func checkMissingSSL(in ruleInput, _ Thresholds) *models.Issue {
	if in.hasSSL {
		return nil
	}
	return &models.Issue{
		Type:             "missing_ssl",
		Severity:         models.SeverityCritical,
		Message:          "Page does not use HTTPS",
		SimpleMessage:    "This page isn't served over a secure connection",
		Suggestion:       "Enable HTTPS/SSL for better security and SEO",
		SimpleSuggestion: "Ask your hosting provider to turn on the secure padlock",
	}
}

func checkMissingViewport(in ruleInput, _ Thresholds) *models.Issue {
	if in.features.hasViewport {
		return nil
	}
	return &models.Issue{
		Type:             "missing_viewport",
		Severity:         models.SeverityCritical,
		Message:          "Page is missing a viewport meta tag for mobile devices",
		SimpleMessage:    "This page isn't set up for phones",
		Suggestion:       `Add <meta name="viewport" content="width=device-width, initial-scale=1">`,
		SimpleSuggestion: "Make the page adjust itself to small screens",
	}
}

func checkHardToRead(in ruleInput, t Thresholds) *models.Issue {
	if in.features.wordCount < t.ReadabilityWords || in.readability >= t.HardToReadBelow {
		return nil
	}
	return &models.Issue{
		Type:             "hard_to_read",
		Severity:         models.SeverityWarning,
		Message:          fmt.Sprintf("Flesch Reading Ease score is %.0f", in.readability),
		SimpleMessage:    "The text on this page is hard to read",
		Suggestion:       "Use shorter sentences and simpler words to improve readability",
		SimpleSuggestion: "Break long sentences up and swap complicated words for plain ones",
	}
}
