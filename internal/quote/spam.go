package quote

import (
	"regexp"
	"time"
)

// maxMessageURLs is the number of URL-like substrings tolerated in the
// free-text message before the submission is flagged.
const maxMessageURLs = 2

var urlLikeRegex = regexp.MustCompile(`(?i)(?:https?://|www\.)\S+`)

// spamPhrases is a small fixed list of indicator patterns: pharmaceutical
// spam keywords, prize and lottery language, and link-bait phrasing.
// Callers must never echo which pattern fired.
var spamPhrases = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"pharma-keywords", regexp.MustCompile(`(?i)\b(?:viagra|cialis|levitra|tramadol)\b`)},
	{"cheap-pills", regexp.MustCompile(`(?i)cheap[\s-]+(?:pills|meds|drugs|medication)`)},
	{"prize-language", regexp.MustCompile(`(?i)\b(?:lottery|jackpot|you (?:have |'ve )?won|claim your prize)\b`)},
	{"click-here", regexp.MustCompile(`(?i)click here`)},
	{"seo-offer", regexp.MustCompile(`(?i)\b(?:seo services|boost your (?:ranking|traffic)|backlinks?)\b`)},
	{"money-scheme", regexp.MustCompile(`(?i)\b(?:make money fast|work from home|crypto investment)\b`)},
}

// Indicators scans a sanitized message for spam signals and returns the
// names of every heuristic that fired. An empty result means clean.
func Indicators(message string) []string {
	var indicators []string

	if len(urlLikeRegex.FindAllString(message, -1)) > maxMessageURLs {
		indicators = append(indicators, "excessive-links")
	}

	for _, phrase := range spamPhrases {
		if phrase.pattern.MatchString(message) {
			indicators = append(indicators, phrase.name)
		}
	}

	return indicators
}

// TooFast reports whether the form was submitted implausibly quickly.
// submittedAt is the client-supplied epoch in milliseconds captured when the
// form was rendered; zero or negative means the client never sent it, in
// which case the check is skipped. A timestamp from the future also counts
// as too fast, since no human fills a form before seeing it.
func TooFast(submittedAt int64, now time.Time, minDwell time.Duration) bool {
	if submittedAt <= 0 {
		return false
	}
	elapsed := now.Sub(time.UnixMilli(submittedAt))
	return elapsed < minDwell
}
