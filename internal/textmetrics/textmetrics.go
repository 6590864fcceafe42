// Package textmetrics computes word counts and estimated reading times for
// markdown post bodies. The stripping heuristic and the words-per-minute
// constant are part of the published snapshot format; changing either changes
// every generated document.
package textmetrics

import (
	"regexp"
	"strings"
)

// WordsPerMinute is the reading-speed constant used by EstimateReadingTime.
const WordsPerMinute = 200

var (
	fencedCode  = regexp.MustCompile("(?s)```.*?```")
	inlineCode  = regexp.MustCompile("`[^`]*`")
	imageRef    = regexp.MustCompile(`!\[[^\]]*]\([^)]+\)`)
	linkRef     = regexp.MustCompile(`\[[^\]]*]\([^)]+\)`)
	rawTag      = regexp.MustCompile(`<[^>]+>`)
	punctuation = regexp.MustCompile(`[#>*_~\\-]+`)
	whitespace  = regexp.MustCompile(`\s+`)
	latinRun    = regexp.MustCompile(`[A-Za-z0-9]+`)
)

// WordCount counts words in a markdown body. Markdown structure is stripped
// first (fenced code, inline code, images, links, raw tags, punctuation
// markers, in that order). Every CJK ideograph counts as one word; every
// contiguous run of Latin letters or digits counts as one word.
func WordCount(markdown string) int {
	if markdown == "" {
		return 0
	}

	text := fencedCode.ReplaceAllString(markdown, " ")
	text = inlineCode.ReplaceAllString(text, " ")
	text = imageRef.ReplaceAllString(text, " ")
	text = linkRef.ReplaceAllString(text, " ")
	text = rawTag.ReplaceAllString(text, " ")
	text = punctuation.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	cjk := 0
	var rest strings.Builder
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			cjk++
			rest.WriteByte(' ')
			continue
		}
		rest.WriteRune(r)
	}

	return cjk + len(latinRun.FindAllString(rest.String(), -1))
}

// EstimateReadingTime converts a word count into whole minutes at
// WordsPerMinute, floored at one minute for any non-empty text.
func EstimateReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	minutes := (wordCount + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
