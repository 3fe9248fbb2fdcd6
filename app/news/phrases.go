package news

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// MaxNgramSize bounds derived phrases to four-word windows.
	MaxNgramSize = 4
	// MaxPhrases caps the candidate list to keep search queries bounded.
	MaxPhrases = 30
)

var tokenSplitter = regexp.MustCompile(`[\s,]+`)

const surroundingPunct = `'"()[]{}:;,.!?-/`

// DeriveKeywordPhrases tokenizes search text and generates contiguous
// n-grams from MaxNgramSize words down to single words. Longer phrases
// sort first, grams shorter than two characters are discarded, and the
// result is capped at MaxPhrases entries.
func DeriveKeywordPhrases(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var tokens []string
	for _, raw := range tokenSplitter.Split(text, -1) {
		token := strings.Trim(raw, surroundingPunct)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	maxSize := MaxNgramSize
	if len(tokens) < maxSize {
		maxSize = len(tokens)
	}

	seen := make(map[string]struct{})
	var phrases []string
	for size := maxSize; size >= 1; size-- {
		for i := 0; i+size <= len(tokens); i++ {
			gram := strings.Join(tokens[i:i+size], " ")
			if len(gram) < 2 {
				continue
			}
			if _, ok := seen[gram]; ok {
				continue
			}
			seen[gram] = struct{}{}
			phrases = append(phrases, gram)
		}
	}

	sort.SliceStable(phrases, func(i, j int) bool {
		wordsI := strings.Count(phrases[i], " ")
		wordsJ := strings.Count(phrases[j], " ")
		if wordsI != wordsJ {
			return wordsI > wordsJ
		}
		return len(phrases[i]) > len(phrases[j])
	})

	if len(phrases) > MaxPhrases {
		phrases = phrases[:MaxPhrases]
	}
	return phrases
}
