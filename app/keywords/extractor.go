package keywords

import (
	"strings"
	"unicode/utf8"

	rake "github.com/afjoseph/RAKE.Go"

	"newshub/app/news"
)

const (
	// MaxKeywords caps the number of scored phrases per article.
	MaxKeywords = 15

	fallbackMinWordLength = 5
	fallbackMaxWords      = 10
)

// Extractor produces scored keyword phrases for article text. Extraction
// never fails: when the underlying extractor yields nothing it falls
// back to unique long words with a zero score.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(text string) []news.Keyword {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	candidates := rake.RunRake(text)

	extracted := make([]news.Keyword, 0, MaxKeywords)
	for _, candidate := range candidates {
		extracted = append(extracted, news.Keyword{Phrase: candidate.Key, Score: candidate.Value})
		if len(extracted) == MaxKeywords {
			break
		}
	}
	if len(extracted) > 0 {
		return extracted
	}

	return fallbackLongWords(text)
}

// fallbackLongWords keeps unique words of at least five characters, in
// order of first appearance, with no meaningful score.
func fallbackLongWords(text string) []news.Keyword {
	seen := make(map[string]struct{})
	var extracted []news.Keyword

	for _, word := range strings.Fields(text) {
		if utf8.RuneCountInString(word) < fallbackMinWordLength {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		extracted = append(extracted, news.Keyword{Phrase: word})
		if len(extracted) == fallbackMaxWords {
			break
		}
	}
	return extracted
}
