package langdetect

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
)

const (
	// DefaultMinConfidence is the floor below which a prediction is
	// discarded and an empty code is returned.
	DefaultMinConfidence = 0.7

	// Texts shorter than this are repeated before prediction, which
	// measurably improves short-text accuracy.
	shortTextThreshold = 20
)

var urlPattern = regexp.MustCompile(`http\S+`)

// noisePattern strips everything except letters, digits, underscores and
// whitespace, keeping all scripts intact for multilingual input.
var noisePattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Detector wraps the language identification model. The model is loaded
// lazily on first use; later reads are lock-free.
type Detector struct {
	minConfidence float64

	loadOnce sync.Once
	model    lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{minConfidence: DefaultMinConfidence}
}

// CleanText lowercases the input, removes URLs and strips punctuation
// while preserving multilingual word characters.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = noisePattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Run detects the language of text and returns an ISO 639-1 code with
// the model's confidence. Below the confidence floor the code is empty
// and the raw confidence is still reported. Cleaned-empty input skips
// the model entirely.
func (d *Detector) Run(text string) (string, float64) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", 0.0
	}

	if utf8.RuneCountInString(cleaned) < shortTextThreshold {
		cleaned = strings.Join([]string{cleaned, cleaned, cleaned}, " ")
	}

	values := d.getModel().ComputeLanguageConfidenceValues(cleaned)
	if len(values) == 0 {
		return "", 0.0
	}

	top := values[0]
	confidence := top.Value()
	if confidence < d.minConfidence {
		return "", confidence
	}

	return isoCode(top.Language()), confidence
}

func (d *Detector) getModel() lingua.LanguageDetector {
	d.loadOnce.Do(func() {
		d.model = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})
	return d.model
}

// isoCode maps a model label to its canonical lowercase ISO 639-1 form.
func isoCode(lang lingua.Language) string {
	code := strings.ToLower(lang.IsoCode639_1().String())
	if tag, err := language.Parse(code); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	return code
}
