package news

import (
	"encoding/json"
	"fmt"
)

// Keyword is one extracted phrase with its relevance score. It is stored
// as a two-element [phrase, score] JSON array so that substring search
// over the serialized keywords column keeps working.
type Keyword struct {
	Phrase string
	Score  float64
}

func (k Keyword) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{k.Phrase, k.Score})
}

func (k *Keyword) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("keyword entry is not an array: %w", err)
	}
	if len(pair) < 1 {
		return fmt.Errorf("keyword entry is empty")
	}
	if err := json.Unmarshal(pair[0], &k.Phrase); err != nil {
		return fmt.Errorf("keyword phrase: %w", err)
	}
	if len(pair) > 1 {
		if err := json.Unmarshal(pair[1], &k.Score); err != nil {
			return fmt.Errorf("keyword score: %w", err)
		}
	}
	return nil
}
