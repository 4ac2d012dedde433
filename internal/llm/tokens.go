package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding used to budget prompt input
const Encoding = "cl100k_base"

type tokenizer interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

var (
	defaultTokenizer     tokenizer
	defaultTokenizerErr  error
	defaultTokenizerOnce sync.Once
)

func loadTokenizer() (tokenizer, error) {
	defaultTokenizerOnce.Do(func() {
		tk, err := tiktoken.GetEncoding(Encoding)
		if err != nil {
			defaultTokenizerErr = err
			return
		}
		defaultTokenizer = tk
	})
	return defaultTokenizer, defaultTokenizerErr
}

// truncateTokens cuts text to at most maxTokens tokens.
// Without a tokenizer it falls back to four characters per token.
func truncateTokens(tk tokenizer, text string, maxTokens int) (string, bool) {
	if maxTokens <= 0 || text == "" {
		return text, false
	}
	if tk == nil {
		runes := []rune(text)
		limit := maxTokens * 4
		if len(runes) <= limit {
			return text, false
		}
		return string(runes[:limit]), true
	}

	tokens := tk.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, false
	}
	return tk.Decode(tokens[:maxTokens]), true
}
