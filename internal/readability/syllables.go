package readability

import "strings"

// syllableExceptions fixes counts the vowel-group heuristic gets wrong,
// including common legal vocabulary.
var syllableExceptions = map[string]int{
	"are": 1, "ore": 1, "our": 1, "sure": 1, "were": 1, "your": 1,
	"come": 1, "some": 1, "done": 1, "give": 1, "have": 1, "live": 1, "love": 1,
	"business": 2, "wednesday": 3, "february": 4, "library": 3, "secretary": 4,
	"area": 2, "idea": 2, "korea": 2, "guinea": 2, "people": 2,
	"plaintiff": 2, "defendant": 3, "appeal": 2, "court": 1, "judge": 1,
	"jury": 2, "attorney": 3, "counsel": 2, "witness": 2, "evidence": 3,
	"affidavit": 4, "deposition": 4, "testimony": 4, "verdict": 2,
}

// contractionSuffixes add no syllable of their own
var contractionSuffixes = map[string]bool{
	"s": true, "d": true, "ll": true, "t": true, "m": true, "ve": true, "re": true,
}

const vowels = "aeiouy"

// CountSyllables estimates the syllables in a single word. Non-letters are
// ignored; a word with no letters has zero syllables, any other word at least one.
func CountSyllables(word string) int {
	word = keepLetters(strings.ToLower(strings.TrimSpace(word)))
	if word == "" {
		return 0
	}

	if n, ok := syllableExceptions[word]; ok {
		return n
	}

	if strings.Contains(word, "-") {
		total := 0
		for _, part := range strings.Split(word, "-") {
			total += CountSyllables(part)
		}
		return total
	}

	if head, tail, found := strings.Cut(word, "'"); found {
		tail, _, _ = strings.Cut(tail, "'")
		if contractionSuffixes[tail] {
			return CountSyllables(head)
		}
		return CountSyllables(head) + CountSyllables(tail)
	}

	if strings.HasSuffix(word, "e") && len(word) > 2 {
		word = word[:len(word)-1]
	}

	count := 0
	prevVowel := false
	last := len(word) - 1
	for i := 0; i < len(word); i++ {
		isVowel := strings.IndexByte(vowels, word[i]) >= 0
		if isVowel && !prevVowel {
			count++
		}
		// terminal y after a consonant
		if word[i] == 'y' && i == last && i > 0 && !isVowelByte(word[i-1]) && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	n := len(word)
	if n > 2 && strings.HasSuffix(word, "le") && !isVowelByte(word[n-3]) {
		count++
	} else if n > 3 && strings.HasSuffix(word, "les") && !isVowelByte(word[n-4]) {
		count++
	}

	if count < 1 {
		return 1
	}
	return count
}

func keepLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '\'' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isVowelByte(c byte) bool {
	return strings.IndexByte(vowels, c) >= 0
}
