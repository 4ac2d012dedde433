package extract

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// phraseStopwords are removed before n-gram generation
var phraseStopwords = wordSet(
	"a", "an", "the", "and", "or", "but", "if", "because", "as", "what", "when",
	"where", "how", "to", "of", "for", "with", "in", "on", "by", "from", "up", "about",
	"into", "over", "after", "be", "is", "am", "are", "was", "were", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing", "can", "could",
	"should", "would", "might", "must", "shall", "will", "may", "that", "which", "who",
	"whom", "whose", "this", "these", "those", "it", "its", "they", "them", "their",
	"we", "us", "our", "i", "me", "my", "mine", "you", "your", "yours", "he", "she",
	"him", "her", "his", "hers", "at", "so", "such", "than", "too", "very",
)

// topicStopwords are ignored when counting keyword topics
var topicStopwords = wordSet(
	"a", "an", "the", "and", "or", "but", "if", "because", "as", "what", "when",
	"where", "how", "is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do",
	"does", "did", "to", "at", "by", "for", "with", "in", "on", "from", "up", "about",
	"into", "over", "after", "above", "below", "down", "out", "off",
	"under", "again", "further", "then", "once", "here", "there", "all", "any", "both",
	"each", "few", "more", "most", "other", "some", "such", "no", "nor", "not", "only", "own",
	"same", "so", "than", "too", "very", "s", "t", "will", "just", "now", "d", "ll", "m", "o",
	"re", "ve", "y", "ain", "aren", "couldn", "didn", "doesn", "hadn", "hasn", "haven", "isn",
	"ma", "mightn", "mustn", "needn", "shan", "shouldn", "wasn", "weren", "won", "wouldn",
	"shall", "said", "that", "this", "these", "those", "would", "could", "should", "might", "may",
	"can", "of",
)
