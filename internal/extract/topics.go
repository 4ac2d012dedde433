package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	// DefaultMaxTopicChars bounds the scan on very long documents
	DefaultMaxTopicChars = 100_000

	maxTopics           = 10
	maxKeywordTopics    = 5
	maxTopTerms         = 5
	maxTopicContexts    = 2
	storedTopicContexts = 3
	topicContextLen     = 200
	categoryThreshold   = 3.0
	patternBoost        = 0.5
	keywordCandidates   = 20
	keywordMinCount     = 2 // a word must occur more often than this to be counted
	keywordTopicCount   = 5 // and more often than this to become a topic
	keywordColor        = "#757575"
)

type topicCategory struct {
	name   string
	terms  []string
	weight float64
	color  string
}

var topicCategories = []topicCategory{
	{"Contract Law", []string{"agreement", "contract", "covenant", "obligation", "party", "parties", "provision",
		"term", "clause", "breach", "performance", "consideration", "offer", "acceptance"}, 1.0, "#4285F4"},
	{"Intellectual Property", []string{"patent", "copyright", "trademark", "intellectual property", "ip", "invention",
		"author", "creator", "license", "royalty", "proprietary"}, 1.2, "#EA4335"},
	{"Employment Law", []string{"employee", "employer", "employment", "work", "worker", "compensation", "salary", "wage",
		"termination", "fire", "hire", "discrimination", "harassment", "benefits", "leave"}, 0.9, "#FBBC05"},
	{"Corporate Law", []string{"corporation", "company", "shareholder", "stock", "board", "director", "officer",
		"merger", "acquisition", "corporate", "governance", "fiduciary", "dividend", "securities"}, 1.1, "#34A853"},
	{"Real Estate", []string{"property", "real estate", "land", "lease", "tenant", "landlord", "premises",
		"mortgage", "easement", "convey", "deed", "title", "zoning", "eviction"}, 0.8, "#8F44AD"},
	{"Litigation", []string{"lawsuit", "litigation", "dispute", "claim", "plaintiff", "defendant", "court",
		"judge", "jury", "complaint", "answer", "motion", "trial", "appeal", "settlement"}, 1.0, "#F4B400"},
	{"Privacy & Data Protection", []string{"privacy", "data", "personal information", "confidential", "gdpr", "ccpa",
		"consent", "data breach", "data protection", "disclosure", "processing"}, 1.3, "#DB4437"},
	{"Tax Law", []string{"tax", "taxation", "income", "deduction", "liability", "exemption", "assessment",
		"audit", "revenue", "withholding", "credit", "taxable", "irs", "tax return"}, 0.9, "#0F9D58"},
	{"Compliance", []string{"compliance", "regulation", "regulatory", "comply", "requirement", "standard",
		"guideline", "audit", "monitor", "enforce", "violation", "penalty", "sanction"}, 1.0, "#4285F4"},
}

// topicPattern boosts a category when its phrase shape appears
type topicPattern struct {
	name     string
	pattern  *regexp.Regexp
	category string
}

var topicPatterns = []topicPattern{
	{"agreement pattern", regexp.MustCompile(`\b(this|the)\s+(agreement|contract)\b`), "Contract Law"},
	{"legal entity pattern", regexp.MustCompile(`\b(corporation|llc|inc\.|incorporated|company|partnership|association|organization|entity|subsidiary|affiliate)\b`), "Corporate Law"},
	{"legal action pattern", regexp.MustCompile(`\b(lawsuit|litigation|claim|action|proceeding|case|trial|hearing|motion|petition|complaint|settlement|judgment|decree|order|injunction)\b`), "Litigation"},
	{"date reference pattern", regexp.MustCompile(`\b(dated|effective\s+date|as\s+of)\b`), "Contract Law"},
	{"obligation pattern", regexp.MustCompile(`\b(shall|must|required\s+to|obligated\s+to)\b`), "Contract Law"},
	{"payment pattern", regexp.MustCompile(`\b(pay|payment|compensate|remuneration|fee)\b`), "Contract Law"},
	{"property pattern", regexp.MustCompile(`\b(property|asset|real\s+estate|building|land|premise)\b`), "Real Estate"},
	{"confidentiality pattern", regexp.MustCompile(`\b(confidential|confidentiality|non-disclosure|nda)\b`), "Privacy & Data Protection"},
	{"employment pattern", regexp.MustCompile(`\b(employ|employee|employer|work|worker)\b`), "Employment Law"},
	{"ip pattern", regexp.MustCompile(`\b(intellectual\s+property|patent|copyright|trademark|trade\s+secret)\b`), "Intellectual Property"},
	{"compliance pattern", regexp.MustCompile(`\b(comply|compliance|regulation|law|policy|requirement)\b`), "Compliance"},
	{"termination pattern", regexp.MustCompile(`\b(terminate|termination|cancel|end|expir)\b`), "Contract Law"},
	{"dispute pattern", regexp.MustCompile(`\b(dispute|disagree|arbitra|mediat)\b`), "Litigation"},
}

// termPatterns holds the whole-word matcher for every category term
var termPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, cat := range topicCategories {
		for _, term := range cat.terms {
			out[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
		}
	}
	return out
}()

type categoryTally struct {
	score     float64
	termOrder []string
	termFreq  map[string]int
	contexts  []string
}

// TopicExtractor weighs legal-domain categories and frequent keywords
type TopicExtractor struct {
	maxChars int
}

// NewTopicExtractor creates an extractor scanning at most maxChars characters.
// Zero selects the default.
func NewTopicExtractor(maxChars int) *TopicExtractor {
	if maxChars <= 0 {
		maxChars = DefaultMaxTopicChars
	}
	return &TopicExtractor{maxChars: maxChars}
}

// Extract returns up to 10 topics ordered by score
func (e *TopicExtractor) Extract(text string) []model.Topic {
	topics := []model.Topic{}
	if strings.TrimSpace(text) == "" {
		return topics
	}
	text = segment.Truncate(text, e.maxChars)

	var paragraphs []string
	for _, p := range segment.Paragraphs(text) {
		paragraphs = append(paragraphs, strings.Join(strings.Fields(p), " "))
	}

	tallies := make([]*categoryTally, len(topicCategories))
	index := make(map[string]int, len(topicCategories))
	for i, cat := range topicCategories {
		tallies[i] = &categoryTally{termFreq: make(map[string]int)}
		index[cat.name] = i
	}
	patternCounts := make([]int, len(topicPatterns))

	for _, paragraph := range paragraphs {
		lower := util.LowerAligned(paragraph)
		for i, cat := range topicCategories {
			tally := tallies[i]
			for _, term := range cat.terms {
				count := len(termPatterns[term].FindAllStringIndex(lower, -1))
				if count == 0 {
					continue
				}
				tally.score += float64(count) * cat.weight
				if _, seen := tally.termFreq[term]; !seen {
					tally.termOrder = append(tally.termOrder, term)
				}
				tally.termFreq[term] += count

				if len(tally.contexts) < storedTopicContexts {
					tally.addContexts(paragraph, term)
				}
			}
		}
		for i, tp := range topicPatterns {
			patternCounts[i] += len(tp.pattern.FindAllStringIndex(lower, -1))
		}
	}

	for i, count := range patternCounts {
		if count > 0 {
			tallies[index[topicPatterns[i].category]].score += float64(count) * patternBoost
		}
	}

	catOrder := make([]int, len(topicCategories))
	for i := range catOrder {
		catOrder[i] = i
	}
	sort.SliceStable(catOrder, func(a, b int) bool {
		return tallies[catOrder[a]].score > tallies[catOrder[b]].score
	})

	for _, i := range catOrder {
		tally := tallies[i]
		if tally.score <= categoryThreshold {
			continue
		}
		contexts := tally.contexts
		if len(contexts) > maxTopicContexts {
			contexts = contexts[:maxTopicContexts]
		}
		topics = append(topics, model.Topic{
			Topic:     topicCategories[i].name,
			Score:     math.Min(100, tally.score*2),
			Type:      model.TopicCategory,
			Context:   append([]string{}, contexts...),
			TopTerms:  tally.topTerms(),
			Relevance: categoryRelevance(tally.score),
			Color:     topicCategories[i].color,
		})
	}

	keywords := keywordTopics(text, paragraphs)
	if len(keywords) > maxKeywordTopics {
		keywords = keywords[:maxKeywordTopics]
	}
	topics = append(topics, keywords...)

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Score > topics[j].Score
	})
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	for i := range topics {
		topics[i].Score = util.Round(topics[i].Score, 1)
	}
	return topics
}

// addContexts stores sentences of paragraph that mention term
func (t *categoryTally) addContexts(paragraph, term string) {
	for _, sentence := range segment.SplitSentences(paragraph, false) {
		if len(t.contexts) >= storedTopicContexts {
			return
		}
		if !strings.Contains(strings.ToLower(sentence), term) {
			continue
		}
		sentence = clip(sentence, topicContextLen)
		if !contains(t.contexts, sentence) {
			t.contexts = append(t.contexts, sentence)
		}
	}
}

func (t *categoryTally) topTerms() []string {
	terms := append([]string{}, t.termOrder...)
	sort.SliceStable(terms, func(i, j int) bool {
		return t.termFreq[terms[i]] > t.termFreq[terms[j]]
	})
	if len(terms) > maxTopTerms {
		terms = terms[:maxTopTerms]
	}
	return terms
}

func categoryRelevance(score float64) model.Level {
	switch {
	case score > 20:
		return model.LevelHigh
	case score > 10:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

// keywordTopics turns frequent words that no category already covers into topics
func keywordTopics(text string, paragraphs []string) []model.Topic {
	var order []string
	counts := make(map[string]int)
	for _, w := range strings.Fields(text) {
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	var candidates []string
	for _, w := range order {
		if topicStopwords[w] || utf8.RuneCountInString(w) <= 3 || counts[w] <= keywordMinCount {
			continue
		}
		candidates = append(candidates, w)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return counts[candidates[i]] > counts[candidates[j]]
	})
	if len(candidates) > keywordCandidates {
		candidates = candidates[:keywordCandidates]
	}

	var topics []model.Topic
	for _, w := range candidates {
		count := counts[w]
		if inCategory(w) || count <= keywordTopicCount {
			continue
		}
		relevance := model.LevelLow
		if count > 10 {
			relevance = model.LevelMedium
		}
		context := []string{}
		if s := keywordContext(strings.ToLower(w), paragraphs); s != "" {
			context = append(context, s)
		}
		topics = append(topics, model.Topic{
			Topic:     titleCase(w),
			Score:     math.Min(100, float64(count)*5),
			Type:      model.TopicKeyword,
			Context:   context,
			Relevance: relevance,
			Color:     keywordColor,
		})
	}
	return topics
}

// inCategory reports whether word is part of a category term, or contains a
// longer category term
func inCategory(word string) bool {
	for _, cat := range topicCategories {
		for _, term := range cat.terms {
			if strings.Contains(term, word) {
				return true
			}
			if len(term) > 4 && strings.Contains(word, term) {
				return true
			}
		}
	}
	return false
}

func keywordContext(word string, paragraphs []string) string {
	for _, p := range paragraphs {
		if !strings.Contains(strings.ToLower(p), word) {
			continue
		}
		for _, sentence := range segment.SplitSentences(p, false) {
			if strings.Contains(strings.ToLower(sentence), word) {
				return clip(sentence, topicContextLen)
			}
		}
	}
	return ""
}
