package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
	"github.com/ppiankov/legalyze/internal/segment"
	"github.com/ppiankov/legalyze/internal/util"
)

const (
	// DefaultMaxLegalTermChars bounds the regex scan on very long documents
	DefaultMaxLegalTermChars = 80_000
	maxLegalTerms            = 50
	maxTermContexts          = 3
	termContextChars         = 100
	earlySentences           = 5
	earlyFactor              = 1.2
)

type termCategory struct {
	name    string
	pattern *regexp.Regexp
	weight  float64
}

var termCategories = []termCategory{
	{"Contract Terms", regexp.MustCompile(`\b(agreement|contract|covenant|warranty|indemnity|guarantee|undertaking|obligation|consideration|provision|clause|term|condition|binding|executed|signatory|amendment|addendum|appendix|exhibit|schedule)\b`), 1.0},
	{"Legal Entities", regexp.MustCompile(`\b(corporation|llc|inc\.|incorporated|company|partnership|association|organization|entity|subsidiary|affiliate)\b`), 0.8},
	{"Parties", regexp.MustCompile(`\b(party|parties|signatory|signatories|counterparty|licensor|licensee|grantor|grantee|lessor|lessee|vendor|vendee|buyer|seller)\b`), 0.9},
	{"Legal Actions", regexp.MustCompile(`\b(lawsuit|litigation|claim|action|proceeding|case|trial|hearing|motion|petition|complaint|settlement|judgment|decree|order|injunction)\b`), 1.1},
	{"Legal Authority", regexp.MustCompile(`\b(statute|law|regulation|code|act|bill|amendment|constitution|treaty|directive|precedent|ruling)\b`), 1.2},
	{"Rights and Obligations", regexp.MustCompile(`\b(right|obligation|duty|liability|shall|must|required|prohibited|permitted|consent|approval)\b`), 1.0},
	{"Property", regexp.MustCompile(`\b(property|asset|real estate|land|premises|chattel|title|deed|easement|lease|ownership)\b`), 0.8},
	{"Intellectual Property", regexp.MustCompile(`\b(patent|copyright|trademark|trade secret|intellectual property|ip rights|license|royalty|proprietary)\b`), 1.2},
	{"Financial Terms", regexp.MustCompile(`\b(payment|compensation|fee|expense|cost|tax|interest|penalty|damages|reimbursement|default|bankruptcy|insolvency)\b`), 0.9},
	{"Time-Related Terms", regexp.MustCompile(`\b(term|period|duration|date|deadline|termination|expiration|renewal|extension|effective date)\b`), 0.7},
	{"Privacy and Data", regexp.MustCompile(`\b(privacy|data|confidential|personal information|gdpr|ccpa|consent|processor|controller)\b`), 1.0},
	{"Dispute Resolution", regexp.MustCompile(`\b(dispute|disagree|arbitra|mediat)\b`), 1.1},
	{"Latin Legal Terms", regexp.MustCompile(`\b(de facto|de jure|bona fide|prima facie|pro rata|quid pro quo|inter alia|mutatis mutandis|pari passu|ex parte)\b`), 1.3},
}

// termKey identifies one accumulated term; the same word may sit in several categories
type termKey struct {
	term     string
	category string
}

type termHit struct {
	key      termKey
	weight   float64
	freq     int
	contexts []string
	early    bool
}

// LegalTermExtractor finds categorized legal vocabulary sentence by sentence
type LegalTermExtractor struct {
	maxChars int
}

// NewLegalTermExtractor creates an extractor scanning at most maxChars characters.
// Zero selects the default.
func NewLegalTermExtractor(maxChars int) *LegalTermExtractor {
	if maxChars <= 0 {
		maxChars = DefaultMaxLegalTermChars
	}
	return &LegalTermExtractor{maxChars: maxChars}
}

// Extract returns up to 50 legal terms ordered by importance
func (e *LegalTermExtractor) Extract(text string) []model.LegalTerm {
	result := []model.LegalTerm{}
	if strings.TrimSpace(text) == "" {
		return result
	}

	var order []termKey
	hits := make(map[termKey]*termHit)

	for idx, sentence := range segment.Sentences(segment.Truncate(text, e.maxChars)) {
		lower := util.LowerAligned(sentence)
		for _, cat := range termCategories {
			for _, loc := range cat.pattern.FindAllStringIndex(lower, -1) {
				key := termKey{term: lower[loc[0]:loc[1]], category: cat.name}
				ctx := util.Snippet(sentence, loc[0], loc[1], termContextChars)

				hit, ok := hits[key]
				if !ok {
					hits[key] = &termHit{
						key:      key,
						weight:   cat.weight,
						freq:     1,
						contexts: []string{ctx},
						early:    idx < earlySentences,
					}
					order = append(order, key)
					continue
				}
				hit.freq++
				if len(hit.contexts) < maxTermContexts && !contains(hit.contexts, ctx) {
					hit.contexts = append(hit.contexts, ctx)
				}
			}
		}
	}

	for _, key := range order {
		hit := hits[key]
		position, factor := model.PositionOther, 1.0
		if hit.early {
			position, factor = model.PositionEarly, earlyFactor
		}
		importance := math.Min(100, float64(hit.freq)*hit.weight*factor/2)

		result = append(result, model.LegalTerm{
			Term:           key.term,
			Category:       key.category,
			Frequency:      hit.freq,
			Importance:     util.Round(importance, 1),
			PrimaryContext: hit.contexts[0],
			Context:        hit.contexts,
			Position:       position,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Importance > result[j].Importance
	})
	if len(result) > maxLegalTerms {
		result = result[:maxLegalTerms]
	}
	return result
}
