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
	minClauseText      = 100
	minClauseParagraph = 20
	maxClauses         = 10
	clauseScoreCap     = 0.95
	numberingBoost     = 0.05
	riskPhraseStep     = 0.1
	maxRiskPhrases     = 3
	dedupePrefix       = 100
)

type clauseType struct {
	name         string
	patterns     []*regexp.Regexp
	importance   float64
	riskWeight   float64
	allCapsBoost float64
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

var clauseTypes = []clauseType{
	{"Limitation of Liability", patterns(
		`(?i)\b(limit(ation|ed)?\s+of\s+liability|limited\s+liability|no\s+liability|not\s+be\s+liable)\b`,
		`(?i)\b(in\s+no\s+event\s+shall|shall\s+not\s+be\s+liable|disclaim\s+liability)\b`,
		`(?i)\b(cap\s+on\s+liability|maximum\s+liability|aggregate\s+liability)\b`,
	), 0.9, 0.8, 0.1},
	{"Indemnification", patterns(
		`(?i)\b(indemnif(y|ication|ies)|hold\s+harmless|defend)\b`,
		`(?i)\b(indemnit(y|ies)|reimburse\s+.{0,30}\s+for\s+.{0,30}\s+loss(es)?)\b`,
	), 0.85, 0.7, 0.1},
	{"Termination", patterns(
		`(?i)\b(terminat(e|ion|ing)|cancel(lation)?|expir(e|ation)|end\s+.{0,20}\s+agreement)\b`,
		`(?i)\b(right\s+to\s+terminate|early\s+termination|notice\s+of\s+termination)\b`,
	), 0.8, 0.6, 0.05},
	{"Intellectual Property", patterns(
		`(?i)\b(intellectual\s+property|ip|patent|copyright|trademark|trade\s+secret)\b`,
		`(?i)\b(IP\s+rights|ownership\s+of|retain\s+ownership|assign\s+.{0,20}\s+right)\b`,
	), 0.8, 0.6, 0.05},
	{"Confidentiality", patterns(
		`(?i)\b(confidential(ity)?|non[\-\s]?disclosure|trade\s+secret|proprietary\s+information)\b`,
		`(?i)\b(disclos(e|ure)|maintain\s+.{0,20}\s+confiden(ce|tial))\b`,
	), 0.75, 0.5, 0.05},
	{"Data Protection", patterns(
		`(?i)\b(data\s+protection|personal\s+data|data\s+privacy|gdpr|ccpa)\b`,
		`(?i)\b(data\s+(processor|controller)|processing\s+of\s+data|data\s+subject)\b`,
	), 0.75, 0.6, 0.05},
	{"Payment Terms", patterns(
		`(?i)\b(payment\s+terms|fee[s]?|compensation|invoice|billing)\b`,
		`(?i)\b(price|cost|rate|amount|due\s+.{0,20}\s+pay(ment)?|late\s+fee)\b`,
	), 0.7, 0.5, 0.05},
	{"Dispute Resolution", patterns(
		`(?i)\b(dispute\s+resolution|arbitration|mediation|jurisdiction)\b`,
		`(?i)\b(governing\s+law|venue|forum|court|lawsuit|litigation)\b`,
	), 0.7, 0.6, 0.05},
	{"Force Majeure", patterns(
		`(?i)\b(force\s+majeure|act\s+of\s+god|beyond\s+.{0,30}\s+control)\b`,
		`(?i)\b(unforeseen\s+circumstances|disaster|pandemic|epidemic|emergency)\b`,
	), 0.6, 0.4, 0.05},
	{"Warranty", patterns(
		`(?i)\b(warrant(y|ies)|guarantee|as\s+is|disclaims?\s+.{0,20}\s+warrant(y|ies))\b`,
		`(?i)\b(no\s+warranty|without\s+warranty|disclaim\s+.{0,30}\s+warrant(y|ies))\b`,
	), 0.7, 0.5, 0.05},
	{"Non-Compete", patterns(
		`(?i)\b(non[\-\s]?compete|restraint\s+of\s+trade|competitive\s+activity)\b`,
		`(?i)\b(shall\s+not\s+.{0,30}\s+compet(e|itor)|during\s+.{0,20}\s+after)\b`,
	), 0.65, 0.7, 0.05},
	{"Assignment", patterns(
		`(?i)\b(assign(ment)?|transfer\s+.{0,20}\s+(rights|obligations))\b`,
		`(?i)\b(may\s+not\s+.{0,20}\s+assign|no\s+assignment|consent\s+to\s+assign)\b`,
	), 0.6, 0.4, 0.05},
	{"Severability", patterns(
		`(?i)\b(sever(ability|able)|invalid\s+provision|unenforceable)\b`,
		`(?i)\b(remaining\s+provisions|if\s+any\s+provision|provision\s+.{0,30}\s+invalid)\b`,
	), 0.5, 0.2, 0.05},
}

var (
	// "1.", "2.3", "a)", "(b)", "IV.", "Section 3.", "Article IV", "§ 4" followed by whitespace
	numberingPattern = regexp.MustCompile(`^\s*(?:(?i:section|article)\s+[\dIVXLCDM]+(?:\.\d+)*\.?|§\s*\d+(?:\.\d+)*\.?|\d+(?:\.\d+)*\.?|[a-zA-Z][.)]|\([a-z]\)|[IVXLCDM]+\.)\s`)
	allCapsPattern   = regexp.MustCompile(`\b[A-Z]{5,}\b`)
	riskPhrases      = patterns(
		`(?i)\b(shall\s+not|no\s+obligation|disclaim|waive|without\s+liability)\b.{0,50}\b(personal|data)\b`,
		`(?i)\b(sole\s+discretion|exclusive\s+remedy|not\s+responsible|as\s+is)\b.{0,50}\b(liability|responsible|damages)\b`,
		`(?i)\b(under\s+no\s+circumstances|not\s+.{0,20}\s+warrant|no\s+.{0,20}\s+warranty)\b.{0,50}\b(liability|responsible|damages)\b`,
	)
)

// ClauseTypes lists the recognised clause type names in scan order
func ClauseTypes() []string {
	names := make([]string, len(clauseTypes))
	for i, ct := range clauseTypes {
		names[i] = ct.name
	}
	return names
}

// KeyClauseExtractor finds paragraphs that read like standard contract clauses
type KeyClauseExtractor struct{}

// NewKeyClauseExtractor creates a key clause extractor
func NewKeyClauseExtractor() *KeyClauseExtractor {
	return &KeyClauseExtractor{}
}

type clauseKey struct {
	clauseType string
	prefix     string
}

// Extract returns up to 10 clauses ordered by importance. Each paragraph
// yields at most one clause per type; repeated paragraphs collapse into one.
func (e *KeyClauseExtractor) Extract(text string) []model.KeyClause {
	clauses := []model.KeyClause{}
	if len(strings.TrimSpace(text)) < minClauseText {
		return clauses
	}

	seen := make(map[clauseKey]int)
	for idx, paragraph := range segment.Paragraphs(text) {
		if len(paragraph) < minClauseParagraph {
			continue
		}
		numbered := numberingPattern.MatchString(paragraph)
		allCaps := allCapsPattern.MatchString(paragraph)
		risk := riskPhraseCount(paragraph)

		for _, ct := range clauseTypes {
			if !matchesAny(ct.patterns, paragraph) {
				continue
			}
			importance := ct.importance
			if numbered {
				importance += numberingBoost
			}
			if allCaps {
				importance += ct.allCapsBoost
			}
			importance = util.Round(math.Min(clauseScoreCap, importance), 2)
			riskScore := util.Round(math.Min(clauseScoreCap, ct.riskWeight+riskPhraseStep*float64(risk)), 2)

			key := clauseKey{clauseType: ct.name, prefix: prefix(paragraph, dedupePrefix)}
			if i, dup := seen[key]; dup {
				if importance > clauses[i].Importance {
					clauses[i].Importance = importance
					clauses[i].RiskScore = riskScore
				}
				continue
			}
			seen[key] = len(clauses)
			clauses = append(clauses, model.KeyClause{
				ClauseType: ct.name,
				Content:    paragraph,
				Importance: importance,
				RiskScore:  riskScore,
				Paragraph:  idx,
			})
		}
	}

	sort.SliceStable(clauses, func(i, j int) bool {
		return clauses[i].Importance > clauses[j].Importance
	})
	if len(clauses) > maxClauses {
		clauses = clauses[:maxClauses]
	}
	return clauses
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func riskPhraseCount(paragraph string) int {
	n := 0
	for _, re := range riskPhrases {
		if re.MatchString(paragraph) {
			n++
		}
	}
	if n > maxRiskPhrases {
		n = maxRiskPhrases
	}
	return n
}

func prefix(s string, n int) string {
	return util.Window(s, 0, n)
}
