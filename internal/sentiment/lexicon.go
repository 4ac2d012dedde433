package sentiment

var positiveTerms = map[string]float64{
	// strong
	"excellent": 2.0, "outstanding": 2.0, "exceptional": 2.0, "superb": 2.0, "fantastic": 2.0,
	"extraordinary": 2.0, "remarkable": 2.0, "superior": 2.0, "ideal": 2.0, "perfect": 2.0,
	"exemplary": 2.0, "wonderful": 2.0, "brilliant": 2.0, "stellar": 2.0, "magnificent": 2.0,

	// medium
	"good": 1.5, "favorable": 1.5, "positive": 1.5, "beneficial": 1.5, "advantageous": 1.5,
	"satisfactory": 1.5, "effective": 1.5, "efficient": 1.5, "valuable": 1.5, "useful": 1.5,
	"successful": 1.5, "impressive": 1.5, "commendable": 1.5, "praiseworthy": 1.5,

	// mild
	"adequate": 1.0, "acceptable": 1.0, "sufficient": 1.0, "reasonable": 1.0, "fair": 1.0,
	"decent": 1.0, "appropriate": 1.0, "suitable": 1.0, "fine": 1.0, "solid": 1.0,
	"capable": 1.0, "competent": 1.0, "proficient": 1.0, "skilled": 1.0, "qualified": 1.0,

	// agreement
	"agree": 1.0, "consent": 1.0, "accept": 1.0, "approve": 1.0, "support": 1.0,
	"endorse": 1.0, "confirm": 1.0, "validate": 1.0, "affirm": 1.0, "authorize": 1.0,
	"honor": 1.0, "respect": 1.0, "uphold": 1.0, "maintain": 1.0, "preserve": 1.0,

	// outcomes
	"benefit": 1.5, "advantage": 1.5, "gain": 1.5, "improve": 1.5, "enhance": 1.5,
	"strengthen": 1.5, "boost": 1.5, "augment": 1.5, "increase": 1.2, "grow": 1.2,
	"develop": 1.2, "advance": 1.2, "progress": 1.2, "excel": 1.5, "thrive": 1.5,
}

var negativeTerms = map[string]float64{
	// strong
	"terrible": -2.0, "horrible": -2.0, "dreadful": -2.0, "awful": -2.0, "abysmal": -2.0,
	"disastrous": -2.0, "catastrophic": -2.0, "atrocious": -2.0, "appalling": -2.0, "deplorable": -2.0,
	"unacceptable": -2.0, "intolerable": -2.0, "egregious": -2.0, "outrageous": -2.0, "heinous": -2.0,

	// medium
	"bad": -1.5, "poor": -1.5, "unfavorable": -1.5, "negative": -1.5, "detrimental": -1.5,
	"harmful": -1.5, "adverse": -1.5, "deficient": -1.5, "substandard": -1.5, "inferior": -1.5,
	"inadequate": -1.5, "unsatisfactory": -1.5, "disappointing": -1.5, "troubling": -1.5,

	// mild
	"mediocre": -1.0, "unreasonable": -1.0, "lacking": -1.0, "defective": -1.0, "flawed": -1.0,
	"problematic": -1.0, "questionable": -1.0, "concerning": -1.0, "worrisome": -1.0, "doubtful": -1.0,
	"uncertain": -1.0, "ambiguous": -1.0, "vague": -1.0, "insufficient": -1.0,

	// breach of obligations
	"violation": -1.0, "breach": -1.0, "infringement": -1.0, "contravention": -1.0, "failure": -1.0,
	"neglect": -1.0, "negligence": -1.0, "misconduct": -1.0, "malfeasance": -1.0, "misfeasance": -1.0,
	"non-compliance": -1.0, "dereliction": -1.0, "delinquency": -1.0, "offense": -1.0, "wrongdoing": -1.0,

	// restrictive
	"prohibit": -0.8, "forbid": -0.8, "restrict": -0.8, "limit": -0.8, "constrain": -0.8,
	"restrain": -0.8, "hinder": -0.8, "impede": -0.8, "obstruct": -0.8, "block": -0.8,
	"prevent": -0.8, "preclude": -0.8, "disallow": -0.8, "deny": -0.8, "reject": -0.8,
}

// contextualTerm flips polarity depending on the words around it.
// Negative contexts are checked first.
type contextualTerm struct {
	term             string
	negativeContexts []string
	positiveContexts []string
	negativeScore    float64
	positiveScore    float64
}

var contextualTerms = []contextualTerm{
	{
		term:             "liability",
		negativeContexts: []string{"unlimited", "increased", "significant", "extend"},
		positiveContexts: []string{"limited", "no", "reduced", "protect", "against"},
		negativeScore:    -1.0,
		positiveScore:    1.0,
	},
	{
		term:             "terminate",
		negativeContexts: []string{"immediate", "unilateral", "without cause", "penalty"},
		positiveContexts: []string{"mutual", "agreement", "notice", "reasonable"},
		negativeScore:    -1.0,
		positiveScore:    0.5,
	},
	{
		term:             "confidential",
		negativeContexts: []string{"breach", "disclosure", "unauthorized", "violation"},
		positiveContexts: []string{"protect", "maintain", "secure", "safeguard"},
		negativeScore:    -1.0,
		positiveScore:    1.0,
	},
	{
		term:             "obligation",
		negativeContexts: []string{"onerous", "burdensome", "excessive", "unreasonable"},
		positiveContexts: []string{"fair", "reasonable", "mutual", "balanced"},
		negativeScore:    -1.0,
		positiveScore:    0.8,
	},
}

var intensifiers = map[string]float64{
	"very": 1.5, "extremely": 2.0, "highly": 1.8, "particularly": 1.5, "especially": 1.5,
	"significantly": 1.7, "substantially": 1.7, "considerably": 1.6, "notably": 1.5,
	"remarkably": 1.8, "exceptionally": 1.9, "undoubtedly": 1.5, "absolutely": 1.8,
	"definitely": 1.5, "unquestionably": 1.7, "truly": 1.5, "incredibly": 1.8,
}

var dampeners = map[string]float64{
	"somewhat": 0.7, "slightly": 0.6, "relatively": 0.7, "fairly": 0.8, "rather": 0.8,
	"moderately": 0.7, "comparatively": 0.8, "reasonably": 0.8, "partially": 0.6,
	"nominally": 0.5, "marginally": 0.4, "arguably": 0.7, "presumably": 0.8,
	"apparently": 0.7, "seemingly": 0.7, "ostensibly": 0.7, "questionably": 0.6,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true, "none": true,
	"nothing": true, "nowhere": true, "hardly": true, "scarcely": true, "barely": true,
	"doesn't": true, "isn't": true, "wasn't": true, "shouldn't": true, "wouldn't": true,
	"couldn't": true, "won't": true, "can't": true, "don't": true, "without": true,
}

// termScore looks up a fixed-polarity lexicon entry
func termScore(word string) (float64, bool) {
	if s, ok := positiveTerms[word]; ok {
		return s, true
	}
	s, ok := negativeTerms[word]
	return s, ok
}

// modifier returns the intensifier or dampener multiplier for word
func modifier(word string) (float64, bool) {
	if m, ok := intensifiers[word]; ok {
		return m, true
	}
	m, ok := dampeners[word]
	return m, ok
}
