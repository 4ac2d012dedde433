package compliance

import (
	"regexp"

	"github.com/ppiankov/legalyze/internal/model"
)

type requirement struct {
	name     string
	pattern  *regexp.Regexp
	required bool
}

type area struct {
	name         string
	keywords     []string
	requirements []requirement
	riskLevel    model.Level
	color        string
}

func req(name, pattern string, required bool) requirement {
	return requirement{name: name, pattern: regexp.MustCompile(pattern), required: required}
}

// areas are matched against lower-cased text in this order
var areas = []area{
	{
		name: "GDPR",
		keywords: []string{"gdpr", "general data protection regulation", "data protection", "personal data",
			"data subject", "data controller", "data processor", "right to erasure", "right to access"},
		requirements: []requirement{
			req("Consent Mechanisms", `\b(consent|opt.?in|permission|agree)\b.{0,50}\b(personal|data)\b`, true),
			req("Data Subject Rights", `\b(right|access|erasure|forgotten|restrict|object|portability)\b.{0,50}\b(data)\b`, true),
			req("Data Breach Notification", `\b(breach|notification|incident)\b.{0,50}\b(report|notify)\b`, true),
			req("Data Minimization", `\b(minim|necessary|proportionate|limited)\b.{0,50}\b(data|collection|processing)\b`, true),
			req("Lawful Basis for Processing", `\b(lawful|legal|legitimate|basis)\b.{0,50}\b(process|collect|data)\b`, true),
			req("Data Protection Officer", `\b(data protection officer|dpo)\b`, false),
			req("International Data Transfers", `\b(transfer|international|third country|outside)\b.{0,50}\b(data|information)\b`, false),
		},
		riskLevel: model.LevelHigh,
		color:     "#4285F4",
	},
	{
		name: "CCPA",
		keywords: []string{"ccpa", "california consumer privacy act", "consumer privacy", "personal information",
			"right to delete", "right to opt-out", "right to access", "do not sell"},
		requirements: []requirement{
			req("Right to Know", `\b(right|know|access)\b.{0,50}\b(collect|personal)\b`, true),
			req("Right to Delete", `\b(right|delete|erase)\b.{0,50}\b(information|personal)\b`, true),
			req("Right to Opt-Out", `\b(opt.?out|do not sell)\b.{0,50}\b(personal|information)\b`, true),
			req("Notice at Collection", `\b(notice|disclose)\b.{0,50}\b(collect|categories|purpose)\b`, true),
			req("Non-Discrimination", `\b(discriminat|penalize|charge|deny)\b.{0,70}\b(right|request|access|delete)\b`, true),
		},
		riskLevel: model.LevelHigh,
		color:     "#EA4335",
	},
	{
		name: "HIPAA",
		keywords: []string{"hipaa", "health insurance portability", "protected health information", "phi",
			"medical", "health data", "health record", "patient", "healthcare"},
		requirements: []requirement{
			req("PHI Protection", `\b(protect|safeguard|secure)\b.{0,50}\b(health information|phi|medical)\b`, true),
			req("Authorization", `\b(authorization|consent|permission)\b.{0,50}\b(disclose|share|use|phi)\b`, true),
			req("Minimum Necessary", `\b(minimum necessary|need to know)\b`, true),
			req("Business Associate Agreement", `\b(business associate|baa)\b`, false),
			req("Breach Notification", `\b(breach|notification|incident)\b.{0,50}\b(report|notify)\b`, true),
		},
		riskLevel: model.LevelHigh,
		color:     "#FBBC05",
	},
	{
		name:     "Contract Completeness",
		keywords: []string{"agreement", "contract", "terms", "parties", "signature", "obligations", "covenants"},
		requirements: []requirement{
			req("Party Identification", `\b(party|parties|between|among)\b.{0,100}\b(agreement|identified)\b`, true),
			req("Consideration Clause", `\b(consideration|payment|fee)\b.{0,100}\b(services|goods|products)\b`, true),
			req("Term and Termination", `\b(term|duration|termination)\b.{0,100}\b(agreement|contract)\b`, true),
			req("Governing Law", `\b(govern|law|jurisdiction)\b.{0,100}\b(state|country|court)\b`, true),
			req("Dispute Resolution", `\b(dispute|disagree|arbitra|mediat)\b.{0,100}\b(resolve|settlement|court)\b`, false),
			req("Force Majeure", `\b(force\s*majeure|act\s*of\s*god|beyond\s*control|unavoidable)\b`, false),
			req("Confidentiality", `\b(confidential|proprietary|non-disclosure|nda)\b`, false),
			req("Assignment", `\b(assign|transfer)\b.{0,50}\b(rights|obligations|agreement)\b`, false),
		},
		riskLevel: model.LevelMedium,
		color:     "#34A853",
	},
	{
		name: "Intellectual Property",
		keywords: []string{"intellectual property", "ip", "patent", "copyright", "trademark", "trade secret",
			"license", "proprietary", "rights"},
		requirements: []requirement{
			req("Ownership Definition", `\b(own|ownership|possess|title|right)\b.{0,70}\b(ip|intellectual property|copyright|patent)\b`, true),
			req("License Grant", `\b(licens|grant|right|permission)\b.{0,70}\b(use|reproduce|modify|distribute)\b`, false),
			req("IP Representations", `\b(represent|warrant|covenant)\b.{0,70}\b(infringe|violate|ip|intellectual property)\b`, false),
			req("IP Indemnification", `\b(indemnif|defend|hold harmless)\b.{0,100}\b(infringe|claim|ip|intellectual property)\b`, false),
		},
		riskLevel: model.LevelMedium,
		color:     "#DB4437",
	},
	{
		name: "Employment",
		keywords: []string{"employment", "employee", "employer", "work", "job", "position", "salary", "wage",
			"compensation", "termination", "fired", "resign"},
		requirements: []requirement{
			req("Position Description", `\b(position|role|job|duties|responsibilities)\b`, true),
			req("Compensation", `\b(compensation|salary|wage|pay|payment)\b`, true),
			req("Working Hours", `\b(hours|schedule|shift|work.?time)\b`, true),
			req("At-Will Employment", `\b(at.?will|terminate|end|dismiss)\b.{0,50}\b(employment|relationship)\b`, false),
			req("Benefits", `\b(benefits|insurance|vacation|leave|pto|holiday)\b`, false),
			req("Non-Compete", `\b(non.?compete|competition|competitive|restrict)\b`, false),
		},
		riskLevel: model.LevelMedium,
		color:     "#0F9D58",
	},
	{
		name: "Data Security",
		keywords: []string{"security", "protect", "safeguard", "confidential", "encrypt", "access control",
			"breach", "incident", "vulnerability", "risk"},
		requirements: []requirement{
			req("Security Measures", `\b(security|protective|safeguard|measures)\b.{0,70}\b(data|information|system)\b`, true),
			req("Access Controls", `\b(access|authentication|password|credential)\b.{0,50}\b(control|restrict|limit)\b`, true),
			req("Encryption", `\b(encrypt|cipher|secure|protect)\b.{0,50}\b(data|information|transmission)\b`, false),
			req("Breach Response", `\b(breach|incident|event|compromise)\b.{0,50}\b(response|plan|notify|report)\b`, true),
		},
		riskLevel: model.LevelHigh,
		color:     "#4285F4",
	},
	{
		name: "Liability",
		keywords: []string{"liability", "damages", "indemnification", "indemnify", "waiver", "limitation",
			"warranty", "disclaimer", "hold harmless"},
		requirements: []requirement{
			req("Limitation of Liability", `\b(limit|cap|restrict)\b.{0,50}\b(liability|responsible|damages)\b`, true),
			req("Warranty Disclaimer", `\b(disclaim|waive|no)\b.{0,50}\b(warrant|guarantee)\b`, false),
			req("Indemnification", `\b(indemnif|defend|hold harmless)\b`, false),
			req("Damages Exclusion", `\b(consequential|incidental|special|punitive)\b.{0,50}\b(damages|losses)\b`, false),
		},
		riskLevel: model.LevelHigh,
		color:     "#9D28AC",
	},
}

// keywordPatterns holds a whole-word matcher for every relevance keyword
var keywordPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, a := range areas {
		for _, kw := range a.keywords {
			out[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}
	return out
}()

// AreaNames lists the compliance areas in evaluation order
func AreaNames() []string {
	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = a.name
	}
	return names
}
