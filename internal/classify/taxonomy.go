package classify

// subType is a named document kind and the phrases that suggest it
type subType struct {
	name       string
	indicators []string
}

type category struct {
	name     string
	subTypes []subType
}

// taxonomy is walked in declaration order; on equal confidence the first entry wins.
var taxonomy = []category{
	{
		name: "Contract",
		subTypes: []subType{
			{"Non-Disclosure Agreement", []string{"non-disclosure", "nda", "confidentiality agreement", "confidential information", "proprietary information", "trade secret"}},
			{"Employment Contract", []string{"employment agreement", "employment contract", "offer of employment", "terms of employment", "job offer"}},
			{"Service Agreement", []string{"service agreement", "consulting agreement", "professional services", "statement of work", "scope of services"}},
			{"License Agreement", []string{"license agreement", "software license", "end user license", "eula", "licensing terms"}},
			{"Purchase Agreement", []string{"purchase agreement", "sale agreement", "purchase contract", "asset purchase", "stock purchase"}},
			{"Rental Agreement", []string{"lease agreement", "rental contract", "tenancy agreement", "lease terms", "property rental"}},
			{"General Contract", []string{"agreement", "contract", "terms and conditions", "obligations", "parties"}},
		},
	},
	{
		name: "Policy",
		subTypes: []subType{
			{"Privacy Policy", []string{"privacy policy", "privacy notice", "personal information", "data collection", "information we collect"}},
			{"Terms of Service", []string{"terms of service", "terms of use", "user agreement", "terms and conditions", "acceptable use"}},
			{"Cookie Policy", []string{"cookie policy", "cookie notice", "use of cookies", "tracking technologies", "browser cookies"}},
			{"Security Policy", []string{"security policy", "information security", "data security", "security practices", "security measures"}},
			{"Return Policy", []string{"return policy", "refund policy", "exchange policy", "return procedure", "money back"}},
			{"Company Policy", []string{"company policy", "corporate policy", "policy statement", "policy document", "guidelines"}},
		},
	},
	{
		name: "Corporate Document",
		subTypes: []subType{
			{"Articles of Incorporation", []string{"articles of incorporation", "certificate of incorporation", "corporate charter", "articles of organization", "incorporation document"}},
			{"Bylaws", []string{"bylaws", "company bylaws", "corporate bylaws", "bylaws of", "organizational bylaws"}},
			{"Board Resolution", []string{"board resolution", "corporate resolution", "resolution of", "resolved that", "board of directors"}},
			{"Shareholder Agreement", []string{"shareholder agreement", "shareholders agreement", "stockholder agreement", "equity holders", "share transfer"}},
			{"Annual Report", []string{"annual report", "financial report", "yearly report", "fiscal year", "financial statements"}},
			{"Corporate Minutes", []string{"meeting minutes", "corporate minutes", "minutes of the meeting", "board meeting", "proceedings of"}},
		},
	},
	{
		name: "Legal Filing",
		subTypes: []subType{
			{"Complaint", []string{"complaint", "plaintiff", "defendant", "jurisdiction", "cause of action"}},
			{"Motion", []string{"motion", "moves the court", "memorandum", "relief", "order"}},
			{"Brief", []string{"brief", "argument", "citation", "authority", "respectfully submitted"}},
			{"Affidavit", []string{"affidavit", "sworn statement", "under penalty of perjury", "personally appeared", "depose and say"}},
			{"Subpoena", []string{"subpoena", "commanded to appear", "testimony", "witness", "evidence"}},
			{"Settlement Agreement", []string{"settlement agreement", "release of claims", "dispute resolution", "settlement terms", "full and final settlement"}},
		},
	},
	{
		name: "Regulatory Document",
		subTypes: []subType{
			{"Data Protection Agreement", []string{"data processing agreement", "data protection", "gdpr", "data controller", "data processor"}},
			{"Compliance Report", []string{"compliance report", "compliance assessment", "regulatory compliance", "compliance review", "compliance audit"}},
			{"Tax Document", []string{"tax return", "tax form", "tax statement", "tax filing", "income tax"}},
			{"Regulatory Filing", []string{"regulatory filing", "sec filing", "form 10-", "regulation", "compliance filing"}},
		},
	},
	{
		name: "Estate Document",
		subTypes: []subType{
			{"Will", []string{"last will and testament", "testator", "bequeath", "devise", "executor"}},
			{"Trust", []string{"trust agreement", "trust document", "trustee", "beneficiary", "trust property"}},
			{"Power of Attorney", []string{"power of attorney", "attorney-in-fact", "agent", "principal", "authorize and empower"}},
			{"Living Will", []string{"living will", "advance directive", "healthcare directive", "medical decisions", "life-sustaining treatment"}},
		},
	},
	{
		name: "Intellectual Property",
		subTypes: []subType{
			{"Patent Application", []string{"patent application", "invention", "claim", "prior art", "patent no"}},
			{"Trademark Registration", []string{"trademark registration", "trademark application", "mark", "goods and services", "trademark class"}},
			{"Copyright Registration", []string{"copyright registration", "copyright notice", "all rights reserved", "creative work", "author"}},
			{"IP Assignment", []string{"intellectual property assignment", "ip assignment", "assign rights", "transfer of rights", "assign and transfer"}},
		},
	},
}
