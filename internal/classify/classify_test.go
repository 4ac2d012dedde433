package classify

import (
	"strings"
	"testing"
)

const ndaText = "NON-DISCLOSURE AGREEMENT\n\n" +
	"This confidentiality agreement protects confidential information shared between the signatories.\n" +
	"Each signatory keeps the confidential information secret and returns it on request.\n"

func TestClassify_NonDisclosureAgreement(t *testing.T) {
	got := NewClassifier().Classify(ndaText)

	if got.DocumentType != "Contract" {
		t.Fatalf("expected Contract, got %q", got.DocumentType)
	}
	if got.SubType == nil || *got.SubType != "Non-Disclosure Agreement" {
		t.Fatalf("expected Non-Disclosure Agreement sub-type, got %v", got.SubType)
	}
	// 3 of 6 indicators plus the title boost
	if got.Confidence < 0.849 || got.Confidence > 0.851 {
		t.Errorf("expected confidence 0.85, got %f", got.Confidence)
	}
	if len(got.Indicators) != 3 || got.Indicators[0] != "non-disclosure" {
		t.Errorf("unexpected indicators: %v", got.Indicators)
	}
}

func TestClassify_ShortInput(t *testing.T) {
	for _, in := range []string{"", "Non-disclosure agreement.", strings.Repeat(" ", 200)} {
		got := NewClassifier().Classify(in)
		if got.DocumentType != "Unknown" || got.SubType != nil || got.Confidence != 0 || len(got.Indicators) != 0 {
			t.Errorf("Classify(%q) = %+v, want Unknown", in, got)
		}
		if got.Indicators == nil {
			t.Errorf("indicators should be an empty list, not nil")
		}
	}
}

func TestClassify_NoIndicators(t *testing.T) {
	got := NewClassifier().Classify(strings.Repeat("zzz ", 50))
	if got.DocumentType != "Unknown" || got.SubType != nil {
		t.Errorf("expected Unknown, got %+v", got)
	}
}

func TestClassify_TieKeepsDeclarationOrder(t *testing.T) {
	// Complaint and Motion both match one of five indicators
	text := "complaint motion " + strings.Repeat("zzz ", 40)
	got := NewClassifier().Classify(text)

	if got.SubType == nil || *got.SubType != "Complaint" {
		t.Errorf("expected first-declared Complaint to win the tie, got %v", got.SubType)
	}
	if got.DocumentType != "Legal Filing" {
		t.Errorf("expected Legal Filing, got %q", got.DocumentType)
	}
}

func TestClassify_TitleBoost(t *testing.T) {
	body := strings.Repeat("zzz\n", 30)
	early := NewClassifier().Classify("bylaws\n" + body)
	late := NewClassifier().Classify(body + "bylaws\n")

	if early.Confidence-late.Confidence < 0.199 {
		t.Errorf("expected title boost of 0.2, got early=%f late=%f", early.Confidence, late.Confidence)
	}
	if *late.SubType != "Bylaws" {
		t.Errorf("expected Bylaws, got %v", *late.SubType)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewClassifier()
	a, b := c.Classify(ndaText), c.Classify(ndaText)
	if a.Confidence != b.Confidence || *a.SubType != *b.SubType {
		t.Errorf("classification not stable: %+v vs %+v", a, b)
	}
}

func TestWithMinChars(t *testing.T) {
	c := NewClassifier().WithMinChars(10)
	if got := c.Classify("bylaws of the club"); got.DocumentType != "Corporate Document" {
		t.Errorf("expected Corporate Document with lowered threshold, got %+v", got)
	}
}
