package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/legalyze/internal/model"
)

func TestTopicExtractor_CategoryTopic(t *testing.T) {
	text := "This Agreement is between the parties. The parties agree that each party shall perform every obligation under this agreement."
	topics := NewTopicExtractor(0).Extract(text)

	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d: %+v", len(topics), topics)
	}
	topic := topics[0]

	// terms 6.0 + agreement pattern 2×0.5 + obligation pattern 0.5 = 7.5, doubled
	if topic.Topic != "Contract Law" || topic.Score != 15 {
		t.Errorf("unexpected topic: %+v", topic)
	}
	if topic.Type != model.TopicCategory || topic.Relevance != model.LevelLow || topic.Color != "#4285F4" {
		t.Errorf("unexpected topic attributes: %+v", topic)
	}
	if len(topic.TopTerms) < 2 || topic.TopTerms[0] != "agreement" || topic.TopTerms[1] != "parties" {
		t.Errorf("unexpected top terms: %v", topic.TopTerms)
	}
	if len(topic.Context) != 2 {
		t.Errorf("expected 2 contexts, got %q", topic.Context)
	}
}

func TestTopicExtractor_KeywordTopics(t *testing.T) {
	topics := NewTopicExtractor(0).Extract(strings.Repeat("The widget ships today. ", 7))

	if len(topics) == 0 {
		t.Fatal("expected keyword topics")
	}
	first := topics[0]
	if first.Topic != "Widget" || first.Type != model.TopicKeyword || first.Score != 35 {
		t.Errorf("unexpected keyword topic: %+v", first)
	}
	if first.Relevance != model.LevelLow || first.Color != keywordColor {
		t.Errorf("unexpected keyword attributes: %+v", first)
	}
	if len(first.Context) != 1 || first.Context[0] != "The widget ships today." {
		t.Errorf("unexpected keyword context: %q", first.Context)
	}
}

func TestTopicExtractor_LimitsAndOrder(t *testing.T) {
	var b strings.Builder
	for _, w := range []string{"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot", "golfer"} {
		b.WriteString(strings.Repeat(w+" ", 8))
	}
	topics := NewTopicExtractor(0).Extract(b.String())
	if len(topics) != maxKeywordTopics {
		t.Errorf("expected %d keyword topics, got %d", maxKeywordTopics, len(topics))
	}
	for i := 1; i < len(topics); i++ {
		if topics[i].Score > topics[i-1].Score {
			t.Errorf("topics not sorted at %d", i)
		}
	}
}

func TestInCategory(t *testing.T) {
	tests := map[string]bool{
		"agreements": true, // contains "agreement"
		"proper":     true, // part of "property"
		"widget":     false,
	}
	for word, want := range tests {
		if got := inCategory(word); got != want {
			t.Errorf("inCategory(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestTopicExtractor_Empty(t *testing.T) {
	if got := NewTopicExtractor(0).Extract("   "); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}
