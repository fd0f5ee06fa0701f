package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	topics := Topics()
	names := map[string]string{}
	for _, tp := range topics {
		names[tp.Name] = tp.Title
	}
	for _, want := range []string{"keys", "filtering", "quick-edit", "data", "config"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("missing topic %q in %v", want, topics)
		}
	}
	if names["quick-edit"] != "Quick edit" {
		t.Fatalf("expected title from heading, got %q", names["quick-edit"])
	}
	for i := 1; i < len(topics); i++ {
		if topics[i-1].Name > topics[i].Name {
			t.Fatalf("topics not sorted: %v", topics)
		}
	}
}

func TestGet(t *testing.T) {
	body, ok := Get(" Keys ")
	if !ok || !strings.Contains(body, "ctrl+s") {
		t.Fatalf("expected keys topic, got ok=%v", ok)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("Get(%q): expected miss", bad)
		}
	}
}
