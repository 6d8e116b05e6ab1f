package docs

import (
	"strings"
	"testing"
)

func TestTopics_SortedWithTitles(t *testing.T) {
	topics := Topics()
	if len(topics) == 0 {
		t.Fatal("expected embedded topics")
	}
	for i, tp := range topics {
		if tp.Title == "" {
			t.Errorf("topic %q has no title", tp.Name)
		}
		if i > 0 && topics[i-1].Name >= tp.Name {
			t.Fatalf("topics not sorted: %q before %q", topics[i-1].Name, tp.Name)
		}
	}
}

func TestGet_KnownTopic(t *testing.T) {
	body, ok := Get("Getting-Started")
	if !ok {
		t.Fatal("expected getting-started to resolve case-insensitively")
	}
	if !strings.Contains(body, "# Getting started") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestGet_RejectsPathsAndUnknowns(t *testing.T) {
	for _, name := range []string{"", "   ", "nope", "../docs", `..\docs`, "content/export"} {
		if _, ok := Get(name); ok {
			t.Fatalf("expected Get(%q) to fail", name)
		}
	}
}
