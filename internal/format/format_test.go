package format

import (
	"strings"
	"testing"
)

func TestWrite_JSONCompactAndPretty(t *testing.T) {
	v := map[string]any{"title": "Paint mural", "id": 1}

	var compact strings.Builder
	if err := Write(&compact, v, "json", false); err != nil {
		t.Fatal(err)
	}
	if got := compact.String(); got != `{"id":1,"title":"Paint mural"}`+"\n" {
		t.Fatalf("compact json: %q", got)
	}

	var pretty strings.Builder
	if err := Write(&pretty, v, "", true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), "\n  \"id\": 1") {
		t.Fatalf("pretty json: %q", pretty.String())
	}
}

func TestWrite_EDN(t *testing.T) {
	v := map[string]any{"total": 8, "items": []any{"a", true, nil}, "pct": 12.5}

	var out strings.Builder
	if err := Write(&out, v, "edn", false); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{":total 8", `["a" true nil]`, ":pct 12.5"} {
		if !strings.Contains(got, want) {
			t.Errorf("edn output %q missing %q", got, want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var out strings.Builder
	if err := Write(&out, 1, "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
