package parse

import (
	"testing"

	"github.com/loupeview/loupe/internal/logline"
)

func TestHighlight_LiteralCaseInsensitive(t *testing.T) {
	tokens := Tokenize("Connection refused, connection reset")
	got := Highlight(tokens, "connection", false, false)

	var hits int
	for _, tok := range got {
		if tok.Kind == logline.KindMatch {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("got %d match tokens, want 2: %+v", hits, got)
	}
	if logline.JoinTokens(got) != "Connection refused, connection reset" {
		t.Fatalf("round trip broken: %q", logline.JoinTokens(got))
	}
}

func TestHighlight_SplitsWithinToken(t *testing.T) {
	tokens := []logline.Token{{Kind: logline.KindText, Text: "prefix-needle-suffix"}}
	got := Highlight(tokens, "needle", false, false)

	if len(got) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(got), got)
	}
	if got[0].Kind != logline.KindText || got[0].Text != "prefix-" {
		t.Fatalf("prefix token = %+v", got[0])
	}
	if got[1].Kind != logline.KindMatch || got[1].Text != "needle" {
		t.Fatalf("match token = %+v", got[1])
	}
	if got[2].Kind != logline.KindText || got[2].Text != "-suffix" {
		t.Fatalf("suffix token = %+v", got[2])
	}
}

func TestHighlight_RemainderKeepsOriginalKind(t *testing.T) {
	tokens := []logline.Token{{Kind: logline.KindJSON, Text: `{"code":500}`}}
	got := Highlight(tokens, "500", false, false)

	if len(got) != 3 {
		t.Fatalf("got %d tokens: %+v", len(got), got)
	}
	if got[0].Kind != logline.KindJSON || got[2].Kind != logline.KindJSON {
		t.Fatalf("remainder lost its kind: %+v", got)
	}
}

func TestHighlight_ActiveFlag(t *testing.T) {
	tokens := []logline.Token{{Kind: logline.KindText, Text: "needle"}}
	got := Highlight(tokens, "needle", false, true)
	if len(got) != 1 || got[0].Kind != logline.KindMatchActive {
		t.Fatalf("active match = %+v", got)
	}
}

func TestHighlight_Regex(t *testing.T) {
	tokens := []logline.Token{{Kind: logline.KindText, Text: "worker-17 worker-9"}}
	got := Highlight(tokens, `worker-\d+`, true, false)

	var hits int
	for _, tok := range got {
		if tok.Kind == logline.KindMatch {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("got %d regex matches, want 2: %+v", hits, got)
	}
}

func TestHighlight_InvalidRegexLeavesTokensUntouched(t *testing.T) {
	tokens := Tokenize("some content here")
	got := Highlight(tokens, "(unclosed", true, false)
	if len(got) != len(tokens) {
		t.Fatalf("invalid pattern changed tokens: %+v", got)
	}
	for i := range tokens {
		if got[i] != tokens[i] {
			t.Fatalf("token %d changed: %+v vs %+v", i, got[i], tokens[i])
		}
	}
}

func TestHighlight_EmptyQueryNoOp(t *testing.T) {
	tokens := Tokenize("text")
	if got := Highlight(tokens, "", false, false); len(got) != len(tokens) {
		t.Fatalf("empty query changed tokens: %+v", got)
	}
}
