package provider

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNormalizeSentimentDefaults(t *testing.T) {
	tests := map[string]struct {
		raw   string
		value int
		class string
	}{
		"garbage":           {raw: `not json`, value: 50, class: "Neutral"},
		"missing value":     {raw: `{"data":[{"value_classification":"Fear"}]}`, value: 50, class: "Fear"},
		"numeric value":     {raw: `{"data":[{"value":12,"value_classification":"Extreme Fear"}]}`, value: 12, class: "Extreme Fear"},
		"blank class":       {raw: `{"data":[{"value":"80","value_classification":"  "}]}`, value: 80, class: "Neutral"},
		"unparseable value": {raw: `{"data":[{"value":"high"}]}`, value: 50, class: "Neutral"},
		"above range":       {raw: `{"data":[{"value":150,"value_classification":"Greed"}]}`, value: 50, class: "Greed"},
		"below range":       {raw: `{"data":[{"value":"-3"}]}`, value: 50, class: "Neutral"},
		"overflowing value": {raw: `{"data":[{"value":"1e300"}]}`, value: 50, class: "Neutral"},
		"upper bound":       {raw: `{"data":[{"value":"100"}]}`, value: 100, class: "Neutral"},
		"lower bound":       {raw: `{"data":[{"value":0}]}`, value: 0, class: "Neutral"},
	}
	for name, tc := range tests {
		got := NormalizeSentiment([]byte(tc.raw))
		if got.Value != tc.value || got.Classification != tc.class {
			t.Fatalf("%s: expected %d/%s, got %+v", name, tc.value, tc.class, got)
		}
	}
}

func TestNormalizeSentimentMillisecondTimestamp(t *testing.T) {
	got := NormalizeSentiment([]byte(`{"data":[{"value":"40","timestamp":"1771009800000"}]}`))
	if !got.Timestamp.Equal(time.Unix(1771009800, 0).UTC()) {
		t.Fatalf("unexpected timestamp: %v", got.Timestamp)
	}
}

func TestNormalizeProtocolsCapsAndSorts(t *testing.T) {
	var rows []string
	for i := 1; i <= 25; i++ {
		rows = append(rows, fmt.Sprintf(`{"name":"p%d","tvl":%d}`, i, i*100))
	}
	rows = append(rows, `{"name":"negative","tvl":-5}`, `{"name":"missing"}`, `{"name":"text","tvl":"n/a"}`)

	got := NormalizeProtocols([]byte("[" + strings.Join(rows, ",") + "]"))
	if len(got) != 10 {
		t.Fatalf("expected 10 protocols, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].TVL < got[i].TVL {
			t.Fatalf("protocols not sorted descending at %d: %v < %v", i, got[i-1].TVL, got[i].TVL)
		}
	}
	for _, p := range got {
		if p.TVL <= 0 {
			t.Fatalf("non-positive TVL kept: %+v", p)
		}
	}
	if got[0].Name != "p25" {
		t.Fatalf("expected largest first, got %s", got[0].Name)
	}
}

func TestNormalizeProtocolsNonArray(t *testing.T) {
	if got := NormalizeProtocols([]byte(`{"message":"rate limited"}`)); len(got) != 0 {
		t.Fatalf("expected no protocols, got %+v", got)
	}
}

func TestNormalizeTokenTruncatesDescription(t *testing.T) {
	long := strings.Repeat("é", 600)
	got := NormalizeToken([]byte(`{"id":"x","symbol":"x","description":{"en":"` + long + `"}}`))
	if n := len([]rune(got.Description)); n != 500 {
		t.Fatalf("expected 500 runes, got %d", n)
	}
	if got.Price != nil {
		t.Fatalf("missing market data should leave price nil")
	}
}

func TestParseFloatString(t *testing.T) {
	tests := map[string]float64{
		"$1,234.50": 1234.5,
		"-3.2%":     -3.2,
		" 42 ":      42,
	}
	for in, want := range tests {
		got, ok := parseFloatString(in)
		if !ok || got != want {
			t.Fatalf("%q: expected %v, got %v (%v)", in, want, got, ok)
		}
	}
	if _, ok := parseFloatString("n/a"); ok {
		t.Fatal("expected n/a to be unparseable")
	}
}
