package contract

import (
	"strings"
	"testing"
)

// FuzzSplitList checks that split entries are never blank or padded.
func FuzzSplitList(f *testing.F) {
	for _, seed := range []string{"", "usa", "usa,chn", " usa , ,chn ", ",,,", "a,b,c,d"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		for _, part := range SplitList(s) {
			if part == "" || strings.TrimSpace(part) != part {
				t.Fatalf("bad entry %q from %q", part, s)
			}
			if strings.Contains(part, ",") {
				t.Fatalf("entry %q still contains a separator", part)
			}
		}
	})
}

// FuzzParseBoolString checks that parsing never panics and errors only on unknown words.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "NO", "true", "False", "1", "0", "", "maybe"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		_, err := ParseBoolString(s)
		switch strings.ToLower(s) {
		case "yes", "no", "true", "false", "1", "0":
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", s, err)
			}
		default:
			if err == nil {
				t.Fatalf("expected error for %q", s)
			}
		}
	})
}
