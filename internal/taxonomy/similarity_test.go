package taxonomy

import (
	"math"
	"testing"
)

func TestLevenshteinBasics(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"react", "react", 0},
		{"React", "react", 0},
		{"react", "reactjs", 2},
		{"golang", "go", 4},
	}
	for _, tc := range cases {
		if got := Levenshtein(tc.a, tc.b); got != tc.want {
			t.Fatalf("Levenshtein(%q, %q): got=%d want=%d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinSymmetric(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"javascript", "typescript"},
		{"frontend", "front-end"},
		{"", "x"},
	}
	for _, p := range pairs {
		if Levenshtein(p[0], p[1]) != Levenshtein(p[1], p[0]) {
			t.Fatalf("Levenshtein not symmetric for %q / %q", p[0], p[1])
		}
	}
}

func TestSimilarityCaseFoldedEqual(t *testing.T) {
	t.Parallel()
	if got := Similarity("GoLang", "golang"); got != 1.0 {
		t.Fatalf("case-folded equal names: got=%v want=1.0", got)
	}
	if got := Similarity("", ""); got != 1.0 {
		t.Fatalf("two empty names: got=%v want=1.0", got)
	}
}

func TestSimilarityNearDuplicate(t *testing.T) {
	t.Parallel()
	// distance 2 over the longer length 7
	got := Similarity("React", "Reactjs")
	want := 1.0 - 2.0/7.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Similarity(React, Reactjs): got=%v want=%v", got, want)
	}
}

func TestSimilarityStaysInRange(t *testing.T) {
	t.Parallel()
	pairs := [][2]string{
		{"a", "zzzzzzzzzz"},
		{"databases", "db"},
		{"ai", "ml"},
		{"tag", "tag"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Fatalf("Similarity(%q, %q) out of range: %v", p[0], p[1], got)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Machine Learning", "machine-learning"},
		{"C++ Tips & Tricks", "c-tips-tricks"},
		{"  spaced  out  ", "spaced-out"},
		{"already-clean", "already-clean"},
		{"Ünïcode Näme", "ünïcode-näme"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in, false); got != tc.want {
			t.Fatalf("Slugify(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
	if got := Slugify("MixedCase", true); got != "MixedCase" {
		t.Fatalf("case-sensitive slug: got=%q want=%q", got, "MixedCase")
	}
}
