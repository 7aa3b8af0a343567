// Reelpick - Transparent Film Taste and Recommendation Engine
// Copyright 2026 Reelpick contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package models

import (
	"reflect"
	"testing"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Verdict
		wantErr bool
	}{
		{name: "like", input: "like", want: VerdictLike},
		{name: "dislike", input: "dislike", want: VerdictDislike},
		{name: "neutral", input: "neutral", want: VerdictNeutral},
		{name: "uppercase", input: "LIKE", want: VerdictLike},
		{name: "padded", input: "  dislike ", want: VerdictDislike},
		{name: "unknown", input: "love", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVerdict(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVerdict(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVerdict(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVerdict(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVerdictValid(t *testing.T) {
	if !VerdictLike.Valid() || !VerdictDislike.Valid() || !VerdictNeutral.Valid() {
		t.Error("known verdicts must be valid")
	}
	if Verdict("maybe").Valid() {
		t.Error("unknown verdict must be invalid")
	}
	if Verdict("").Valid() {
		t.Error("empty verdict must be invalid")
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil", input: nil, want: nil},
		{name: "empty", input: []string{}, want: nil},
		{name: "known tags sorted", input: []string{"funny", "cozy"}, want: []string{"cozy", "funny"}},
		{name: "unknown dropped", input: []string{"funny", "bogus"}, want: []string{"funny"}},
		{name: "all unknown", input: []string{"bogus", "nope"}, want: nil},
		{name: "case and whitespace", input: []string{" Funny ", "DARK"}, want: []string{"dark", "funny"}},
		{name: "duplicates collapse", input: []string{"weird", "weird", "WEIRD"}, want: []string{"weird"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVerdictCountsTotal(t *testing.T) {
	c := VerdictCounts{Like: 3, Dislike: 2, Neutral: 1}
	if got := c.Total(); got != 6 {
		t.Errorf("Total() = %d, want 6", got)
	}
}

func TestItemHasYear(t *testing.T) {
	if (Item{}).HasYear() {
		t.Error("zero year must report unknown")
	}
	if !(Item{Year: 1994}).HasYear() {
		t.Error("positive year must report known")
	}
}
