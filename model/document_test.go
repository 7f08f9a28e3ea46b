package model

import "testing"

func TestRankedDocBetter(t *testing.T) {
	tests := []struct {
		name string
		a, b RankedDoc
		want bool
	}{
		{
			"exact phrase wins over higher score",
			RankedDoc{ExactPhraseMatch: true, Score: 1},
			RankedDoc{Score: 100},
			true,
		},
		{
			"title boost wins over higher score",
			RankedDoc{TitleBoost: 2, Score: 1},
			RankedDoc{TitleBoost: 1, Score: 100},
			true,
		},
		{
			"score decides when boosts equal",
			RankedDoc{Score: 2},
			RankedDoc{Score: 1},
			true,
		},
		{
			"score within epsilon falls to occurrences",
			RankedDoc{Score: 1.00001, TotalOccurrences: 5},
			RankedDoc{Score: 1.00002, TotalOccurrences: 3},
			true,
		},
		{
			"all equal is not better",
			RankedDoc{Score: 1, TotalOccurrences: 2},
			RankedDoc{Score: 1, TotalOccurrences: 2},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Better(tt.b); got != tt.want {
				t.Errorf("Better() = %v, want %v", got, tt.want)
			}
			if tt.want && tt.b.Better(tt.a) {
				t.Error("ordering is not antisymmetric")
			}
		})
	}
}
