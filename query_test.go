package searchserver

import (
	"reflect"
	"testing"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSING TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestParseQuery(t *testing.T) {
	idx := NewInvertedIndexWithStopWords("и в на")

	tests := []struct {
		name      string
		query     string
		wantPlus  []string
		wantMinus []string
	}{
		{
			name:      "plus words only",
			query:     "пушистый ухоженный кот",
			wantPlus:  []string{"пушистый", "ухоженный", "кот"},
			wantMinus: []string{},
		},
		{
			name:      "minus word",
			query:     "-кот пушистый",
			wantPlus:  []string{"пушистый"},
			wantMinus: []string{"кот"},
		},
		{
			name:      "stop words dropped",
			query:     "кот и пёс в доме",
			wantPlus:  []string{"кот", "пёс", "доме"},
			wantMinus: []string{},
		},
		{
			name:      "minus stop word dropped",
			query:     "кот -и -на",
			wantPlus:  []string{"кот"},
			wantMinus: []string{},
		},
		{
			name:      "single dash stripped",
			query:     "кот --хвост",
			wantPlus:  []string{"кот"},
			wantMinus: []string{"-хвост"},
		},
		{
			name:      "bare dash is empty minus word",
			query:     "кот -",
			wantPlus:  []string{"кот"},
			wantMinus: []string{""},
		},
		{
			name:      "duplicates removed",
			query:     "кот кот -пёс -пёс кот",
			wantPlus:  []string{"кот"},
			wantMinus: []string{"пёс"},
		},
		{
			name:      "dash inside word is not a minus",
			query:     "северо-запад",
			wantPlus:  []string{"северо-запад"},
			wantMinus: []string{},
		},
		{
			name:      "extra spaces",
			query:     "  кот   -пёс ",
			wantPlus:  []string{"кот"},
			wantMinus: []string{"пёс"},
		},
		{
			name:      "empty query",
			query:     "",
			wantPlus:  []string{},
			wantMinus: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := idx.ParseQuery(tt.query)
			if !reflect.DeepEqual(q.PlusWords, tt.wantPlus) {
				t.Errorf("PlusWords = %q, want %q", q.PlusWords, tt.wantPlus)
			}
			if !reflect.DeepEqual(q.MinusWords, tt.wantMinus) {
				t.Errorf("MinusWords = %q, want %q", q.MinusWords, tt.wantMinus)
			}
		})
	}
}

func TestParseQuery_NoStopWords(t *testing.T) {
	// Without stop words minus words are still recognized
	idx := NewInvertedIndex(DefaultConfig())

	q := idx.ParseQuery("кот -пёс")
	if !reflect.DeepEqual(q.MinusWords, []string{"пёс"}) {
		t.Errorf("MinusWords = %q, want [пёс]", q.MinusWords)
	}
}

func TestParseQuery_EmptyStopWordDropsBareDash(t *testing.T) {
	// A blank stop word line makes "" a stop word, so "-" yields nothing
	idx := NewInvertedIndexWithStopWords("")

	q := idx.ParseQuery("кот -")
	if len(q.MinusWords) != 0 {
		t.Errorf("MinusWords = %q, want none", q.MinusWords)
	}
}

func TestQuery_IsEmpty(t *testing.T) {
	idx := NewInvertedIndexWithStopWords("и в на")

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"и в", true},
		{"-и", true},
		{"кот", false},
		{"-кот", false},
	}

	for _, tt := range tests {
		if got := idx.ParseQuery(tt.query).IsEmpty(); got != tt.want {
			t.Errorf("ParseQuery(%q).IsEmpty() = %v, want %v", tt.query, got, tt.want)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// BITMAP SELECTION TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestInvertedIndex_MatchingDocuments(t *testing.T) {
	idx := newCatsIndex(t)

	tests := []struct {
		query string
		want  []uint32
	}{
		{"кот", []uint32{0, 1}},
		{"кот пёс", []uint32{0, 1, 2}},
		{"кот -пушистый", []uint32{0}},
		{"кот -ошейник -хвост", []uint32{}},
		{"собака", []uint32{}},
		{"глаза -собака", []uint32{2}},
	}

	for _, tt := range tests {
		got := idx.matchingDocuments(idx.ParseQuery(tt.query)).ToArray()
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("matchingDocuments(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestInvertedIndex_MatchingDocuments_DoesNotModifyIndex(t *testing.T) {
	idx := newCatsIndex(t)

	idx.matchingDocuments(idx.ParseQuery("кот -пушистый"))

	if got := idx.DocBitmaps["кот"].GetCardinality(); got != 2 {
		t.Errorf("bitmap for кот has %d documents after query, want 2", got)
	}
}
