package searchserver

import (
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSING: Plus Words and Minus Words
// ═══════════════════════════════════════════════════════════════════════════════
// A query is free text. Words prefixed with "-" exclude documents:
//
//	"пушистый ухоженный -ошейник"
//	  plus words:  [пушистый, ухоженный]   → contribute to relevance
//	  minus words: [ошейник]              → any document with it is dropped
//
// DOCUMENT SELECTION WITH ROARING BITMAPS:
// -----------------------------------------
//
//	candidates = OR(bitmap(plus))  AND NOT  OR(bitmap(minus))
//
// Candidates iterate in ascending document ID order, which keeps ranking
// deterministic before the relevance sort.
// ═══════════════════════════════════════════════════════════════════════════════

// minusPrefix marks a query word as an exclusion
const minusPrefix = "-"

// Query is a parsed search query.
//
// Both lists are sets: each word appears once, in order of first appearance.
type Query struct {
	PlusWords  []string // Words that contribute to relevance
	MinusWords []string // Words that disqualify a document
}

// IsEmpty reports whether the query has neither plus nor minus words
func (q Query) IsEmpty() bool {
	return len(q.PlusWords) == 0 && len(q.MinusWords) == 0
}

// ParseQuery splits text into plus and minus words using the index stop words.
//
// RULES:
// ------
//  1. Text is analyzed exactly like documents (split, stop words, empties).
//  2. A word starting with "-" loses that one "-" and becomes a minus word,
//     unless the remainder is itself a stop word.
//  3. Every other word is a plus word.
//
// Example (stop words: "и в на"):
//
//	"кот -и -пёс --хвост -"
//	  plus words:  [кот]
//	  minus words: [пёс, -хвост, ""]
//
// "-и" is dropped because "и" is a stop word. The bare "-" becomes the empty
// minus word, which matches no document.
func (idx *InvertedIndex) ParseQuery(text string) Query {
	return parseQuery(text, idx.config.StopWords)
}

func parseQuery(text string, stopWords StopWords) Query {
	query := Query{
		PlusWords:  make([]string, 0),
		MinusWords: make([]string, 0),
	}
	seenPlus := make(map[string]struct{})
	seenMinus := make(map[string]struct{})

	for _, word := range analyze(text, stopWords) {
		if minusWord, isMinus := strings.CutPrefix(word, minusPrefix); isMinus {
			if stopWords.Contains(minusWord) {
				continue
			}
			query.MinusWords = appendUnique(query.MinusWords, seenMinus, minusWord)
			continue
		}
		query.PlusWords = appendUnique(query.PlusWords, seenPlus, word)
	}

	return query
}

// appendUnique appends word unless seen already holds it
func appendUnique(words []string, seen map[string]struct{}, word string) []string {
	if _, exists := seen[word]; exists {
		return words
	}
	seen[word] = struct{}{}
	return append(words, word)
}

// ═══════════════════════════════════════════════════════════════════════════════
// INTERNAL BITMAP HELPERS
// ═══════════════════════════════════════════════════════════════════════════════

// unionBitmap returns the documents containing any of words.
// Unknown words are skipped. The result is always a fresh bitmap.
func (idx *InvertedIndex) unionBitmap(words []string) *roaring.Bitmap {
	bitmaps := make([]*roaring.Bitmap, 0, len(words))
	for _, word := range words {
		if bitmap, exists := idx.DocBitmaps[word]; exists {
			bitmaps = append(bitmaps, bitmap)
		}
	}
	switch len(bitmaps) {
	case 0:
		return roaring.NewBitmap()
	case 1:
		return bitmaps[0].Clone() // Clone to avoid modifying the index
	}
	return roaring.FastOr(bitmaps...)
}

// matchingDocuments returns documents that contain a plus word and no minus word
func (idx *InvertedIndex) matchingDocuments(query Query) *roaring.Bitmap {
	candidates := idx.unionBitmap(query.PlusWords)
	if len(query.MinusWords) > 0 {
		candidates.AndNot(idx.unionBitmap(query.MinusWords))
	}
	return candidates
}
