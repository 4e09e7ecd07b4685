package searchserver

import (
	"log/slog"
	"math"
	"sort"
)

// ═══════════════════════════════════════════════════════════════════════════════
// RANKING: TF-IDF Relevance
// ═══════════════════════════════════════════════════════════════════════════════
// Every plus word adds TF × IDF to each document that contains it:
//
//	relevance(doc) = Σ tf(word, doc) × ln(N / df(word))
//
// Where:
//
//	N  = number of indexed documents
//	df = number of documents containing the word
//
// EXAMPLE CALCULATION:
// --------------------
// Stop words: "и в на"
// Doc 0: "белый кот и модный ошейник"
// Doc 1: "пушистый кот пушистый хвост"
// Doc 2: "ухоженный пёс выразительные глаза"
// Query: "пушистый ухоженный кот"
//
//	"пушистый"  df=1, idf=ln(3/1)=1.0986  → Doc1 += 0.50 × 1.0986 = 0.5493
//	"ухоженный" df=1, idf=ln(3/1)=1.0986  → Doc2 += 0.25 × 1.0986 = 0.2747
//	"кот"       df=2, idf=ln(3/2)=0.4055  → Doc0 += 0.25 × 0.4055 = 0.1014
//	                                      → Doc1 += 0.25 × 0.4055 = 0.1014
//
//	Result: Doc1 0.6507, Doc2 0.2747, Doc0 0.1014
//
// A word present in every document has idf = ln(1) = 0. Documents matching
// only such words still count as matches, with relevance 0.
// ═══════════════════════════════════════════════════════════════════════════════

// MaxResultDocumentCount is the number of results FindTopDocuments returns at most
const MaxResultDocumentCount = 5

// Match is a ranked search result
type Match struct {
	DocID     int     // Document identifier
	Relevance float64 // TF-IDF relevance (higher = more relevant)
}

// FindTopDocuments returns the best MaxResultDocumentCount matches for query,
// most relevant first.
//
// Documents containing any minus word never appear, and neither do documents
// without a single plus word. Equal relevance is broken by ascending DocID.
func (idx *InvertedIndex) FindTopDocuments(query string) []Match {
	return limitResults(idx.FindAllDocuments(query), MaxResultDocumentCount)
}

// FindAllDocuments ranks every matching document for query.
//
// ALGORITHM:
// ----------
// 1. Parse query → plus words, minus words
// 2. Accumulate tf × idf per document over all plus words
// 3. Select candidates: OR(plus bitmaps) AND NOT OR(minus bitmaps)
// 4. Sort by relevance (descending), then DocID (ascending)
func (idx *InvertedIndex) FindAllDocuments(query string) []Match {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	slog.Debug("tf-idf ranking", slog.String("query", query))

	parsed := idx.ParseQuery(query)
	if len(parsed.PlusWords) == 0 {
		return []Match{}
	}

	slog.Debug("query words",
		slog.Any("plus", parsed.PlusWords),
		slog.Any("minus", parsed.MinusWords))

	relevance := idx.accumulateRelevance(parsed.PlusWords)

	candidates := idx.matchingDocuments(parsed)
	results := make([]Match, 0, candidates.GetCardinality())
	iter := candidates.Iterator()
	for iter.HasNext() {
		docID := int(iter.Next())
		results = append(results, Match{
			DocID:     docID,
			Relevance: relevance[docID],
		})
	}

	sortMatchesByRelevance(results)
	return results
}

// accumulateRelevance sums tf × idf per document for the given plus words
func (idx *InvertedIndex) accumulateRelevance(plusWords []string) map[int]float64 {
	relevance := make(map[int]float64)
	for _, word := range plusWords {
		freqs, exists := idx.WordFreqs[word]
		if !exists {
			continue
		}

		idf := idx.calculateIDF(word)
		for docID, tf := range freqs {
			relevance[docID] += tf * idf
		}
	}
	return relevance
}

// calculateIDF computes ln(N / df) for word.
//
// Both operands are converted to float64 before dividing. With integer
// division ln(3/2) would collapse to ln(1) = 0.
//
// Unknown words return 0. A known word always has df ≥ 1.
func (idx *InvertedIndex) calculateIDF(word string) float64 {
	df := idx.documentFrequency(word)
	if df == 0 {
		return 0.0
	}
	return math.Log(float64(idx.TotalDocs) / float64(df))
}

// sortMatchesByRelevance sorts matches by relevance descending, then DocID ascending
func sortMatchesByRelevance(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Relevance != matches[j].Relevance {
			return matches[i].Relevance > matches[j].Relevance
		}
		return matches[i].DocID < matches[j].DocID
	})
}

// limitResults returns at most maxResults items
func limitResults(matches []Match, maxResults int) []Match {
	return matches[:min(maxResults, len(matches))]
}
