// Package searchserver implements a small in-memory TF-IDF search engine
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT DOES THE INDEX STORE?
// ═══════════════════════════════════════════════════════════════════════════════
// Documents are not kept verbatim. Only their term frequencies survive:
//
//	Doc 0: "белый кот модный ошейник"
//	Doc 1: "пушистый кот пушистый хвост"
//
// The index would look like:
//
//	"белый"    → {0: 0.25}
//	"кот"      → {0: 0.25, 1: 0.25}
//	"модный"   → {0: 0.25}
//	"ошейник"  → {0: 0.25}
//	"пушистый" → {1: 0.50}
//	"хвост"    → {1: 0.25}
//
// TF is the share of the document's words equal to the word, so the
// frequencies of any one document always add up to 1.
//
// Next to the frequencies, every word has a roaring bitmap of the documents
// that contain it. The bitmap answers "how many documents contain this word"
// in O(1) and makes candidate selection and exclusion plain set operations.
// ═══════════════════════════════════════════════════════════════════════════════

package searchserver

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
var (
	ErrInvalidDocument   = errors.New("document has no words")
	ErrInvalidDocumentID = errors.New("document id out of range")
	ErrDuplicateDocument = errors.New("document already indexed")
)

// Config holds the immutable settings of an index.
//
// Stop words are fixed at construction time. There is no way to change them
// once documents have been added.
type Config struct {
	StopWords StopWords // Words ignored when indexing and parsing queries
}

// DefaultConfig returns a configuration without stop words
func DefaultConfig() Config {
	return Config{}
}

// ═══════════════════════════════════════════════════════════════════════════════
// CORE DATA STRUCTURE: InvertedIndex
// ═══════════════════════════════════════════════════════════════════════════════
//
//	InvertedIndex
//	├── WordFreqs:  map[string]map[int]float64  (TERM FREQUENCIES)
//	│   └── "кот" → {0: 0.25, 1: 0.25}
//	├── DocBitmaps: map[string]*roaring.Bitmap  (DOCUMENT SETS)
//	│   └── "кот" → {0, 1}
//	├── TotalDocs:  corpus size, the IDF numerator
//	└── mu: write lock for AddDocument, read lock for queries
//
// The index is built once and then only read. Queries may run concurrently
// with each other but not with AddDocument.
// ═══════════════════════════════════════════════════════════════════════════════
type InvertedIndex struct {
	mu sync.RWMutex

	WordFreqs  map[string]map[int]float64 // Word → DocID → term frequency
	DocBitmaps map[string]*roaring.Bitmap // Word → Bitmap of document IDs
	TotalDocs  int                        // Number of indexed documents

	docs   *roaring.Bitmap // Every indexed document ID
	config Config
}

// NewInvertedIndex creates an empty index using cfg
func NewInvertedIndex(cfg Config) *InvertedIndex {
	return &InvertedIndex{
		WordFreqs:  make(map[string]map[int]float64),
		DocBitmaps: make(map[string]*roaring.Bitmap),
		TotalDocs:  0,
		docs:       roaring.NewBitmap(),
		config:     cfg,
	}
}

// NewInvertedIndexWithStopWords is a shortcut for an index whose stop words
// are given as space-separated text.
func NewInvertedIndexWithStopWords(stopWords string) *InvertedIndex {
	return NewInvertedIndex(Config{StopWords: NewStopWords(stopWords)})
}

// StopWords returns the stop words the index was built with
func (idx *InvertedIndex) StopWords() StopWords {
	return idx.config.StopWords
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING: Building the Search Index
// ═══════════════════════════════════════════════════════════════════════════════

// AddDocument analyzes text and records the term frequencies of document id
//
// STEP-BY-STEP EXAMPLE:
// ----------------------
// Input: id=1, text="пушистый кот пушистый хвост"
//
// Step 1: Analysis
//
//	["пушистый", "кот", "пушистый", "хвост"]  (4 words)
//
// Step 2: Count occurrences
//
//	пушистый: 2, кот: 1, хвост: 1
//
// Step 3: Divide by document length and store
//
//	WordFreqs["пушистый"][1] = 0.5
//	WordFreqs["кот"][1]      = 0.25
//	WordFreqs["хвост"][1]    = 0.25
//
// A document that analyzes to zero words is rejected with ErrInvalidDocument
// instead of dividing by zero. Rejected documents leave the index untouched
// and do not count toward TotalDocs.
func (idx *InvertedIndex) AddDocument(id int, text string) error {
	if id < 0 || int64(id) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidDocumentID, id)
	}

	tokens := analyze(text, idx.config.StopWords)
	if len(tokens) == 0 {
		return fmt.Errorf("%w after stop-word filtering: id %d", ErrInvalidDocument, id)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	docID := uint32(id)
	if idx.docs.Contains(docID) {
		return fmt.Errorf("%w: %d", ErrDuplicateDocument, id)
	}

	slog.Debug("indexing document", slog.Int("docID", id), slog.Int("words", len(tokens)))

	for word, tf := range termFrequencies(tokens) {
		idx.indexWord(word, id, tf)
	}

	idx.docs.Add(docID)
	idx.TotalDocs++
	return nil
}

// termFrequencies maps each distinct token to its share of tokens.
// tokens must not be empty.
func termFrequencies(tokens []string) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	total := float64(len(tokens))
	freqs := make(map[string]float64, len(counts))
	for token, count := range counts {
		freqs[token] = float64(count) / total
	}
	return freqs
}

// indexWord stores one (word, document, tf) entry in both structures
func (idx *InvertedIndex) indexWord(word string, docID int, tf float64) {
	freqs, exists := idx.WordFreqs[word]
	if !exists {
		freqs = make(map[int]float64)
		idx.WordFreqs[word] = freqs
	}
	freqs[docID] = tf

	if idx.DocBitmaps[word] == nil {
		idx.DocBitmaps[word] = roaring.NewBitmap()
	}
	idx.DocBitmaps[word].Add(uint32(docID))
}

// ═══════════════════════════════════════════════════════════════════════════════
// LOOKUPS
// ═══════════════════════════════════════════════════════════════════════════════

// FrequenciesFor returns document ID → term frequency for word.
//
// The result is a copy, so callers can't modify the index through it. An
// unknown word yields an empty map.
func (idx *InvertedIndex) FrequenciesFor(word string) map[int]float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	freqs := idx.WordFreqs[word]
	r := make(map[int]float64, len(freqs))
	for docID, tf := range freqs {
		r[docID] = tf
	}
	return r
}

// DocumentFrequency returns how many documents contain word
func (idx *InvertedIndex) DocumentFrequency(word string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.documentFrequency(word)
}

func (idx *InvertedIndex) documentFrequency(word string) int {
	bitmap, exists := idx.DocBitmaps[word]
	if !exists {
		return 0
	}
	return int(bitmap.GetCardinality())
}

// DocumentCount returns the number of indexed documents
func (idx *InvertedIndex) DocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.TotalDocs
}
