// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Text analysis turns raw text into the tokens that get indexed and queried.
// The pipeline has three steps:
//
// ANALYSIS PIPELINE:
// ------------------
//  1. Tokenization      → Split text on the space character
//  2. Stop word removal → Remove configured stop words
//  3. Empty filtering   → Remove empty tokens left by repeated spaces
//
// There is no lowercasing, punctuation stripping or stemming. Tokens match
// exactly: "Кот", "кот" and "кот," are three different words.
//
// EXAMPLE TRANSFORMATION (stop words: "и в на"):
// ----------------------------------------------
// Input:  "белый кот и  модный ошейник"
// Step 1: ["белый", "кот", "и", "", "модный", "ошейник"]  (tokenize)
// Step 2: ["белый", "кот", "", "модный", "ошейник"]       (remove stop words)
// Step 3: ["белый", "кот", "модный", "ошейник"]           (drop empty tokens)
// ═══════════════════════════════════════════════════════════════════════════════

package searchserver

import (
	"strings"
)

// wordSeparator is the only delimiter the tokenizer recognizes.
const wordSeparator = " "

// SplitIntoWords splits text into words on the single space character.
//
// Every run of characters between two separators is a token, including the
// empty run. Adjacent spaces, a leading space or a trailing space produce
// empty tokens, and empty text produces a single empty token:
//
//	""            → [""]
//	"кот"         → ["кот"]
//	"кот  пёс "   → ["кот", "", "пёс", ""]
//
// Tabs and other whitespace are ordinary characters.
func SplitIntoWords(text string) []string {
	return strings.Split(text, wordSeparator)
}

// StopWords is an immutable set of words ignored during indexing and query
// parsing.
//
// The zero value is an empty set and is ready to use.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a stop word set from space-separated text.
//
// Every token produced by SplitIntoWords is inserted, so "и  в" also makes
// the empty string a stop word. ParseQuery then drops a bare "-" instead of
// keeping it as the empty minus word.
func NewStopWords(text string) StopWords {
	tokens := SplitIntoWords(text)
	words := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		words[token] = struct{}{}
	}
	return StopWords{words: words}
}

// Contains reports whether word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, exists := s.words[word]
	return exists
}

// Len returns the number of distinct stop words.
func (s StopWords) Len() int {
	return len(s.words)
}

// Filter returns the tokens that are not stop words, preserving order.
func (s StopWords) Filter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !s.Contains(token) {
			r = append(r, token)
		}
	}
	return r
}

// analyze runs the full pipeline used for both documents and queries.
func analyze(text string, stopWords StopWords) []string {
	tokens := SplitIntoWords(text)
	tokens = stopWords.Filter(tokens)
	return emptyFilter(tokens)
}

// emptyFilter removes empty tokens.
//
// Example:
//
//	["кот", "", "пёс", ""] → ["кот", "пёс"]
func emptyFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != "" {
			r = append(r, token)
		}
	}
	return r
}
