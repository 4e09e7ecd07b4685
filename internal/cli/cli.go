// Package cli implements the line protocol of the searchserver command.
//
// Input (stdin):
//
//	<stop words>
//	<document count n>
//	<document 0>
//	...
//	<document n-1>
//	<query>
//
// Output (stdout), one line per result in ranked order:
//
//	{ document_id = 1, relevance = 0.650672 }
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wizenheimer/searchserver"
)

// ErrMalformedInput is returned when stdin does not follow the line protocol.
var ErrMalformedInput = errors.New("malformed input")

// Load reads stop words, documents and the query from r and builds the index.
//
// Documents get ids in input order starting at 0. A document with no words
// left after stop-word filtering is logged and skipped; its id is not reused.
// A missing query line yields an empty query.
func Load(r io.Reader) (*searchserver.InvertedIndex, string, error) {
	br := bufio.NewReader(r)

	stopWords, err := readLine(br)
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading stop words: %v", ErrMalformedInput, err)
	}
	idx := searchserver.NewInvertedIndexWithStopWords(stopWords)

	countLine, err := readLine(br)
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading document count: %v", ErrMalformedInput, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return nil, "", fmt.Errorf("%w: document count %q", ErrMalformedInput, countLine)
	}

	for id := 0; id < count; id++ {
		text, err := readLine(br)
		if err != nil {
			return nil, "", fmt.Errorf("%w: expected %d documents, got %d", ErrMalformedInput, count, id)
		}
		if err := idx.AddDocument(id, text); err != nil {
			if errors.Is(err, searchserver.ErrInvalidDocument) {
				slog.Warn("skipping document", slog.Int("docID", id), slog.String("error", err.Error()))
				continue
			}
			return nil, "", fmt.Errorf("adding document %d: %w", id, err)
		}
	}

	query, err := readLine(br)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("reading query: %w", err)
	}

	slog.Info("index built",
		slog.Int("documents", idx.DocumentCount()),
		slog.Int("stopWords", idx.StopWords().Len()))

	return idx, query, nil
}

// readLine returns the next line without its "\n" or "\r\n" terminator.
// A final line without terminator is returned normally; io.EOF is returned
// only when nothing is left.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// WriteMatches prints one line per match. Relevance is printed with the given
// number of significant digits in %g style.
func WriteMatches(w io.Writer, matches []searchserver.Match, precision int) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		_, err := fmt.Fprintf(bw, "{ document_id = %d, relevance = %s }\n",
			m.DocID, strconv.FormatFloat(m.Relevance, 'g', precision, 64))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Run loads the corpus from in, executes the query and writes the results to out.
func Run(in io.Reader, out io.Writer, precision int) error {
	idx, query, err := Load(in)
	if err != nil {
		return err
	}
	return WriteMatches(out, idx.FindTopDocuments(query), precision)
}
