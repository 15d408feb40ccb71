// Package pdftext turns statement documents into pages of text tokens.
//
// A token is one run of text as laid out on the page, in reading order.
// Sources are PDF files, token dumps (one token per line, pages separated by
// form feeds, as written by Dump), or either of those stored in Cloud Storage
// and addressed as gs://bucket/object.
package pdftext

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Pages holds the tokens of a document, one slice per page.
type Pages [][]string

// Len returns the total number of tokens.
func (p Pages) Len() int {
	n := 0
	for _, page := range p {
		n += len(page)
	}
	return n
}

// SourceUnreadableError means a source could not be read or tokenized.
type SourceUnreadableError struct {
	Source string
	Err    error
}

func (e *SourceUnreadableError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Source, e.Err)
}

func (e *SourceUnreadableError) Unwrap() error { return e.Err }

const pageBreak = '\f'

// Load reads and tokenizes source.
func Load(ctx context.Context, source string) (Pages, error) {
	var data []byte
	var err error
	if IsRemote(source) {
		data, err = fetchGCS(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, &SourceUnreadableError{Source: source, Err: err}
	}

	var pages Pages
	if strings.EqualFold(path.Ext(source), ".txt") {
		pages, err = ParseDump(data)
	} else {
		pages, err = FromPDF(data)
	}
	if err != nil {
		return nil, &SourceUnreadableError{Source: source, Err: err}
	}
	if pages.Len() == 0 {
		return nil, &SourceUnreadableError{Source: source, Err: fmt.Errorf("no text found")}
	}
	return pages, nil
}

// FromPDF extracts tokens from the rows of each page of a PDF document.
func FromPDF(data []byte) (pages Pages, err error) {
	// The pdf package panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("pdf reader: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	n := r.NumPage()
	if n == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		var tokens []string
		for _, row := range rows {
			for _, word := range row.Content {
				if tok := strings.TrimSpace(word.S); tok != "" {
					tokens = append(tokens, tok)
				}
			}
		}
		pages = append(pages, tokens)
	}
	return pages, nil
}

// ParseDump reads the token dump format written by Dump. A token longer
// than bufio.MaxScanTokenSize is an error.
func ParseDump(data []byte) (Pages, error) {
	chunks := bytes.Split(data, []byte{pageBreak})
	pages := make(Pages, 0, len(chunks))
	for i, chunk := range chunks {
		var tokens []string
		sc := bufio.NewScanner(bytes.NewReader(chunk))
		for sc.Scan() {
			if tok := strings.TrimSpace(sc.Text()); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		// A dump ending in a page break has nothing after it.
		if i == len(chunks)-1 && len(tokens) == 0 && i > 0 {
			break
		}
		pages = append(pages, tokens)
	}
	return pages, nil
}

// Dump writes pages in the token dump format.
func Dump(w io.Writer, pages Pages) error {
	bw := bufio.NewWriter(w)
	for i, page := range pages {
		if i > 0 {
			if _, err := bw.WriteString(string(pageBreak) + "\n"); err != nil {
				return err
			}
		}
		for _, tok := range page {
			if _, err := bw.WriteString(tok + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
