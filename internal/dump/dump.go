// Package dump streams pages out of a MediaWiki pages-articles XML export,
// optionally bzip2-compressed. Pages are decoded one element at a time so a
// multi-gigabyte dump never has more than one page materialized.
package dump

import (
	"compress/bzip2"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// A Page is one dump record. Only the title and the revision text are
// decoded; everything else in the element is skipped.
type Page struct {
	Title    string `xml:"title"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

// A Reader emits pages from one pass over a dump stream.
type Reader struct {
	dec *xml.Decoder
}

// NewReader wraps an uncompressed XML stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next returns the next page in the stream, or io.EOF when the dump is
// exhausted. The returned page holds no reference to decoder state; callers
// may drop it as soon as they are done with it.
func (r *Reader) Next() (*Page, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read dump token: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "page" {
			continue
		}
		page := new(Page)
		if err := r.dec.DecodeElement(page, &start); err != nil {
			return nil, fmt.Errorf("decode page element: %w", err)
		}
		return page, nil
	}
}

// Open opens a dump file for one streaming pass, transparently decompressing
// a .bz2 file. Closing the returned ReadCloser closes the underlying file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	if strings.HasSuffix(path, ".bz2") {
		return &bzip2ReadCloser{r: bzip2.NewReader(f), f: f}, nil
	}
	return f, nil
}

type bzip2ReadCloser struct {
	r io.Reader
	f *os.File
}

func (b *bzip2ReadCloser) Read(p []byte) (int, error) { return b.r.Read(p) }
func (b *bzip2ReadCloser) Close() error               { return b.f.Close() }
