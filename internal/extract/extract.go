package extract

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Document is one extracted resume. Content holds either the page-concatenated
// text or an "Error: ..." message when extraction failed; one bad file must
// not abort the batch.
type Document struct {
	FileName string
	Content  string
}

// Documents extracts text from every supported file in dir, in directory
// listing order. Files with unsupported extensions are skipped.
func Documents(ctx context.Context, dir string, extensions []string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	supported := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		supported[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch dir: %w", err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if _, ok := supported[ext]; !ok {
			continue
		}

		text, err := extractFile(filepath.Join(dir, entry.Name()), ext)
		if err != nil {
			docs = append(docs, Document{FileName: entry.Name(), Content: "Error: " + err.Error()})
			continue
		}
		docs = append(docs, Document{FileName: entry.Name(), Content: text})
	}
	return docs, nil
}

func extractFile(path, ext string) (text string, err error) {
	// The pdf library panics on some malformed inputs; a corrupt upload must
	// surface as a per-file error, not kill the request.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("extract %s: %v", filepath.Base(path), rec)
		}
	}()

	switch ext {
	case "pdf":
		return extractPDF(path)
	case "docx":
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("unsupported extension: %s", ext)
	}
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDOCX(path string) (string, error) {
	d, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer d.Close()

	return strings.TrimSpace(stripDocxXML(d.Editable().GetContent())), nil
}

// stripDocxXML reduces WordprocessingML to plain text, inserting newlines at
// paragraph and line-break boundaries.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return buf.String()
}
