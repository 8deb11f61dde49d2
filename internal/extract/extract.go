package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cvtools/cvmatch/internal/textproc"
)

// Document is the result of reading a CV file: extraction-artifact-free text
// plus the page count (when the source format knows about pages).
type Document struct {
	Text  string
	Pages int
}

// ReadFile extracts CV text from a PDF or plain-text file, chosen by
// extension. Ligatures and invisible characters left behind by extraction are
// repaired before the text is returned.
func ReadFile(path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".txt", ".text", "":
		return readText(path)
	default:
		return nil, fmt.Errorf("unsupported cv file type: %s", filepath.Ext(path))
	}
}

func readPDF(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return &Document{
		Text:  textproc.FixArtifacts(buf.String()),
		Pages: reader.NumPage(),
	}, nil
}

func readText(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cv text: %w", err)
	}

	text := textproc.FixArtifacts(string(data))

	// Plain-text exports mark page breaks with form feeds; count them so the
	// presentation scorer can still judge page length.
	pages := strings.Count(text, "\f") + 1

	return &Document{Text: text, Pages: pages}, nil
}
