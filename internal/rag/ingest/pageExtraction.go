package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// extractText is best effort across every format: any parse failure is
// swallowed and yields whatever text was recovered, possibly none.
func extractText(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	case ".docx", ".txt", ".rtf", ".odt":
		return extractDocxTxtRtf(path)
	default:
		logger.Warn("Unsupported resume format", "path", path)
		return ""
	}
}

func extractPDF(path string) string {
	f, err := pdf.Open(path)
	if err != nil {
		logger.Error("failed opening of pdf file", "error", err)
		return ""
	}

	var builder strings.Builder
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// Log warning but continue with other pages
			logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		builder.WriteString(fmt.Sprintf("\n\n---PAGE %d---\n\n", i))
		builder.WriteString(content)
	}
	return builder.String()
}

// extractDocxTxtRtf reads a .odt, .docx, .rtf or plaintext file and returns the content as a string
func extractDocxTxtRtf(path string) string {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "error", err)
		return ""
	}
	return text
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		logger.Error("pageExtract", "timeout")
		return "", errors.New("timeout")
	}
}
