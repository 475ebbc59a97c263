package ats

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

const pdfFetchTimeout = 30 * time.Second

// FetchResumeText downloads a PDF resume and extracts its plain text.
// Returns an error on any network, status, or parse failure; callers decide
// whether to fall back to inline resume text.
func FetchResumeText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build resume request: %w", err)
	}

	client := &http.Client{Timeout: pdfFetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download resume: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download resume: HTTP %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read resume body: %w", err)
	}

	return ExtractPDFText(raw)
}

// ExtractPDFText pulls the visible text out of PDF bytes, page by page.
func ExtractPDFText(raw []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("parse PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unparseable pages, keep the rest
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	extracted := strings.TrimSpace(sb.String())
	if extracted == "" {
		return "", fmt.Errorf("PDF contained no extractable text")
	}
	return extracted, nil
}
