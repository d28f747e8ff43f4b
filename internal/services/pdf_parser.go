package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/skillbridge/internal/apperrors"
)

// PDFParserService extracts plain text from an uploaded CV document.
// Extraction runs page by page; one broken page is skipped, not fatal,
// unless the aggregate falls below the minimum text length.
type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
	ExtractTextFromFile(filePath string) (string, error)
}

type pdfParserService struct {
	minTextLength int
}

func NewPDFParserService(minTextLength int) PDFParserService {
	return &pdfParserService{minTextLength: minTextLength}
}

// ExtractText reads the whole document from a seekable byte stream. The
// caller keeps ownership of the stream; no seek position is assumed after
// the call.
func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// The pdf package panics on some malformed containers.
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			err = apperrors.New(apperrors.KindExtractionFailed,
				fmt.Sprintf("failed to parse PDF: %v", recovered))
		}
	}()

	reader, err := pdf.NewReaderEncrypted(r, size, func() string { return "" })
	if err != nil {
		return "", classifyOpenError(err)
	}

	return p.collectText(reader)
}

// ExtractTextFromFile extracts text from a stored upload.
func (p *pdfParserService) ExtractTextFromFile(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindExtractionFailed, "failed to open document", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindExtractionFailed, "failed to stat document", err)
	}

	return p.ExtractText(f, info.Size())
}

func (p *pdfParserService) collectText(reader *pdf.Reader) (string, error) {
	var textBuilder strings.Builder
	totalPages := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := extractPageText(page)
		if err != nil {
			log.Printf("⚠️  Failed to extract page %d/%d: %v", pageIndex, totalPages, err)
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n\n")
	}

	text := CleanText(textBuilder.String())
	if len(text) < p.minTextLength {
		return "", apperrors.New(apperrors.KindEmptyContent,
			"extracted text is too short, the document may be image-based").
			WithHint("Upload a PDF with selectable text.")
	}

	log.Printf("✅ Extracted %d characters from %d pages", len(text), totalPages)
	return text, nil
}

// extractPageText isolates per-page panics so one bad page cannot abort the
// whole document.
func extractPageText(page pdf.Page) (text string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			text = ""
			err = fmt.Errorf("page extraction panicked: %v", recovered)
		}
	}()

	return page.GetPlainText(nil)
}

func classifyOpenError(err error) error {
	message := strings.ToLower(err.Error())
	if strings.Contains(message, "password") || strings.Contains(message, "encrypted") {
		return apperrors.Wrap(apperrors.KindEncryptedDocument,
			"document is encrypted and cannot be read", err).
			WithHint("Remove the password from the PDF and upload it again.")
	}
	return apperrors.Wrap(apperrors.KindExtractionFailed, "invalid PDF file", err)
}

// CleanText normalizes extracted text: trims every line and drops blank
// ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
