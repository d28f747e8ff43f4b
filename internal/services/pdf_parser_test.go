package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/skillbridge/internal/apperrors"
)

func TestExtractText_GarbageBytes(t *testing.T) {
	parser := NewPDFParserService(50)

	garbage := []byte("this is definitely not a PDF document")
	_, err := parser.ExtractText(bytes.NewReader(garbage), int64(len(garbage)))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindExtractionFailed, apperrors.KindOf(err))
}

func TestExtractText_TruncatedHeader(t *testing.T) {
	parser := NewPDFParserService(50)

	// Looks like a PDF at first glance but the body is missing.
	truncated := []byte("%PDF-1.7\n")
	_, err := parser.ExtractText(bytes.NewReader(truncated), int64(len(truncated)))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindExtractionFailed, apperrors.KindOf(err))
}

func TestExtractTextFromFile_MissingFile(t *testing.T) {
	parser := NewPDFParserService(50)

	_, err := parser.ExtractTextFromFile("/nonexistent/cv.pdf")

	require.Error(t, err)
	assert.Equal(t, apperrors.KindExtractionFailed, apperrors.KindOf(err))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "line one\nline two", CleanText("  line one  \n\n\n line two \n\n"))
	assert.Equal(t, "", CleanText("   \n \n  "))
	assert.Equal(t, "single", CleanText("single"))
}
