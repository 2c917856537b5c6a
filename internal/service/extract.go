package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	fitz "github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

var imageExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"bmp":  "image/bmp",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// ErrUnsupportedFileType is returned for extensions the extractor does
// not recognize.
var ErrUnsupportedFileType = fmt.Errorf("unsupported file type")

// ExtractService pulls plain text out of uploaded files. Images go
// through Tesseract first with the vision model as fallback; PDF and
// DOCX use their native extractors.
type ExtractService struct {
	llm *LLMService
}

// NewExtractService creates a new ExtractService. llm may be nil; image
// extraction then relies on OCR alone.
func NewExtractService(llm *LLMService) *ExtractService {
	return &ExtractService{llm: llm}
}

// IsImageExtension reports whether ext names a supported image format.
func IsImageExtension(ext string) bool {
	_, ok := imageExtensions[ext]
	return ok
}

// ExtractText extracts text from the file at path based on its extension
// (lowercase, no dot).
func (s *ExtractService) ExtractText(ctx context.Context, path, ext string) (string, error) {
	switch {
	case IsImageExtension(ext):
		return s.extractFromImage(ctx, path, imageExtensions[ext])
	case ext == "pdf":
		return extractFromPDF(path)
	case ext == "docx":
		return extractFromDOCX(path)
	case ext == "txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", ErrUnsupportedFileType
	}
}

// extractFromImage tries Tesseract OCR first and falls back to the
// vision model when OCR yields nothing usable.
func (s *ExtractService) extractFromImage(ctx context.Context, path, mimeType string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if text := ocrImage(data); text != "" {
		return text, nil
	}

	if s.llm == nil {
		return "", fmt.Errorf("could not analyze image: no text found and no vision model configured")
	}

	description, err := s.llm.DescribeImage(ctx, data, mimeType)
	if err != nil {
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}
	return description, nil
}

// ocrImage runs Tesseract over the image bytes. OCR trouble is not
// fatal; the caller falls through to the vision model.
func ocrImage(data []byte) string {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetImageFromBytes(data); err != nil {
		log.Printf("OCR unavailable: %v", err)
		return ""
	}
	text, err := client.Text()
	if err != nil {
		log.Printf("OCR failed: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func extractFromPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from PDF page %d: %w", i+1, err)
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), nil
}

func extractFromDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat DOCX: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			lines = append(lines, p.String())
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
