package extract

import (
	"context"
	"errors"
	"testing"
)

func TestExtractTextFromBytes_RejectsNonPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("plain text"), "text/plain", "notes.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	_, err = ExtractTextFromBytes(context.Background(), []byte("PK\x03\x04zipdata"), "application/zip", "resume.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType for zip, got %v", err)
	}
}

func TestExtractTextFromBytes_MagicWinsOverMime(t *testing.T) {
	// Truncated PDF magic should route to the PDF parser, which then
	// fails on the malformed body rather than reporting an unsupported type.
	_, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 truncated"), "application/octet-stream", "blob")
	if err == nil {
		t.Fatal("expected parse error for truncated pdf")
	}
	if errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected parser error, got ErrUnsupportedType")
	}
}

func TestExtractTextFromBytes_EmptyPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), nil, "application/pdf", "resume.pdf")
	if err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestExtractTextFromBytes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractTextFromBytes(ctx, []byte("%PDF-1.4"), "application/pdf", "resume.pdf"); err == nil {
		t.Fatal("expected context error")
	}
}
