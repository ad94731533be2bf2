package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatFromFileName(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    Format
		wantErr bool
	}{
		{name: "pdf", file: "report.pdf", want: FormatPDF},
		{name: "upper docx", file: "Notes.DOCX", want: FormatDOCX},
		{name: "mixed txt", file: "a.b.TxT", want: FormatTXT},
		{name: "dot only name", file: ".txt", want: FormatTXT},
		{name: "image", file: "photo.png", wantErr: true},
		{name: "no extension", file: "README", wantErr: true},
		{name: "trailing dot", file: "file.", wantErr: true},
		{name: "doc", file: "legacy.doc", wantErr: true},
		{name: "empty", file: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromFileName(tt.file)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("FormatFromFileName(%q) error = %v, want ErrUnsupportedFormat", tt.file, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatFromFileName(%q) unexpected error: %v", tt.file, err)
			}
			if got != tt.want {
				t.Fatalf("FormatFromFileName(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestExtractText_TXTVerbatim(t *testing.T) {
	input := "Paris is the capital of France.\n  Keep   spacing\tas-is.\r\n"
	got, err := ExtractText(context.Background(), []byte(input), FormatTXT)
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if got != input {
		t.Fatalf("expected verbatim text %q, got %q", input, got)
	}
}

func TestExtractText_TXTInvalidUTF8(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte{'o', 'k', 0xff, 'x'}, FormatTXT)
	if err == nil {
		t.Fatal("expected decode error for invalid utf-8")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	if !strings.Contains(err.Error(), "position 2") {
		t.Fatalf("expected byte position in error, got %v", err)
	}
}

func TestExtractText_ErrorKeepsLibraryMessage(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("not a zip archive"), FormatDOCX)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
	var extractErr *Error
	if !errors.As(err, &extractErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if extractErr.Format != FormatDOCX {
		t.Fatalf("unexpected format %q", extractErr.Format)
	}
	msg := extractErr.Err.Error()
	if msg == "" || strings.HasPrefix(msg, ErrExtraction.Error()) {
		t.Fatalf("expected bare library message, got %q", msg)
	}
	if err.Error() != "extraction failed: docx: "+msg {
		t.Fatalf("unexpected wrapped message %q", err.Error())
	}
}

func TestExtractText_DOCXParagraphsInOrder(t *testing.T) {
	body := `<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Inside table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
		`<w:p><w:hyperlink><w:r><w:t>Link</w:t></w:r></w:hyperlink><w:r><w:tab/><w:t>after tab</w:t></w:r></w:p>`

	got, err := ExtractText(context.Background(), buildDOCX(t, body), FormatDOCX)
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	want := "First paragraph\nSecond paragraph\n\nLink\tafter tab"
	if got != want {
		t.Fatalf("docx text mismatch\nwant %q\ngot  %q", want, got)
	}
}

func TestExtractText_DOCXNotZip(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("not a zip archive"), FormatDOCX)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractText_PDFPagesInOrder(t *testing.T) {
	data := buildPDF(t, "Alpha", "Bravo", "Charlie")

	got, err := ExtractText(context.Background(), data, FormatPDF)
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	last := -1
	for _, word := range []string{"Alpha", "Bravo", "Charlie"} {
		idx := strings.Index(got, word)
		if idx < 0 {
			t.Fatalf("expected %q in pdf text %q", word, got)
		}
		if idx <= last {
			t.Fatalf("expected %q after previous page text in %q", word, got)
		}
		last = idx
	}
}

func TestExtractText_PDFCorrupt(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("%PDF-1.4\nthis is not really a pdf"), FormatPDF)
	if !errors.Is(err, ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractText_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractText(ctx, []byte("hello"), FormatTXT); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBodyParagraphs_SkipsTextBoxes(t *testing.T) {
	content := `<w:document xmlns:w="` + wordNS + `"><w:body>` +
		`<w:p><w:r><w:t>Outer</w:t></w:r><w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Boxed</w:t></w:r></w:p></w:txbxContent></w:pict></w:r></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t><w:br w:type="page"/></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := bodyParagraphs(content)
	if err != nil {
		t.Fatalf("body paragraphs: %v", err)
	}
	want := []string{"Outer", "Line one\nLine two"}
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paragraph %d: want %q, got %q", i, want[i], got[i])
		}
	}
}
