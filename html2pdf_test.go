package eml2pdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockFileRenderer implements pdfRenderer for testing.
type mockFileRenderer struct {
	Result   []byte
	Err      error
	Renders  int
	Closes   int
	LastPath string
}

func (m *mockFileRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	m.Renders++
	m.LastPath = filePath
	return m.Result, m.Err
}

func (m *mockFileRenderer) Close() error {
	m.Closes++
	return nil
}

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	mock := &mockFileRenderer{Result: []byte("%PDF-1.4 fake pdf content")}
	conv := &rodConverter{renderer: mock}

	pdf, err := conv.ToPDF(context.Background(), "<html><body>Test</body></html>")
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(pdf) != "%PDF-1.4 fake pdf content" {
		t.Errorf("ToPDF() = %q", pdf)
	}
	if !strings.HasSuffix(mock.LastPath, ".html") {
		t.Errorf("rendered path = %q, want temp .html file", mock.LastPath)
	}
}

func TestRodConverter_ToPDF_RendererError(t *testing.T) {
	t.Parallel()

	renderErr := errors.New("browser crashed")
	conv := &rodConverter{renderer: &mockFileRenderer{Err: renderErr}}

	_, err := conv.ToPDF(context.Background(), "<html></html>")
	if !errors.Is(err, renderErr) {
		t.Errorf("ToPDF() error = %v, want renderer error", err)
	}
}

func TestRodConverter_RecyclesBrowser(t *testing.T) {
	t.Parallel()

	mock := &mockFileRenderer{Result: []byte("%PDF")}
	conv := &rodConverter{renderer: mock, recycleEvery: 3}

	for i := 0; i < 7; i++ {
		if _, err := conv.ToPDF(context.Background(), "<html></html>"); err != nil {
			t.Fatalf("ToPDF() #%d error = %v", i, err)
		}
	}

	// 7 renders with recycleEvery=3: closed after the 3rd and 6th.
	if mock.Closes != 2 {
		t.Errorf("Closes = %d, want 2", mock.Closes)
	}
	if mock.Renders != 7 {
		t.Errorf("Renders = %d, want 7", mock.Renders)
	}
}

func TestRodConverter_RecyclingDisabled(t *testing.T) {
	t.Parallel()

	mock := &mockFileRenderer{Result: []byte("%PDF")}
	conv := &rodConverter{renderer: mock, recycleEvery: 0}

	for i := 0; i < 5; i++ {
		if _, err := conv.ToPDF(context.Background(), "<html></html>"); err != nil {
			t.Fatalf("ToPDF() #%d error = %v", i, err)
		}
	}
	if mock.Closes != 0 {
		t.Errorf("Closes = %d, want 0 when recycling is disabled", mock.Closes)
	}
}

func TestRodRenderer_ContextAlreadyCanceled(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fails before any browser is launched.
	if _, err := r.RenderFromFile(ctx, "/tmp/nope.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
}

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	opts := buildPDFOptions()

	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v, want %vx%v", *opts.PaperWidth, *opts.PaperHeight, paperWidthInches, paperHeightInches)
	}
	if *opts.MarginTop != marginInches || *opts.MarginBottom != marginInches ||
		*opts.MarginLeft != marginInches || *opts.MarginRight != marginInches {
		t.Error("margins not applied uniformly")
	}
	if !opts.PrintBackground {
		t.Error("PrintBackground should be enabled")
	}
}
