package eml2pdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfMerger appends PDF attachment pages to a rendered document.
type pdfMerger interface {
	// Merge returns the final PDF bytes and the filenames of attachments
	// that declared the PDF media type but could not be parsed.
	Merge(rendered []byte, attachments []Attachment) ([]byte, []string, error)
}

// Compile-time interface check
var _ pdfMerger = (*pdfcpuMerger)(nil)

// pdfcpuMerger implements pdfMerger using pdfcpu.
type pdfcpuMerger struct {
	conf *model.Configuration
}

// newPDFCPUMerger creates a merger with relaxed validation, since email
// attachments are frequently produced by sloppy PDF writers.
func newPDFCPUMerger() *pdfcpuMerger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &pdfcpuMerger{conf: conf}
}

// Merge loads the rendered PDF as the base document and appends the pages
// of every attachment with the PDF media type, in attachment order. A
// malformed PDF attachment contributes no pages and is reported in the
// skipped list; it never aborts the merge. Non-PDF attachments are ignored.
func (m *pdfcpuMerger) Merge(rendered []byte, attachments []Attachment) ([]byte, []string, error) {
	var skipped []string
	readers := []io.ReadSeeker{bytes.NewReader(rendered)}

	for _, att := range attachments {
		if !att.IsPDF() {
			continue
		}
		if err := api.Validate(bytes.NewReader(att.Data), m.conf); err != nil {
			skipped = append(skipped, attachmentLabel(att))
			continue
		}
		readers = append(readers, bytes.NewReader(att.Data))
	}

	// Nothing to append: the rendered document is already final.
	if len(readers) == 1 {
		return rendered, skipped, nil
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, m.conf); err != nil {
		return nil, skipped, fmt.Errorf("%w: %v", ErrPDFMerge, err)
	}

	return buf.Bytes(), skipped, nil
}

// attachmentLabel names an attachment in warnings.
func attachmentLabel(att Attachment) string {
	if att.Filename != "" {
		return att.Filename
	}
	if att.ContentID != "" {
		return att.ContentID
	}
	return att.ContentType
}

// PageCount reports the number of pages in a PDF byte stream. It is used
// by callers verifying merge results and by tests.
func PageCount(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFMerge, err)
	}
	return n, nil
}
