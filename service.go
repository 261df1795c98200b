package eml2pdf

import (
	"bytes"
	"context"
	"fmt"
)

// Service orchestrates the EML-to-PDF pipeline: parse, build HTML, render,
// append PDF attachments. One conversion is in flight at a time; the
// browser instance is shared across conversions and recycled periodically.
type Service struct {
	cfg          serviceConfig
	builder      documentBuilder
	pdfConverter pdfConverter
	merger       pdfMerger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithRecycleEvery).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:      defaultTimeout,
			recycleEvery: defaultRecycleEvery,
		},
		builder: newHTMLDocumentBuilder(),
		merger:  newPDFCPUMerger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout, s.cfg.recycleEvery)
	}

	return s
}

// Convert runs the full pipeline and returns the final PDF with the
// intermediate artifacts. The context is used for cancellation and timeout.
func (s *Service) Convert(ctx context.Context, input Input) (*Result, error) {
	if len(input.EML) == 0 {
		return nil, ErrEmptyMessage
	}

	msg, err := ParseMessage(bytes.NewReader(input.EML))
	if err != nil {
		return nil, err
	}

	return s.ConvertMessage(ctx, msg)
}

// ConvertMessage converts an already parsed message. Useful when the
// caller needs the headers before deciding whether to convert.
func (s *Service) ConvertMessage(ctx context.Context, msg *Message) (*Result, error) {
	doc, err := s.builder.BuildDocument(msg)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rendered, err := s.pdfConverter.ToPDF(ctx, doc.HTML)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	final, skipped, err := s.merger.Merge(rendered, msg.Attachments)
	if err != nil {
		return nil, fmt.Errorf("appending attachments: %w", err)
	}

	return &Result{
		PDF:                final,
		HTML:               doc.HTML,
		Message:            msg,
		InlinedImages:      sortedKeys(doc.Inlined),
		SkippedAttachments: skipped,
	}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}
