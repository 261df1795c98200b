package eml2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMessage   = errors.New("message content cannot be empty")
	ErrMessageParse   = errors.New("failed to parse message")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFMerge       = errors.New("PDF merge failed")
	ErrDocumentBuild  = errors.New("HTML document assembly failed")
)
