package eml2pdf

import (
	"time"
)

// Input contains conversion parameters.
type Input struct {
	EML []byte // raw RFC 5322 message bytes (required)
}

// Result holds the outcome of a single conversion.
type Result struct {
	// PDF is the final document: the rendered message body followed by
	// the pages of every valid PDF attachment.
	PDF []byte

	// HTML is the intermediate document handed to the browser, kept for
	// debugging.
	HTML string

	// Message is the parsed message, exposed so callers can derive
	// output file names from its headers.
	Message *Message

	// InlinedImages lists the content-ids that were rewritten to inline
	// data URLs in the body.
	InlinedImages []string

	// SkippedAttachments lists filenames of attachments that declared
	// the PDF media type but could not be parsed as PDF. They contribute
	// no pages to the output.
	SkippedAttachments []string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	recycleEvery int
}

// Render defaults. The recycle count is a mitigation for memory growth in
// long-running Chrome instances, not a load-bearing constant.
const (
	defaultTimeout      = 60 * time.Second
	defaultRecycleEvery = 50
)

// WithTimeout sets the per-conversion render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("eml2pdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithRecycleEvery sets how many conversions a browser instance serves
// before it is torn down and relaunched. Zero disables recycling.
// Panics if n < 0 (programmer error).
func WithRecycleEvery(n int) Option {
	if n < 0 {
		panic("eml2pdf: WithRecycleEvery count must not be negative")
	}
	return func(s *Service) {
		s.cfg.recycleEvery = n
	}
}
