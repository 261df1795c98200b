// Package eml2pdf converts EML email messages to PDF using headless Chrome.
//
// # Quick Start
//
// Create a service, convert a message, and close when done:
//
//	svc := eml2pdf.New()
//	defer svc.Close()
//
//	raw, err := os.ReadFile("message.eml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Convert(ctx, eml2pdf.Input{EML: raw})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("message.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the intermediate HTML
// (result.HTML) for debugging, and the parsed message (result.Message)
// which callers can use to derive output file names.
//
// # Conversion Pipeline
//
//  1. EML parsing via go-message (headers, body, attachments)
//  2. HTML document assembly (CID images inlined as data URLs,
//     header block, attachment list, print stylesheet)
//  3. PDF rendering via headless Chrome (go-rod)
//  4. PDF attachments appended as trailing pages (pdfcpu)
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := eml2pdf.New(
//	    eml2pdf.WithTimeout(2 * time.Minute),
//	    eml2pdf.WithRecycleEvery(25),
//	)
//
// # Resource Model
//
// A Service owns one browser instance, launched lazily on first conversion
// and restarted every WithRecycleEvery conversions to bound memory growth
// over long batches. A Service is meant for strictly sequential use; it is
// not safe for concurrent calls to Convert.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_BROWSER_BIN to specify a
// pre-installed Chrome binary (the sandbox is disabled automatically).
package eml2pdf
