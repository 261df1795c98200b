package eml2pdf_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/emlkit/eml2pdf"
)

// ExampleParseMessage demonstrates parsing an EML message into headers,
// body and attachments. Rendering the result to PDF requires Chrome; see
// the package documentation for a full conversion example.
func ExampleParseMessage() {
	raw := strings.NewReader("From: Jane Doe <jane@example.com>\r\n" +
		"To: john@example.com\r\n" +
		"Subject: Quarterly report\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" +
		"Please find the report attached.\r\n")

	msg, err := eml2pdf.ParseMessage(raw)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(msg.Subject)
	fmt.Println(msg.From[0])
	// Output:
	// Quarterly report
	// Jane Doe <jane@example.com>
}

// ExampleOutputFileName demonstrates the derived output name: message
// timestamp, then sender and receiver from the headers.
func ExampleOutputFileName() {
	msg := &eml2pdf.Message{
		From: []eml2pdf.Address{{Name: "Jane Doe", Email: "jane@example.com"}},
		To:   []eml2pdf.Address{{Email: "john@example.com"}},
		Date: time.Date(2024, 3, 15, 10, 30, 0, 0, time.FixedZone("AEST", 10*3600)),
	}

	name := eml2pdf.OutputFileName(msg, time.Now, eml2pdf.NamingLocation(""))
	fmt.Println(name)
	// Output: 2024_03_15_10_30_Jane_Doe_to_john.pdf
}
