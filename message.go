package eml2pdf

import (
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"golang.org/x/text/encoding/charmap"
)

func init() {
	// Register additional charsets that are commonly used in emails
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("iso-8859-1", charmap.ISO8859_1)
	charset.RegisterEncoding("iso-8859-15", charmap.ISO8859_15)
}

// pdfMediaType is the only attachment media type whose pages are appended
// to the rendered document.
const pdfMediaType = "application/pdf"

// Address is a single mailbox from an address header.
type Address struct {
	Name  string // display name, may be empty
	Email string
}

// String formats the address the way it appears in a header block.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Message is a parsed email message. It exists only for the duration of
// one conversion and is never mutated after parsing.
type Message struct {
	Subject     string
	From        []Address
	To          []Address
	Cc          []Address
	Date        time.Time // zero when the header is absent or unparsable
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}

// Attachment is a single message part that is not the body: a file
// attachment or an inline image referenced from the body by content-id.
type Attachment struct {
	Filename    string
	ContentType string // media type without parameters, lower case
	ContentID   string // normalized (angle brackets stripped), may be empty
	Data        []byte
}

// IsInlineImage reports whether the attachment can be inlined into the
// body as a data URL: it has a content-id and an image media type.
func (a Attachment) IsInlineImage() bool {
	return a.ContentID != "" && strings.HasPrefix(a.ContentType, "image/")
}

// IsPDF reports whether the attachment declares the PDF media type.
func (a Attachment) IsPDF() bool {
	return a.ContentType == pdfMediaType
}

// ParseMessage parses an EML message from a reader: headers, body
// (HTML preferred over plain text) and attachments. Inline parts that are
// neither HTML nor plain text (typically cid-referenced images) are
// collected as attachments alongside regular attachment parts.
func ParseMessage(r io.Reader) (*Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMessageParse, err)
	}

	msg := &Message{}
	header := mr.Header

	if subject, err := header.Subject(); err == nil {
		msg.Subject = subject
	} else {
		msg.Subject = header.Get("Subject")
	}

	msg.From = addressList(&header, "From")
	msg.To = addressList(&header, "To")
	msg.Cc = addressList(&header, "Cc")

	if date, err := header.Date(); err == nil {
		msg.Date = date
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading part: %v", ErrMessageParse, err)
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			contentType = strings.ToLower(contentType)

			switch {
			case strings.HasPrefix(contentType, "text/html"):
				body, err := io.ReadAll(part.Body)
				if err != nil {
					return nil, fmt.Errorf("%w: reading body: %v", ErrMessageParse, err)
				}
				// Always prefer HTML if available
				msg.HTMLBody = string(body)

			case strings.HasPrefix(contentType, "text/plain"):
				body, err := io.ReadAll(part.Body)
				if err != nil {
					return nil, fmt.Errorf("%w: reading body: %v", ErrMessageParse, err)
				}
				if msg.TextBody == "" {
					msg.TextBody = string(body)
				}

			default:
				// Inline non-text part: usually an image referenced
				// from the body via cid.
				att, err := attachmentFromPart(part, contentType, "")
				if err != nil {
					return nil, err
				}
				msg.Attachments = append(msg.Attachments, att)
			}

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			att, err := attachmentFromPart(part, strings.ToLower(contentType), filename)
			if err != nil {
				return nil, err
			}
			msg.Attachments = append(msg.Attachments, att)
		}
	}

	return msg, nil
}

// attachmentFromPart reads the part body and assembles an Attachment.
func attachmentFromPart(part *mail.Part, contentType, filename string) (Attachment, error) {
	data, err := io.ReadAll(part.Body)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: reading attachment: %v", ErrMessageParse, err)
	}

	if filename == "" {
		filename = partFilename(part)
	}

	return Attachment{
		Filename:    filename,
		ContentType: contentType,
		ContentID:   NormalizeContentID(part.Header.Get("Content-Id")),
		Data:        data,
	}, nil
}

// partFilename extracts a filename from Content-Disposition or the
// Content-Type name parameter. Returns "" when neither is present.
func partFilename(part *mail.Part) string {
	if disp := part.Header.Get("Content-Disposition"); disp != "" {
		if _, params, err := mime.ParseMediaType(disp); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	if ct := part.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if name := params["name"]; name != "" {
				return name
			}
		}
	}
	return ""
}

// NormalizeContentID strips angle brackets, whitespace and an optional
// "cid:" prefix, so that header values and body references compare equal.
func NormalizeContentID(cid string) string {
	cid = strings.TrimSpace(cid)
	cid = strings.TrimPrefix(cid, "<")
	cid = strings.TrimSuffix(cid, ">")
	if len(cid) >= 4 && strings.EqualFold(cid[:4], "cid:") {
		cid = cid[4:]
	}
	return strings.TrimSpace(cid)
}

// addressList reads an address header field, tolerating malformed lists.
func addressList(header *mail.Header, key string) []Address {
	addrs, err := header.AddressList(key)
	if err != nil || len(addrs) == 0 {
		return nil
	}
	out := make([]Address, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, Address{Name: a.Name, Email: a.Address})
	}
	return out
}
