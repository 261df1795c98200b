package eml2pdf

import (
	"regexp"
	"strings"
	"time"
)

// Output naming defaults. The timestamp is rendered in a fixed timezone so
// batch re-runs on the same inputs produce stable names regardless of the
// host timezone.
const (
	// NamePlaceholder substitutes a sender or receiver that cannot be
	// derived from the message headers.
	NamePlaceholder = "unknown"

	// DefaultNameTimezone is the fixed timezone for derived file names.
	DefaultNameTimezone = "Australia/Brisbane"

	timestampLayout = "2006_01_02_15_04"
)

// unsafeNameChars matches everything outside the restricted filename
// character set.
var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// OutputFileName derives the default output name for a message:
// <timestamp>_<sender>_to_<receiver>.pdf. The timestamp is the message
// date, or now() when the message has none, rendered in loc. Sender and
// receiver fall back from display name to the local part of the address
// to a fixed placeholder.
func OutputFileName(msg *Message, now func() time.Time, loc *time.Location) string {
	ts := msg.Date
	if ts.IsZero() {
		ts = now()
	}
	if loc == nil {
		loc = time.UTC
	}

	sender := participantName(msg.From)
	receiver := participantName(msg.To)

	return ts.In(loc).Format(timestampLayout) + "_" + sender + "_to_" + receiver + ".pdf"
}

// participantName derives a file name component from an address list:
// display name, else the local part of the address, else the placeholder.
func participantName(addrs []Address) string {
	if len(addrs) == 0 {
		return NamePlaceholder
	}

	addr := addrs[0]
	name := addr.Name
	if name == "" {
		name, _, _ = strings.Cut(addr.Email, "@")
	}

	name = SanitizeName(name)
	if name == "" {
		return NamePlaceholder
	}
	return name
}

// SanitizeName rewrites every character outside [A-Za-z0-9._-] to an
// underscore. Returns "" when nothing usable remains.
func SanitizeName(name string) string {
	name = unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if strings.Trim(name, "_") == "" {
		return ""
	}
	return name
}

// NamingLocation loads the timezone used for derived names, falling back
// to UTC when the zone database does not know the name.
func NamingLocation(name string) *time.Location {
	if name == "" {
		name = DefaultNameTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
