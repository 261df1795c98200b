package eml2pdf

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
}

func TestOutputFileName(t *testing.T) {
	t.Parallel()

	brisbane, err := time.LoadLocation("Australia/Brisbane")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}

	tests := []struct {
		name string
		msg  *Message
		want string
	}{
		{
			name: "display name and local part fallback",
			msg: &Message{
				From: []Address{{Name: "Jane Doe", Email: "jane@example.com"}},
				To:   []Address{{Email: "john@example.com"}},
				Date: time.Date(2024, 3, 15, 10, 30, 0, 0, brisbane),
			},
			want: "2024_03_15_10_30_Jane_Doe_to_john.pdf",
		},
		{
			name: "date converted to naming timezone",
			msg: &Message{
				From: []Address{{Email: "a@example.com"}},
				To:   []Address{{Email: "b@example.com"}},
				// 00:30 UTC is 10:30 in Brisbane (+10, no DST)
				Date: time.Date(2024, 3, 15, 0, 30, 0, 0, time.UTC),
			},
			want: "2024_03_15_10_30_a_to_b.pdf",
		},
		{
			name: "missing headers fall back to placeholder",
			msg: &Message{
				Date: time.Date(2024, 3, 15, 10, 30, 0, 0, brisbane),
			},
			want: "2024_03_15_10_30_unknown_to_unknown.pdf",
		},
		{
			name: "unsafe characters replaced",
			msg: &Message{
				From: []Address{{Name: "Büro / Admin", Email: "office@example.com"}},
				To:   []Address{{Name: "Ops (24x7)", Email: "ops@example.com"}},
				Date: time.Date(2024, 3, 15, 10, 30, 0, 0, brisbane),
			},
			want: "2024_03_15_10_30_B_ro___Admin_to_Ops__24x7_.pdf",
		},
		{
			name: "zero date falls back to now",
			msg: &Message{
				From: []Address{{Email: "a@example.com"}},
				To:   []Address{{Email: "b@example.com"}},
			},
			// fixedNow (UTC) rendered in Brisbane (+10)
			want: "2025_01_02_13_04_a_to_b.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := OutputFileName(tt.msg, fixedNow, brisbane); got != tt.want {
				t.Errorf("OutputFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already safe", "Jane.Doe-1_2", "Jane.Doe-1_2"},
		{"spaces", "Jane Doe", "Jane_Doe"},
		{"symbols", "a/b\\c:d", "a_b_c_d"},
		{"only unsafe", "???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNamingLocation(t *testing.T) {
	t.Parallel()

	if loc := NamingLocation(""); loc.String() != DefaultNameTimezone {
		t.Errorf("NamingLocation(\"\") = %v, want default zone", loc)
	}
	if loc := NamingLocation("Not/AZone"); loc != time.UTC {
		t.Errorf("NamingLocation(unknown) = %v, want UTC", loc)
	}
}
