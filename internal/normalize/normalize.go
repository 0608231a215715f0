// Package normalize converts raw wizard input into the canonical forms used
// for validation and transport, and back into the display masks shown to the
// user. Every function is pure and total: bad input yields an empty or
// truncated result, never a panic.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	nationalIDDigits = 11
	postalCodeDigits = 8
	phoneMaxDigits   = 11
)

// DigitsOnly strips every non-digit rune from raw.
func DigitsOnly(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToISOIfPossible normalizes a date typed either as YYYY-MM-DD or DD/MM/YYYY
// into ISO form. It returns "" for anything else: partial input, unknown
// separators, out-of-range components, or calendar-invalid days (the real
// month length is used, so leap years are honored). Years are accepted only
// within [1900, current year].
func ToISOIfPossible(raw string) string {
	raw = strings.TrimSpace(raw)

	var year, month, day int
	switch {
	case len(raw) == 10 && raw[4] == '-' && raw[7] == '-':
		y, errY := strconv.Atoi(raw[0:4])
		m, errM := strconv.Atoi(raw[5:7])
		d, errD := strconv.Atoi(raw[8:10])
		if errY != nil || errM != nil || errD != nil {
			return ""
		}
		year, month, day = y, m, d
	case len(raw) == 10 && raw[2] == '/' && raw[5] == '/':
		d, errD := strconv.Atoi(raw[0:2])
		m, errM := strconv.Atoi(raw[3:5])
		y, errY := strconv.Atoi(raw[6:10])
		if errY != nil || errM != nil || errD != nil {
			return ""
		}
		year, month, day = y, m, d
	default:
		return ""
	}

	if year < 1900 || year > time.Now().Year() {
		return ""
	}
	if month < 1 || month > 12 {
		return ""
	}
	if day < 1 || day > daysInMonth(year, month) {
		return ""
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// daysInMonth computes the real length of a month: day 0 of the next month.
func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MaskPhone formats a Brazilian phone number as (XX) XXXX-XXXX or, with a
// ninth digit, (XX) XXXXX-XXXX. Partial input keeps as much of the mask as
// the available digits allow. Idempotent: masking masked input is a no-op.
func MaskPhone(raw string) string {
	d := DigitsOnly(raw)
	if len(d) > phoneMaxDigits {
		d = d[:phoneMaxDigits]
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:2], d[2:])
	case len(d) <= 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	}
}

// MaskNationalID formats a CPF as XXX.XXX.XXX-XX, truncating past 11 digits.
func MaskNationalID(raw string) string {
	d := DigitsOnly(raw)
	if len(d) > nationalIDDigits {
		d = d[:nationalIDDigits]
	}
	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return d[:3] + "." + d[3:]
	case len(d) <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}

// MaskPostalCode formats a CEP as XXXXX-XXX, truncating past 8 digits.
func MaskPostalCode(raw string) string {
	d := DigitsOnly(raw)
	if len(d) > postalCodeDigits {
		d = d[:postalCodeDigits]
	}
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}
