// Package wifi builds the "WIFI:" payload that phones understand when they
// scan a network QR code, and renders it through an injected QR renderer.
//
// Payload format: WIFI:T:WPA;S:<ssid>;P:<password>;;
//
// The characters \ ; , " : are backslash-escaped inside field values so an
// SSID or password containing them cannot break the field structure.
package wifi

import (
	"errors"
	"fmt"
	"strings"
)

// SecurityWPA is the only security token emitted. Open networks still get
// T:WPA with an empty P field.
const SecurityWPA = "WPA"

const (
	payloadPrefix = "WIFI:"
	specialChars  = `\;,":`
)

var (
	// ErrEmptySSID is returned when the SSID is blank or whitespace only.
	ErrEmptySSID = errors.New("ssid must not be empty")

	// ErrMalformedPayload is returned by ParsePayload for input that is not
	// a terminated WIFI: payload with an S field.
	ErrMalformedPayload = errors.New("malformed wifi payload")
)

// Credentials are the values carried by a payload.
type Credentials struct {
	Security string `json:"security"`
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// Escape prefixes every \ ; , " : in value with a backslash.
func Escape(value string) string {
	if !strings.ContainsAny(value, specialChars) {
		return value
	}
	// All special characters are ASCII, so bytes are scanned directly and
	// anything else, including invalid UTF-8, is copied through unchanged.
	var b strings.Builder
	b.Grow(len(value) + 8)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if strings.IndexByte(specialChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Unescape reverses Escape. A trailing lone backslash is kept as-is.
func Unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(c)
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// BuildPayload returns the escaped WIFI: payload for the given network.
// The password may be empty.
func BuildPayload(ssid, password string) (string, error) {
	if strings.TrimSpace(ssid) == "" {
		return "", ErrEmptySSID
	}
	return payloadPrefix +
		"T:" + SecurityWPA +
		";S:" + Escape(ssid) +
		";P:" + Escape(password) +
		";;", nil
}

// ParsePayload decodes a payload produced by BuildPayload (or any payload
// using the same convention). Unknown fields are ignored.
func ParsePayload(payload string) (Credentials, error) {
	body, ok := strings.CutPrefix(payload, payloadPrefix)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: missing %q prefix", ErrMalformedPayload, payloadPrefix)
	}

	fields := splitUnescaped(body, ';')
	// A terminated payload ends in ";;", leaving two empty trailing fields.
	n := len(fields)
	if n < 2 || fields[n-1] != "" || fields[n-2] != "" {
		return Credentials{}, fmt.Errorf("%w: missing ;; terminator", ErrMalformedPayload)
	}

	var creds Credentials
	seenSSID := false
	for _, field := range fields[:n-2] {
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			return Credentials{}, fmt.Errorf("%w: field %q has no key", ErrMalformedPayload, field)
		}
		switch key {
		case "T":
			creds.Security = Unescape(value)
		case "S":
			creds.SSID = Unescape(value)
			seenSSID = true
		case "P":
			creds.Password = Unescape(value)
		}
	}
	if !seenSSID {
		return Credentials{}, fmt.Errorf("%w: no S field", ErrMalformedPayload)
	}
	return creds, nil
}

// splitUnescaped splits s on sep, skipping separators preceded by a
// backslash. Escape sequences are left in the returned fields.
func splitUnescaped(s string, sep byte) []string {
	var (
		fields  []string
		cur     strings.Builder
		escaped bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			cur.WriteByte(c)
			escaped = true
		case c == sep:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
