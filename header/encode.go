package header

import (
	"encoding/base64"
	"strings"
)

// displayNameSpecials are the ASCII characters that force a display name
// into the RFC 5322 quoted-string form.
const displayNameSpecials = "\"\\,;:<>@[]()."

var injectionStripper = strings.NewReplacer("\r", "", "\n", "", "\x00", "")

// Sanitize strips the bytes that would let a value break out of its header
// line: CR, LF, and NUL.
func Sanitize(v string) string {
	return injectionStripper.Replace(v)
}

func isASCII(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] > 127 {
			return false
		}
	}
	return true
}

// encodeWord wraps v in a single RFC 2047 "B" encoded-word. The whole value
// becomes one word; long values are never split across several words.
func encodeWord(v string) string {
	return "=?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(v)) + "?="
}

// quote wraps v in double quotes, backslash-escaping any backslash or
// double-quote characters inside it.
func quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '\\' || v[i] == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('"')
	return b.String()
}

// EncodeDisplayName prepares a display name for an address header.
// Non-ASCII names become a single UTF-8 B encoded-word. ASCII names
// containing specials are quoted. Anything else passes through unchanged
// apart from injection stripping.
func EncodeDisplayName(name string) string {
	name = Sanitize(name)
	if !isASCII(name) {
		return encodeWord(name)
	}
	if strings.ContainsAny(name, displayNameSpecials) {
		return quote(name)
	}
	return name
}

// EncodeSubject prepares a subject line. Subjects are never quoted: they
// are sanitized, then wrapped as an encoded-word only when non-ASCII.
func EncodeSubject(subject string) string {
	subject = Sanitize(subject)
	if !isASCII(subject) {
		return encodeWord(subject)
	}
	return subject
}
