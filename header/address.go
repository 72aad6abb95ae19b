package header

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trikko/postino/message"
)

// ErrInvalidAddress reports an email address that failed the structural
// check: non-empty, exactly one "@", no ".." substring. This is
// deliberately far short of full RFC 5321 validation; callers must not rely
// on it to reject every malformed address.
var ErrInvalidAddress = errors.New("invalid email address")

// SanitizeAddress strips header-injection bytes from an address and applies
// the structural check, returning the cleaned address.
func SanitizeAddress(address string) (string, error) {
	address = Sanitize(address)
	if address == "" ||
		strings.Count(address, "@") != 1 ||
		strings.Contains(address, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return address, nil
}

// FormatRecipient renders a Recipient for a From/To/Cc/Bcc/Reply-To header:
// "Name <address>" when a display name is present, otherwise the bare
// validated address with no angle brackets.
func FormatRecipient(r message.Recipient) (string, error) {
	addr, err := SanitizeAddress(r.Address)
	if err != nil {
		return "", err
	}
	if r.Name == "" {
		return addr, nil
	}
	return EncodeDisplayName(r.Name) + " <" + addr + ">", nil
}

// FormatEnvelopeAddress renders the angle-bracket form used at the SMTP
// protocol level. Display names never appear in the envelope. Callers
// composing MAIL FROM/RCPT TO lines by hand need this form; clients built
// on go-smtp should pass the bare validated address instead, since the
// library adds the brackets itself.
func FormatEnvelopeAddress(r message.Recipient) (string, error) {
	addr, err := SanitizeAddress(r.Address)
	if err != nil {
		return "", err
	}
	return "<" + addr + ">", nil
}
