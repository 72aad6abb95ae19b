package assemble

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trikko/postino/header"
	"github.com/trikko/postino/message"
	"github.com/trikko/postino/mimetype"
)

const crlf = "\r\n"

// ErrMissingSender reports assembly attempted on a Message that never had a
// sender set.
var ErrMissingSender = errors.New("message has no sender")

// An Assembler turns Messages into MIME byte streams. Create one with New;
// the zero value is not usable. A single Assembler may serve concurrent
// goroutines: each Assemble call only reads the Assembler's fields and
// writes to its own buffer.
type Assembler struct {
	// Boundaries generates the multipart boundary tokens.
	Boundaries *BoundarySource
	// AllowMissingFiles restores the lenient legacy behavior: an
	// attachment or embedded file whose path cannot be read produces a
	// part with an empty body instead of failing assembly. Off by
	// default, so unreadable files fail with ErrFileUnreadable.
	AllowMissingFiles bool

	now   func() time.Time
	newID func() string
}

// New returns an Assembler backed by the default boundary source, the wall
// clock, and UUID-based Message-ID generation.
func New() *Assembler {
	return &Assembler{
		Boundaries: DefaultSource(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Result is an assembled message plus the envelope a transport needs. Data
// is ready to be the SMTP DATA payload. From and Recipients are bare
// validated addresses; Recipients covers To, Cc, and Bcc in that order, so
// copied recipients actually receive the message rather than merely
// appearing in its headers.
type Result struct {
	Data       []byte
	From       string
	Recipients []string
}

// Assemble serializes m. It never mutates m, and calling it again yields
// the same content under fresh boundaries. Validation failures abort with
// no partial output.
func (a *Assembler) Assemble(m *message.Message) (*Result, error) {
	if m.From() == nil {
		return nil, ErrMissingSender
	}

	res := &Result{}
	var err error
	res.From, err = header.SanitizeAddress(m.From().Address)
	if err != nil {
		return nil, err
	}
	for _, list := range [][]message.Recipient{m.To(), m.Cc(), m.Bcc()} {
		for _, r := range list {
			addr, err := header.SanitizeAddress(r.Address)
			if err != nil {
				return nil, err
			}
			res.Recipients = append(res.Recipients, addr)
		}
	}

	mainBoundary, err := a.Boundaries.Generate("main")
	if err != nil {
		return nil, err
	}
	altBoundary, err := a.Boundaries.Generate("alt")
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer

	if err := a.writeHeaders(&b, m, mainBoundary); err != nil {
		return nil, err
	}
	a.writeAlternative(&b, m, mainBoundary, altBoundary)
	if err := a.writeEmbedded(&b, m, mainBoundary); err != nil {
		return nil, err
	}
	if err := a.writeAttachments(&b, m, mainBoundary); err != nil {
		return nil, err
	}
	fmt.Fprintf(&b, "--%s--%s", mainBoundary, crlf)

	res.Data = b.Bytes()
	return res, nil
}

// writeHeaders emits the top-level header block, ending with the
// multipart/related Content-Type and the blank line that closes the
// headers.
func (a *Assembler) writeHeaders(b *bytes.Buffer, m *message.Message, mainBoundary string) error {
	fmt.Fprintf(b, "Date: %s%s", a.now().Format(time.RFC1123Z), crlf)
	fmt.Fprintf(b, "Message-ID: <%s@postino>%s", a.newID(), crlf)
	b.WriteString("MIME-Version: 1.0" + crlf)

	from, err := header.FormatRecipient(*m.From())
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "From: %s%s", from, crlf)

	to, err := formatList(m.To())
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "To: %s%s", to, crlf)

	fmt.Fprintf(b, "Subject: %s%s", header.EncodeSubject(m.Subject()), crlf)

	if len(m.Cc()) > 0 {
		cc, err := formatList(m.Cc())
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Cc: %s%s", cc, crlf)
	}
	if len(m.Bcc()) > 0 {
		bcc, err := formatList(m.Bcc())
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Bcc: %s%s", bcc, crlf)
	}
	if m.ReplyTo() != nil {
		rt, err := header.FormatRecipient(*m.ReplyTo())
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "Reply-To: %s%s", rt, crlf)
	}

	fmt.Fprintf(b, "Content-Type: multipart/related; boundary=\"%s\"%s%s", mainBoundary, crlf, crlf)
	return nil
}

// writeAlternative emits the nested multipart/alternative section holding
// the plain-text and HTML bodies. An alternative section with neither body
// is still emitted, with zero children.
func (a *Assembler) writeAlternative(b *bytes.Buffer, m *message.Message, mainBoundary, altBoundary string) {
	fmt.Fprintf(b, "--%s%s", mainBoundary, crlf)
	fmt.Fprintf(b, "Content-Type: multipart/alternative; boundary=\"%s\"%s%s", altBoundary, crlf, crlf)

	if m.Text() != "" {
		fmt.Fprintf(b, "--%s%s", altBoundary, crlf)
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"" + crlf + crlf)
		b.WriteString(m.Text() + crlf)
	}
	if m.HTML() != "" {
		fmt.Fprintf(b, "--%s%s", altBoundary, crlf)
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"" + crlf + crlf)
		b.WriteString(m.HTML() + crlf)
	}

	fmt.Fprintf(b, "--%s--%s", altBoundary, crlf)
}

// writeEmbedded emits one inline part per embedded file. Content-ids are
// visited in sorted order, which keeps output deterministic across calls,
// not just stable within one.
func (a *Assembler) writeEmbedded(b *bytes.Buffer, m *message.Message, mainBoundary string) error {
	cids := make([]string, 0, len(m.Embedded()))
	for cid := range m.Embedded() {
		cids = append(cids, cid)
	}
	sort.Strings(cids)

	for _, cid := range cids {
		path := m.Embedded()[cid]
		lines, err := a.readPart(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "--%s%s", mainBoundary, crlf)
		fmt.Fprintf(b, "Content-Type: %s%s", mimetype.Resolve(path), crlf)
		fmt.Fprintf(b, "Content-ID: <%s>%s", header.Sanitize(cid), crlf)
		b.WriteString("Content-Disposition: inline" + crlf)
		b.WriteString("Content-Transfer-Encoding: base64" + crlf + crlf)
		writeBody(b, lines)
	}
	return nil
}

// writeAttachments emits one attachment part per listed path, in list
// order.
func (a *Assembler) writeAttachments(b *bytes.Buffer, m *message.Message, mainBoundary string) error {
	for _, path := range m.Attachments() {
		lines, err := a.readPart(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "--%s%s", mainBoundary, crlf)
		fmt.Fprintf(b, "Content-Type: %s%s", mimetype.Resolve(path), crlf)
		fmt.Fprintf(b, "Content-Disposition: attachment; filename=\"%s\"%s", quoteFilename(path), crlf)
		b.WriteString("Content-Transfer-Encoding: base64" + crlf + crlf)
		writeBody(b, lines)
	}
	return nil
}

// readPart encodes one file, applying the missing-file policy.
func (a *Assembler) readPart(path string) ([]string, error) {
	lines, err := encodeFile(path)
	if err != nil {
		if a.AllowMissingFiles {
			log.Warn().
				Str("path", path).
				Err(err).
				Msg("can't read a message part; emitting an empty body")
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

func writeBody(b *bytes.Buffer, lines []string) {
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString(crlf)
	}
}

var filenameEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteFilename strips directory components from an attachment path and
// escapes the base name for use inside a quoted Content-Disposition
// parameter.
func quoteFilename(path string) string {
	return filenameEscaper.Replace(header.Sanitize(filepath.Base(path)))
}

func formatList(rs []message.Recipient) (string, error) {
	parts := make([]string, len(rs))
	for i, r := range rs {
		f, err := header.FormatRecipient(r)
		if err != nil {
			return "", err
		}
		parts[i] = f
	}
	return strings.Join(parts, ", "), nil
}
