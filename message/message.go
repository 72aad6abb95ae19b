package message

// A Recipient pairs an email address with an optional display name. An
// empty Name means the address appears bare in headers.
type Recipient struct {
	Address string
	Name    string
}

// Message aggregates everything needed to build one email. The caller owns
// a Message exclusively until it is handed to an assembler or transport;
// assembly only reads it, so the same Message can be assembled or sent more
// than once.
type Message struct {
	from        *Recipient
	to          []Recipient
	cc          []Recipient
	bcc         []Recipient
	replyTo     *Recipient
	subject     string
	textBody    string
	htmlBody    string
	embedded    map[string]string
	attachments []string
}

// New returns an empty Message ready for the fluent mutators below.
func New() *Message {
	return &Message{}
}

// SetFrom sets the sender. Assembly fails on a Message that never had a
// sender set.
func (m *Message) SetFrom(address, name string) *Message {
	m.from = &Recipient{Address: address, Name: name}
	return m
}

// AddTo appends a primary recipient. Insertion order is preserved in both
// the To header and the envelope recipient list.
func (m *Message) AddTo(address, name string) *Message {
	m.to = append(m.to, Recipient{Address: address, Name: name})
	return m
}

// AddCc appends a carbon-copy recipient.
func (m *Message) AddCc(address, name string) *Message {
	m.cc = append(m.cc, Recipient{Address: address, Name: name})
	return m
}

// AddBcc appends a blind carbon-copy recipient.
func (m *Message) AddBcc(address, name string) *Message {
	m.bcc = append(m.bcc, Recipient{Address: address, Name: name})
	return m
}

// SetReplyTo sets the Reply-To recipient.
func (m *Message) SetReplyTo(address, name string) *Message {
	m.replyTo = &Recipient{Address: address, Name: name}
	return m
}

// SetSubject sets the subject line.
func (m *Message) SetSubject(subject string) *Message {
	m.subject = subject
	return m
}

// SetText sets the plain-text body.
func (m *Message) SetText(body string) *Message {
	m.textBody = body
	return m
}

// SetHTML sets the HTML body.
func (m *Message) SetHTML(body string) *Message {
	m.htmlBody = body
	return m
}

// Embed registers a file to embed inline under the given content-id, so
// HTML bodies can reference it as cid:<id>. Embedding the same content-id
// twice keeps only the last path.
func (m *Message) Embed(contentID, path string) *Message {
	if m.embedded == nil {
		m.embedded = make(map[string]string)
	}
	m.embedded[contentID] = path
	return m
}

// Attach appends a file to send as an attachment. Attaching the same path
// twice produces two separate MIME parts.
func (m *Message) Attach(path string) *Message {
	m.attachments = append(m.attachments, path)
	return m
}

// From returns the sender, or nil if none was set.
func (m *Message) From() *Recipient { return m.from }

// To returns the primary recipients in insertion order.
func (m *Message) To() []Recipient { return m.to }

// Cc returns the carbon-copy recipients in insertion order.
func (m *Message) Cc() []Recipient { return m.cc }

// Bcc returns the blind carbon-copy recipients in insertion order.
func (m *Message) Bcc() []Recipient { return m.bcc }

// ReplyTo returns the Reply-To recipient, or nil if none was set.
func (m *Message) ReplyTo() *Recipient { return m.replyTo }

// Subject returns the subject line.
func (m *Message) Subject() string { return m.subject }

// Text returns the plain-text body, empty if none was set.
func (m *Message) Text() string { return m.textBody }

// HTML returns the HTML body, empty if none was set.
func (m *Message) HTML() string { return m.htmlBody }

// Embedded returns the content-id to file path mapping. May be nil.
func (m *Message) Embedded() map[string]string { return m.embedded }

// Attachments returns the attachment paths in insertion order.
func (m *Message) Attachments() []string { return m.attachments }
