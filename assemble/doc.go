package assemble

// assemble serializes a message.Message into a single MIME byte stream: a
// multipart/related envelope wrapping a multipart/alternative section for
// the plain-text and HTML bodies, followed by inline embedded files and
// attachments, base64-encoded and line-wrapped per RFC 2045. It also
// derives the envelope addresses the transport needs. Assembly is
// synchronous and stateless; concurrent calls on distinct Messages need no
// coordination.
