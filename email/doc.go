package email

// email hands assembled messages to an SMTP relay: it owns endpoint
// parsing, implicit-TLS versus STARTTLS negotiation, PLAIN authentication,
// and the MAIL/RCPT/DATA exchange. It never inspects or alters message
// content--the assemble package decides every byte of the DATA payload, and
// this package only moves it.
