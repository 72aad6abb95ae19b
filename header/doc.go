package header

// header prepares values destined for RFC 5322 header lines: display names
// and subjects per RFC 2047, plus the minimal structural address checks the
// assembler relies on. Every value passing through here is stripped of CR,
// LF, and NUL bytes first, so caller input can never smuggle extra header
// lines into a message.
