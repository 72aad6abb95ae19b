package mimetype

// mimetype maps file extensions to MIME content types through a static
// table. The lookup is case-sensitive and keyed on the extension including
// its leading dot; anything unknown resolves to application/octet-stream.
// The table is data, not logic--it never changes at runtime.
