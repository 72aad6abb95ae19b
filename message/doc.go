package message

// message holds the structured content of an outgoing email: sender,
// recipient lists, subject, alternative plain-text/HTML bodies, inline
// embedded files, and attachments. It is pure data plus a fluent mutation
// API. Nothing here validates addresses or touches the filesystem--that
// happens at assembly time, so a Message can hold half-finished input
// without erroring.
