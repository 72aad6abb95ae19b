package smtptest

// smtptest runs a real SMTP server inside the test process so the suite can
// inspect exactly what a relay receives: the envelope sender and recipients
// plus the raw DATA payload. It exists for tests only and retains
// everything in memory.
