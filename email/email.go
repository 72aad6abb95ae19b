package email

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alecthomas/units"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog/log"

	"github.com/trikko/postino/assemble"
	"github.com/trikko/postino/message"
)

const (
	// smtpScheme means a plain connection, upgraded with STARTTLS when
	// the relay offers it.
	smtpScheme = "smtp"
	// smtpsScheme means implicit TLS from the first byte.
	smtpsScheme = "smtps"

	defaultMaxMessageSize = 25 * units.Mebibyte
)

// UserConfig represents relay options provided by the user. Not meant to be
// used for sending email without validation--call CheckAndSetDefaults and
// hand the result to NewClient.
type UserConfig struct {
	// RelayAddress is a URL-style endpoint, e.g. smtp://mail.example.com:25
	// or smtps://mail.example.com:465. A bare host:port is treated as
	// smtp://.
	RelayAddress string
	Username     string
	Password     string
	// SkipCertVerification disables TLS certificate checks. Meant for
	// test servers with self-signed certs, nothing else.
	SkipCertVerification bool
	// MaxMessageSize caps the assembled DATA payload. Zero means the
	// 25MiB default.
	MaxMessageSize units.Base2Bytes
}

// UnmarshalYAML parses a user-provided YAML configuration, returning any
// parsing errors.
func (uc *UserConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	v := make(map[string]string)
	if err := unmarshal(&v); err != nil {
		return fmt.Errorf("can't parse the email config: %v", err)
	}

	uc.RelayAddress = v["relayAddress"]
	uc.Username = v["username"]
	uc.Password = v["password"]

	if s, ok := v["skipCertVerification"]; ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf(
				"can't parse skipCertVerification %q as a boolean: %v",
				s,
				err,
			)
		}
		uc.SkipCertVerification = b
	}

	if s, ok := v["maxMessageSize"]; ok {
		n, err := units.ParseBase2Bytes(s)
		if err != nil {
			return fmt.Errorf(
				"can't parse maxMessageSize %q as a size like \"25MiB\": %v",
				s,
				err,
			)
		}
		uc.MaxMessageSize = n
	}

	return nil
}

// CheckAndSetDefaults validates uc and either returns a copy of uc with
// default settings applied or returns an error due to an invalid
// configuration.
func (uc *UserConfig) CheckAndSetDefaults() (UserConfig, error) {
	c := *uc

	if c.RelayAddress == "" {
		return UserConfig{}, errors.New("must supply a relay address")
	}

	// Don't require the user to include a scheme. If we can't find one,
	// use one for SMTP.
	if !strings.Contains(c.RelayAddress, "://") {
		c.RelayAddress = smtpScheme + "://" + c.RelayAddress
	}

	u, err := url.Parse(c.RelayAddress)
	if err != nil {
		return UserConfig{}, fmt.Errorf("can't parse the relay address: %v", err)
	}

	switch u.Scheme {
	case smtpScheme, smtpsScheme:
	default:
		return UserConfig{}, fmt.Errorf(
			"unsupported relay scheme %q: use %q or %q",
			u.Scheme,
			smtpScheme,
			smtpsScheme,
		)
	}

	if u.Port() == "" {
		return UserConfig{}, errors.New("the relay address must include a port")
	}

	if (c.Username == "") != (c.Password == "") {
		return UserConfig{}, errors.New(
			"must supply both a username and a password, or neither",
		)
	}

	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = defaultMaxMessageSize
	}

	return c, nil
}

// Client submits messages to a single SMTP relay. Create one with
// NewClient; the zero value is not usable.
type Client struct {
	// Assembler builds the DATA payload. NewClient installs the default
	// assembler; callers can adjust it (e.g. AllowMissingFiles) before
	// the first Send.
	Assembler *assemble.Assembler

	relay     *url.URL
	username  string
	password  string
	maxSize   int64
	tlsConfig *tls.Config
}

// NewClient validates user input and returns a Client we can use to send
// actual email. Returns an error on validation failure.
func NewClient(uc UserConfig) (*Client, error) {
	c, err := uc.CheckAndSetDefaults()
	if err != nil {
		return nil, err
	}

	// The address survived CheckAndSetDefaults, so it parses.
	u, _ := url.Parse(c.RelayAddress)

	return &Client{
		Assembler: assemble.New(),
		relay:     u,
		username:  c.Username,
		password:  c.Password,
		maxSize:   int64(c.MaxMessageSize),
		tlsConfig: &tls.Config{
			ServerName:         u.Hostname(),
			InsecureSkipVerify: c.SkipCertVerification,
		},
	}, nil
}

// Send assembles m and submits it to the relay. The envelope recipients
// cover To, Cc, and Bcc. A lack of an error means the relay accepted the
// message.
//
// Note that the assembled header block includes a Bcc line, so every
// recipient can see the blind-copy list. Callers who need Bcc recipients
// kept secret should send them their own copy of the message with the Bcc
// list left empty.
func (c *Client) Send(m *message.Message) error {
	res, err := c.Assembler.Assemble(m)
	if err != nil {
		return err
	}

	if int64(len(res.Data)) > c.maxSize {
		return fmt.Errorf(
			"the assembled message is %v bytes, over the %v byte limit",
			len(res.Data),
			c.maxSize,
		)
	}

	log.Debug().
		Str("relay", c.relay.Host).
		Int("recipients", len(res.Recipients)).
		Int("bytes", len(res.Data)).
		Msg("submitting a message")

	sc, err := c.dial()
	if err != nil {
		return err
	}
	defer sc.Close()

	if c.username != "" {
		if err := sc.Auth(sasl.NewPlainClient("", c.username, c.password)); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := sc.Mail(res.From, nil); err != nil {
		return fmt.Errorf("the relay rejected the sender: %w", err)
	}
	for _, rcpt := range res.Recipients {
		if err := sc.Rcpt(rcpt); err != nil {
			return fmt.Errorf("the relay rejected recipient %v: %w", rcpt, err)
		}
	}

	w, err := sc.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(res.Data); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return sc.Quit()
}

// dial connects per the relay scheme: smtps means implicit TLS, smtp means
// a plain connection upgraded with STARTTLS when the server offers it.
func (c *Client) dial() (*smtp.Client, error) {
	if c.relay.Scheme == smtpsScheme {
		conn, err := tls.Dial("tcp", c.relay.Host, c.tlsConfig)
		if err != nil {
			return nil, err
		}
		sc, err := smtp.NewClient(conn, c.relay.Hostname())
		if err != nil {
			conn.Close()
			return nil, err
		}
		return sc, nil
	}

	sc, err := smtp.Dial(c.relay.Host)
	if err != nil {
		return nil, err
	}
	if ok, _ := sc.Extension("STARTTLS"); ok {
		if err := sc.StartTLS(c.tlsConfig); err != nil {
			sc.Close()
			return nil, err
		}
	} else {
		log.Warn().
			Str("relay", c.relay.Host).
			Msg("the relay doesn't offer STARTTLS; sending in the clear")
	}
	return sc, nil
}
