package smtptest

import (
	"crypto/tls"
	"io"
	"strings"
	"sync"

	"github.com/docker/go-units"
	"github.com/emersion/go-smtp"
)

// Delivery is one accepted message: the envelope as the server saw it plus
// the DATA payload verbatim.
type Delivery struct {
	From       string
	Recipients []string
	Body       string
}

// deliveryStore retains deliveries in memory for comparison against a
// test's expected output. Designed to be goroutine safe since we don't know
// how many connections will hit the server at once.
type deliveryStore struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func (ds *deliveryStore) save(d Delivery) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.deliveries = append(ds.deliveries, d)
}

func (ds *deliveryStore) all() []Delivery {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	out := make([]Delivery, len(ds.deliveries))
	copy(out, ds.deliveries)
	return out
}

// Backend implements smtp.Backend. Any non-empty username/password is fine,
// since we don't want to couple this with specific test configurations, and
// anonymous sessions are allowed so unauthenticated submission paths get
// exercised too.
type Backend struct {
	store *deliveryStore
}

// Login implements smtp.Backend.
func (be *Backend) Login(_ *smtp.ConnectionState, username string, password string) (smtp.Session, error) {
	return &session{store: be.store}, nil
}

// AnonymousLogin implements smtp.Backend.
func (be *Backend) AnonymousLogin(_ *smtp.ConnectionState) (smtp.Session, error) {
	return &session{store: be.store}, nil
}

// session implements smtp.Session, accumulating one envelope per
// transaction.
type session struct {
	store *deliveryStore
	from  string
	rcpts []string
}

// Mail implements smtp.Session.
func (s *session) Mail(from string, _ smtp.MailOptions) error {
	s.from = from
	return nil
}

// Rcpt implements smtp.Session.
func (s *session) Rcpt(to string) error {
	s.rcpts = append(s.rcpts, to)
	return nil
}

// Data implements smtp.Session. Stores the completed delivery in memory for
// retrieval at the end of the test.
func (s *session) Data(r io.Reader) error {
	// doubtful we'll get an email this big, but we need a limit
	var maxEmailSize int64 = 100 * units.MiB
	buf, err := io.ReadAll(io.LimitReader(r, maxEmailSize))
	if err != nil {
		return err
	}

	str := &strings.Builder{}
	if _, err := str.Write(buf); err != nil {
		return err
	}

	s.store.save(Delivery{
		From:       s.from,
		Recipients: s.rcpts,
		Body:       str.String(),
	})
	return nil
}

// Reset implements smtp.Session, discarding the in-progress envelope.
func (s *session) Reset() {
	s.from = ""
	s.rcpts = nil
}

// Logout implements smtp.Session. No-op here.
func (s *session) Logout() error { return nil }

// InProcessServer is an SMTP server that runs in the same process as the
// test suite, letting us inspect sent emails. You must initialize this via
// NewInProcessServer.
type InProcessServer struct {
	*smtp.Server
	store *deliveryStore
}

// NewInProcessServer creates an InProcessServer listening on addr (e.g.
// ":2526"), configured to store incoming deliveries in memory. Must provide
// the paths to the key and cert used for STARTTLS; the cert must be a root
// cert.
func NewInProcessServer(addr string, keypath string, certpath string) *InProcessServer {
	store := &deliveryStore{}

	srv := smtp.NewServer(&Backend{store: store})
	srv.Addr = addr
	srv.Domain = "localhost"
	// Let clients authenticate before STARTTLS so plaintext test
	// configurations still work.
	srv.AllowInsecureAuth = true

	cert, err := tls.LoadX509KeyPair(certpath, keypath)

	// No way to carry on without a cert, so we panic. We're in a test
	// suite, so this should be fine.
	if err != nil {
		panic(err)
	}

	srv.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
	}

	return &InProcessServer{
		Server: srv,
		store:  store,
	}
}

// Start starts the test server on a plain listener; clients may upgrade
// with STARTTLS. Blocking.
func (is *InProcessServer) Start() error {
	return is.Server.ListenAndServe()
}

// StartImplicitTLS starts the test server on a TLS listener, the way an
// smtps endpoint answers. Blocking.
func (is *InProcessServer) StartImplicitTLS() error {
	return is.Server.ListenAndServeTLS()
}

// Close shuts down the test server daemon. You must initialize a new
// InProcessServer instead of restarting this one.
func (is *InProcessServer) Close() {
	is.Server.Close()
}

// Deliveries returns everything the server has accepted so far.
func (is *InProcessServer) Deliveries() []Delivery {
	return is.store.all()
}

// Address returns the host:port of the test SMTP server.
func (is *InProcessServer) Address() string {
	return is.Server.Domain + is.Server.Addr
}
