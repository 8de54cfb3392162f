package session

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultConnectTimeout bounds connection establishment. Established
// sessions have no idle timeout; they stay open until closed by either end.
const DefaultConnectTimeout = 10 * time.Second

// Remote is an interactive SSH shell session. Create one with Dial.
type Remote struct {
	target Target
	client *ssh.Client
	sess   *ssh.Session
	stdin  io.WriteCloser

	out    chan []byte
	status atomic.Int32

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

// DialOptions tune connection establishment.
type DialOptions struct {
	// Timeout bounds the whole connect; zero means DefaultConnectTimeout.
	Timeout time.Duration
	// Rows and Cols size the requested pty; zero means 24x80.
	Rows, Cols int
	// HostKeyCallback overrides host key verification; nil accepts any key.
	HostKeyCallback ssh.HostKeyCallback
}

// Dial connects to the target, requests an xterm-256color pty and starts the
// login shell. Failures are classified: errors.Is against ErrAuth,
// ErrNetwork, ErrTimeout or ErrResource tells the chrome what went wrong.
func Dial(ctx context.Context, target Target, opt DialOptions) (*Remote, error) {
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	rows, cols := opt.Rows, opt.Cols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}

	auth, err := authMethods(target.Auth)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}

	hostKeys := opt.HostKeyCallback
	if hostKeys == nil {
		hostKeys = ssh.InsecureIgnoreHostKey()
	}

	cfg := &ssh.ClientConfig{
		User:            target.User,
		Auth:            auth,
		HostKeyCallback: hostKeys,
		Timeout:         timeout,
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target.Addr())
	if err != nil {
		return nil, classifyDial(err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, target.Addr(), cfg)
	if err != nil {
		conn.Close()
		return nil, classifyHandshake(err)
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	sess, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrResource, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := sess.RequestPty("xterm-256color", rows, cols, modes); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("%w: request pty: %v", ErrResource, err)
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("%w: stdin pipe: %v", ErrResource, err)
	}
	// with a pty, remote stderr arrives on the same channel as stdout
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrResource, err)
	}

	if err := sess.Shell(); err != nil {
		sess.Close()
		client.Close()
		return nil, fmt.Errorf("%w: start shell: %v", ErrResource, err)
	}

	r := &Remote{
		target: target,
		client: client,
		sess:   sess,
		stdin:  stdin,
		out:    make(chan []byte, outputBufferSize),
	}
	r.status.Store(int32(StatusConnected))
	go r.readLoop(stdout)
	return r, nil
}

// readLoop pumps remote output into the channel in receipt order. It is the
// channel's only producer and closes it on exit.
func (r *Remote) readLoop(stdout io.Reader) {
	defer close(r.out)
	buf := make([]byte, readBufferSize)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.out <- chunk
		}
		if err != nil {
			if err != io.EOF {
				r.setErr(err)
			}
			r.status.Store(int32(StatusDisconnected))
			return
		}
	}
}

// Write sends input to the remote shell.
func (r *Remote) Write(p []byte) (int, error) {
	return r.stdin.Write(p)
}

// Resize sends a window-change request for the new dimensions.
func (r *Remote) Resize(rows, cols int) error {
	return r.sess.WindowChange(rows, cols)
}

// Output returns the stream of received byte chunks.
func (r *Remote) Output() <-chan []byte {
	return r.out
}

// Status reports the lifecycle state.
func (r *Remote) Status() Status {
	return Status(r.status.Load())
}

// Err returns the error that ended the transport, or nil.
func (r *Remote) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Remote) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// Target returns the connection target this session was dialed with.
func (r *Remote) Target() Target {
	return r.target
}

// Close terminates the session and the underlying connection. The read loop
// notices the closed channel and finishes on its own.
func (r *Remote) Close() error {
	var err error
	r.closeOnce.Do(func() {
		r.status.Store(int32(StatusDisconnected))
		r.sess.Close()
		err = r.client.Close()
	})
	return err
}

// authMethods builds the ssh auth chain for the configured method.
func authMethods(a Auth) ([]ssh.AuthMethod, error) {
	switch a.Method {
	case "", "password":
		if a.Password == "" {
			return nil, fmt.Errorf("no password configured")
		}
		return []ssh.AuthMethod{ssh.Password(a.Password)}, nil
	case "key":
		data, err := os.ReadFile(a.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key %s: %v", a.KeyFile, err)
		}
		var signer ssh.Signer
		if a.Passphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(data, []byte(a.Passphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(data)
		}
		if err != nil {
			return nil, fmt.Errorf("parse key %s: %v", a.KeyFile, err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	default:
		return nil, fmt.Errorf("unknown auth method %q", a.Method)
	}
}

// classifyDial maps a TCP dial failure onto the connect error taxonomy.
func classifyDial(err error) error {
	if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if err == context.DeadlineExceeded {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

// classifyHandshake distinguishes auth rejections from transport failures
// during the SSH handshake.
func classifyHandshake(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "permission denied") {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
