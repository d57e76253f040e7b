package server

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/binary"
	"encoding/json"
	"encoding/pem"
	"io"
	"math/big"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/quic-go/quic-go"

	"github.com/zeusync/physics2d/internal/core/observability/log"
)

// NextProto is the ALPN protocol spoken on the snapshot stream.
const NextProto = "physics2d-snapshot"

// MaxFrameSize bounds a single length-prefixed frame.
const MaxFrameSize = 16 << 20

// WriteFrame writes data prefixed by its length as a big-endian uint32.
func WriteFrame(w io.Writer, data []byte) error {
	if len(data) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(data)))
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "write frame header")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write frame body")
	}
	return nil
}

// ReadFrame reads one frame written by WriteFrame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Wrap(err, "read frame body")
	}
	return data, nil
}

// ListenQUIC opens a QUIC listener on addr with a freshly generated
// self-signed certificate.
func ListenQUIC(addr string) (*quic.Listener, error) {
	tlsConf, err := selfSignedTLS()
	if err != nil {
		return nil, err
	}
	ln, err := quic.ListenAddr(addr, tlsConf, &quic.Config{
		MaxIdleTimeout:  30 * time.Second,
		KeepAlivePeriod: 10 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start QUIC listener")
	}
	return ln, nil
}

// ServeQUIC accepts connections until ctx is done. Every connection gets one
// unidirectional stream carrying length-prefixed snapshot frames.
func (s *Server) ServeQUIC(ctx context.Context, ln *quic.Listener) error {
	s.logger.Info("QUIC snapshot stream listening", log.String("addr", ln.Addr().String()))
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "accept QUIC connection")
		}
		go s.streamQUIC(ctx, conn)
	}
}

func (s *Server) streamQUIC(ctx context.Context, conn *quic.Conn) {
	clientLogger := s.logger.With(log.String("remote_addr", conn.RemoteAddr().String()))
	clientLogger.Info("QUIC client connected")
	defer func() {
		_ = conn.CloseWithError(0, "done")
		clientLogger.Info("QUIC client disconnected")
	}()

	stream, err := conn.OpenUniStreamSync(ctx)
	if err != nil {
		clientLogger.Warn("Failed to open snapshot stream", log.Error(err))
		return
	}
	defer func() { _ = stream.Close() }()

	updates, cancel := s.hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-conn.Context().Done():
			return
		case data, ok := <-updates:
			if !ok {
				return
			}
			_ = stream.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := WriteFrame(stream, data); err != nil {
				clientLogger.Debug("QUIC write failed", log.Error(err))
				return
			}
		}
	}
}

// QUICClient reads snapshots from a server's QUIC stream.
type QUICClient struct {
	conn   *quic.Conn
	stream *quic.ReceiveStream
}

// DialQUIC connects to addr. The server certificate is not verified.
func DialQUIC(ctx context.Context, addr string) (*QUICClient, error) {
	conn, err := quic.DialAddr(ctx, addr, &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec
		NextProtos:         []string{NextProto},
		MinVersion:         tls.VersionTLS13,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dial QUIC")
	}
	stream, err := conn.AcceptUniStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "")
		return nil, errors.Wrap(err, "accept snapshot stream")
	}
	return &QUICClient{conn: conn, stream: stream}, nil
}

// Next blocks for the next snapshot.
func (c *QUICClient) Next() (Snapshot, error) {
	var snap Snapshot
	data, err := ReadFrame(c.stream)
	if err != nil {
		return snap, err
	}
	if err = json.Unmarshal(data, &snap); err != nil {
		return snap, errors.Wrap(err, "decode snapshot")
	}
	return snap, nil
}

func (c *QUICClient) Close() error {
	return c.conn.CloseWithError(0, "")
}

func selfSignedTLS() (*tls.Config, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{Organization: []string{"physics2d"}},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:     []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, errors.Wrap(err, "create certificate")
	}

	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, errors.Wrap(err, "load key pair")
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{NextProto},
		MinVersion:   tls.VersionTLS13,
	}, nil
}
