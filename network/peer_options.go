package network

import (
	"crypto/tls"
	"crypto/x509"
	"time"

	"github.com/google/uuid"
)

type PeerOption func(Peer) Peer

// WithTimeout bounds a single HTTP request and the shutdown of the server.
func WithTimeout(timeout time.Duration) PeerOption {
	return func(p Peer) Peer {
		p.timeout = timeout
		return p
	}
}

func WithRetry(policy RetryPolicy) PeerOption {
	return func(p Peer) Peer {
		p.retry = policy
		return p
	}
}

// WithSession makes the peer refuse messages carrying another session id.
func WithSession(session uuid.UUID) PeerOption {
	return func(p Peer) Peer {
		p.session = session
		return p
	}
}

func WithCertificate(cert tls.Certificate) PeerOption {
	return func(p Peer) Peer {
		if p.tlsConfig == nil {
			p.tlsConfig = &tls.Config{}
		}
		p.tlsConfig.Certificates = append(p.tlsConfig.Certificates, cert)
		return p
	}
}

// WithLimitedCAs trusts only certPool, both as server and as client.
func WithLimitedCAs(certPool *x509.CertPool) PeerOption {
	return func(p Peer) Peer {
		if p.tlsConfig == nil {
			p.tlsConfig = &tls.Config{}
		}
		p.tlsConfig.RootCAs = certPool
		p.tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		p.tlsConfig.ClientCAs = certPool
		return p
	}
}
