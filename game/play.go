package game

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/luca-patrignani/token-ring/identity"
	"github.com/luca-patrignani/token-ring/ledger"
	"github.com/luca-patrignani/token-ring/network"
	"github.com/luca-patrignani/token-ring/ring"
	"golang.org/x/sync/errgroup"
)

// Outcome is the view of a finished game.
type Outcome struct {
	Session uuid.UUID
	Winner  int
	// Results[i] is the result of the actor with index i.
	Results []Result
	Ledger  *ledger.Ledger
}

// Play runs a complete game and waits for every actor to terminate.
func Play(ctx context.Context, cfg Config, opts ...Option) (Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return Outcome{}, err
	}
	o := applyOptions(opts)
	session := uuid.New()
	journal := ledger.New(session)
	outcome := Outcome{Session: session, Winner: -1, Ledger: journal}

	ids, err := identity.Distinct(cfg.Peers)
	if err != nil {
		return outcome, fmt.Errorf("failed to generate identities: %w", err)
	}
	endpoints, addresses, err := openEndpoints(cfg.Peers, session, o)
	if err != nil {
		return outcome, err
	}
	o.logger.Info("game started",
		"session", session,
		"peers", cfg.Peers,
		"token", cfg.InitialToken,
		"max", cfg.MaxDecrement,
		"transport", o.transport,
	)

	members := make([]ring.Member, cfg.Peers)
	for i := range members {
		members[i] = ring.Member{Identity: ids[i], Address: addresses[i]}
	}
	results := make([]Result, cfg.Peers)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Peers; i++ {
		node := NewNode(i, cfg, ring.New(members), endpoints[i],
			WithLogger(o.logger),
			WithRecorder(journal),
			WithDecrementers(o.decrementers),
		)
		g.Go(func() error {
			r, err := node.Run(gctx)
			results[i] = r
			return err
		})
	}
	err = g.Wait()
	outcome.Results = results
	if err != nil {
		return outcome, err
	}
	winner, err := agree(results)
	if err != nil {
		return outcome, err
	}
	outcome.Winner = winner
	return outcome, nil
}

// agree checks that every actor saw the same, single winner.
func agree(results []Result) (int, error) {
	if len(results) == 0 {
		return -1, fmt.Errorf("%w: no results", ErrSplitOutcome)
	}
	winner := results[0].Winner
	won := 0
	for _, r := range results {
		if r.Winner != winner {
			return -1, fmt.Errorf("%w: actor %d saw winner %d, actor %d saw %d",
				ErrSplitOutcome, results[0].Index, winner, r.Index, r.Winner)
		}
		if r.Completion == Won {
			won++
		}
	}
	if winner < 0 || winner >= len(results) || won != 1 || results[winner].Completion != Won {
		return -1, fmt.Errorf("%w: winner %d, %d actors won", ErrSplitOutcome, winner, won)
	}
	return winner, nil
}

func openEndpoints(n int, session uuid.UUID, o options) ([]Endpoint, []string, error) {
	endpoints := make([]Endpoint, n)
	addresses := make([]string, n)
	switch o.transport {
	case TransportLocal:
		sw := network.NewSwitch(n, network.WithSwitchRetry(o.retry))
		for i := range endpoints {
			endpoints[i] = sw.Endpoint(i)
			addresses[i] = fmt.Sprintf("local:%d", i)
		}
		return endpoints, addresses, nil
	case TransportHTTP:
		listeners, table, err := network.CreateListeners(n)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open listeners: %w", err)
		}
		peerOpts := make([][]network.PeerOption, n)
		for i := range peerOpts {
			peerOpts[i] = []network.PeerOption{
				network.WithSession(session),
				network.WithRetry(o.retry),
				network.WithTimeout(o.timeout),
			}
		}
		if o.tls {
			if err := withCertificates(table, peerOpts); err != nil {
				closeListeners(listeners)
				return nil, nil, err
			}
		}
		for i := range endpoints {
			endpoints[i] = network.NewPeer(i, table, listeners[i], peerOpts[i]...)
			addresses[i] = table[i]
		}
		return endpoints, addresses, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown transport %v", ErrInvalidConfig, o.transport)
	}
}

// withCertificates gives every peer a self signed certificate and makes
// all of them trust exactly those certificates.
func withCertificates(addresses map[int]string, peerOpts [][]network.PeerOption) error {
	certs := make([]tls.Certificate, len(peerOpts))
	pool := x509.NewCertPool()
	for i := range peerOpts {
		cert, pem, err := network.GenerateSelfSignedCert(addresses[i])
		if err != nil {
			return fmt.Errorf("failed to generate certificate for actor %d: %w", i, err)
		}
		pool.AppendCertsFromPEM(pem)
		certs[i] = cert
	}
	for i := range peerOpts {
		peerOpts[i] = append(peerOpts[i], network.WithCertificate(certs[i]), network.WithLimitedCAs(pool))
	}
	return nil
}

func closeListeners(listeners map[int]net.Listener) {
	for _, l := range listeners {
		l.Close()
	}
}
