package network

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/luca-patrignani/token-ring/message"
)

const defaultTimeout = 2 * time.Second

// Peer is an HTTP endpoint of the ring.
// Addresses[i] contains the address to reach the Peer with rank i.
type Peer struct {
	Addresses map[int]string
	rank      int
	server    *http.Server
	handler   *ringHandler
	client    *http.Client
	timeout   time.Duration
	retry     RetryPolicy
	session   uuid.UUID
	tlsConfig *tls.Config
}

// NewPeer starts serving l and returns the peer of the given rank.
func NewPeer(rank int, addresses map[int]string, l net.Listener, opts ...PeerOption) *Peer {
	handler := &ringHandler{
		rank:  rank,
		inbox: newMailbox(),
	}
	p := Peer{
		Addresses: copyMap(addresses),
		rank:      rank,
		handler:   handler,
		timeout:   defaultTimeout,
		retry:     DefaultRetryPolicy,
	}
	for _, opt := range opts {
		p = opt(p)
	}
	handler.session = p.session
	p.client = &http.Client{Timeout: p.timeout}
	if p.tlsConfig != nil {
		p.client.Transport = &http.Transport{TLSClientConfig: p.tlsConfig}
		l = tls.NewListener(l, p.tlsConfig)
	}
	p.server = &http.Server{Addr: p.Addresses[rank], Handler: handler}
	go func() {
		err := p.server.Serve(l)
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
			panic(err)
		}
	}()
	return &p
}

func (p *Peer) Rank() int {
	return p.rank
}

// Send posts msg to the peer with rank to, retrying according to the
// peer's RetryPolicy.
func (p *Peer) Send(ctx context.Context, to int, msg message.Message) error {
	addr, ok := p.Addresses[to]
	if !ok {
		return fmt.Errorf("%w: no address for rank %d", ErrDeliveryFailure, to)
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	url := p.scheme() + "://" + addr
	err = p.retry.Do(ctx, func() error {
		return p.post(ctx, url, to, body)
	})
	if err != nil {
		return fmt.Errorf("send %s to %d: %w", msg.Kind, to, err)
	}
	return nil
}

func (p *Peer) Receive(ctx context.Context) (message.Message, error) {
	return p.handler.inbox.take(ctx)
}

// Close stops accepting messages and shuts the server down.
func (p *Peer) Close() error {
	p.handler.inbox.close()
	p.client.CloseIdleConnections()
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	return p.server.Shutdown(ctx)
}

func (p *Peer) scheme() string {
	if p.tlsConfig != nil {
		return "https"
	}
	return "http"
}

func (p *Peer) post(ctx context.Context, url string, to int, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("SenderRank", strconv.Itoa(p.rank))
	req.Header.Set("ReceiverRank", strconv.Itoa(to))
	req.Header.Set("Session", p.session.String())
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("rank %d answered with status code %d", to, resp.StatusCode)
	}
	return nil
}

type ringHandler struct {
	rank    int
	session uuid.UUID
	inbox   *mailbox
}

func (h *ringHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if req.Header.Get("Session") != h.session.String() {
		rw.WriteHeader(http.StatusNotAcceptable)
		return
	}
	receiver, err := strconv.Atoi(req.Header.Get("ReceiverRank"))
	if err != nil || receiver != h.rank {
		rw.WriteHeader(http.StatusNotAcceptable)
		return
	}
	if _, err := strconv.Atoi(req.Header.Get("SenderRank")); err != nil {
		rw.WriteHeader(http.StatusNotAcceptable)
		return
	}
	var msg message.Message
	if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := msg.Validate(); err != nil {
		rw.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.inbox.put(msg); err != nil {
		rw.WriteHeader(http.StatusGone)
		return
	}
	rw.WriteHeader(http.StatusAccepted)
}

// CreateListeners opens n listeners on localhost with random ports.
func CreateListeners(n int) (map[int]net.Listener, map[int]string, error) {
	listeners := make(map[int]net.Listener)
	addresses := make(map[int]string)
	for i := 0; i < n; i++ {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			for _, opened := range listeners {
				opened.Close()
			}
			return nil, nil, err
		}
		listeners[i] = l
		addresses[i] = l.Addr().String()
	}
	return listeners, addresses, nil
}

func copyMap(original map[int]string) map[int]string {
	copied := make(map[int]string)
	for k, v := range original {
		copied[k] = v
	}
	return copied
}
