package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidChain = errors.New("invalid chain")

type Ledger struct {
	mu      sync.RWMutex
	session uuid.UUID
	blocks  []Block
}

// New creates a ledger whose genesis block has index 0 and previous hash "0".
func New(session uuid.UUID) *Ledger {
	l := &Ledger{session: session}
	genesis := Block{
		Index:     0,
		Timestamp: time.Now().UnixNano(),
		PrevHash:  "0",
		Session:   session,
		Event:     Event{Kind: EventGenesis, Actor: -1},
	}
	genesis.Hash = calculateHash(genesis)
	l.blocks = append(l.blocks, genesis)
	return l
}

func (l *Ledger) Session() uuid.UUID {
	return l.session
}

// Record appends e in a new block linked to the latest one. It is safe to
// call from every actor concurrently.
func (l *Ledger) Record(e Event) error {
	if e.Kind == "" || e.Kind == EventGenesis {
		return fmt.Errorf("cannot record event of kind %q", e.Kind)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	latest := l.blocks[len(l.blocks)-1]
	block := Block{
		Index:     latest.Index + 1,
		Timestamp: time.Now().UnixNano(),
		PrevHash:  latest.Hash,
		Session:   l.session,
		Event:     e,
	}
	block.Hash = calculateHash(block)
	if err := validateBlock(block, latest); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	l.blocks = append(l.blocks, block)
	return nil
}

func (l *Ledger) Latest() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blocks[len(l.blocks)-1]
}

// ByIndex retrieves a block by its position in the chain.
func (l *Ledger) ByIndex(index int) (Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if index < 0 || index >= len(l.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return l.blocks[index], nil
}

// Blocks returns a copy of the chain.
func (l *Ledger) Blocks() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Block(nil), l.blocks...)
}

// Events returns the recorded events in chain order, restricted to the
// given kinds if any. The genesis event is never returned.
func (l *Ledger) Events(kinds ...EventKind) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var events []Event
	for _, b := range l.blocks[1:] {
		if len(kinds) == 0 || contains(kinds, b.Event.Kind) {
			events = append(events, b.Event)
		}
	}
	return events
}

// Verify checks the genesis block and every link of the chain.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return verify(l.blocks)
}

func verify(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidChain)
	}
	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != "0" || genesis.Hash != calculateHash(genesis) {
		return fmt.Errorf("%w: bad genesis block", ErrInvalidChain)
	}
	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("%w: block %d: %w", ErrInvalidChain, i, err)
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if current.Session != previous.Session {
		return fmt.Errorf("session changed from %s to %s", previous.Session, current.Session)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

func calculateHash(block Block) string {
	eventBytes, _ := json.Marshal(block.Event)
	data := fmt.Sprintf("%d%d%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		block.Session,
		string(eventBytes),
	)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

func contains(kinds []EventKind, k EventKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
