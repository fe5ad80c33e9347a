package ring

import (
	"sync/atomic"

	"github.com/luca-patrignani/token-ring/identity"
)

// Member is the bootstrap information about one actor.
type Member struct {
	Identity identity.Identity
	Address  string
}

type entry struct {
	identity identity.Identity
	address  string
	active   atomic.Bool
}

// Directory is the liveness table of the ring.
type Directory struct {
	entries []*entry
	live    atomic.Int32
}

// New creates a directory where members[i] is the actor with index i.
// Every entry starts active.
func New(members []Member) *Directory {
	d := &Directory{entries: make([]*entry, len(members))}
	for i, m := range members {
		e := &entry{identity: m.Identity, address: m.Address}
		e.active.Store(true)
		d.entries[i] = e
	}
	d.live.Store(int32(len(members)))
	return d
}

// Len returns the number of entries, active or not.
func (d *Directory) Len() int {
	return len(d.entries)
}

// NextActive returns the first active index found walking clockwise from
// from+1. It never returns from itself: ok is false when no other entry is
// active.
func (d *Directory) NextActive(from int) (next int, ok bool) {
	n := len(d.entries)
	for step := 1; step < n; step++ {
		i := (from + step) % n
		if d.entries[i].active.Load() {
			return i, true
		}
	}
	return -1, false
}

// MarkInactive flips the entry to inactive. changed reports whether this
// call did the flip, sole whether it brought the live count down to
// exactly one.
func (d *Directory) MarkInactive(index int) (changed, sole bool) {
	if index < 0 || index >= len(d.entries) {
		return false, false
	}
	if !d.entries[index].active.CompareAndSwap(true, false) {
		return false, false
	}
	return true, d.live.Add(-1) == 1
}

// IsActive reports whether index is still in the game.
func (d *Directory) IsActive(index int) bool {
	if index < 0 || index >= len(d.entries) {
		return false
	}
	return d.entries[index].active.Load()
}

// Live returns the number of active entries.
func (d *Directory) Live() int {
	return int(d.live.Load())
}

// Active returns the active indices in ring order.
func (d *Directory) Active() []int {
	var active []int
	for i, e := range d.entries {
		if e.active.Load() {
			active = append(active, i)
		}
	}
	return active
}

// Survivor returns the only active index. ok is false while more than one
// entry is active.
func (d *Directory) Survivor() (index int, ok bool) {
	if d.Live() != 1 {
		return -1, false
	}
	active := d.Active()
	if len(active) != 1 {
		return -1, false
	}
	return active[0], true
}

// IndexOf returns the index of the actor with the given identity.
func (d *Directory) IndexOf(id identity.Identity) (int, bool) {
	for i, e := range d.entries {
		if e.identity == id {
			return i, true
		}
	}
	return -1, false
}

func (d *Directory) Identity(index int) identity.Identity {
	return d.entries[index].identity
}

func (d *Directory) Address(index int) string {
	return d.entries[index].address
}
