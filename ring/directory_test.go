package ring

import (
	"fmt"
	"sync"
	"testing"

	"github.com/luca-patrignani/token-ring/identity"
)

func newTestDirectory(n int) *Directory {
	members := make([]Member, n)
	for i := range n {
		members[i] = Member{
			Identity: identity.Identity(fmt.Sprintf("%02x", i)),
			Address:  fmt.Sprintf("localhost:%d", 9000+i),
		}
	}
	return New(members)
}

func TestNextActiveSkipsInactive(t *testing.T) {
	d := newTestDirectory(5)
	d.MarkInactive(1)
	d.MarkInactive(2)

	next, ok := d.NextActive(0)
	if !ok || next != 3 {
		t.Fatalf("expected 3, got %d (ok=%v)", next, ok)
	}
	next, ok = d.NextActive(4)
	if !ok || next != 0 {
		t.Fatalf("expected wrap to 0, got %d (ok=%v)", next, ok)
	}
}

func TestNextActiveSoleSurvivor(t *testing.T) {
	d := newTestDirectory(3)
	d.MarkInactive(0)
	d.MarkInactive(2)

	if next, ok := d.NextActive(1); ok {
		t.Fatalf("expected no successor, got %d", next)
	}
}

func TestNextActiveSingleEntry(t *testing.T) {
	d := newTestDirectory(1)
	if next, ok := d.NextActive(0); ok {
		t.Fatalf("expected no successor, got %d", next)
	}
	if s, ok := d.Survivor(); !ok || s != 0 {
		t.Fatalf("expected survivor 0, got %d (ok=%v)", s, ok)
	}
}

// Following NextActive from any active index visits every active index
// exactly once before coming back.
func TestNextActiveRoundTrip(t *testing.T) {
	n := 7
	for mask := 1; mask < 1<<n; mask++ {
		d := newTestDirectory(n)
		for i := range n {
			if mask&(1<<i) == 0 {
				d.MarkInactive(i)
			}
		}
		active := d.Active()
		for _, start := range active {
			visited := map[int]int{start: 1}
			cur := start
			for {
				next, ok := d.NextActive(cur)
				if !ok {
					if len(active) != 1 {
						t.Fatalf("mask %b: no successor from %d with %d active", mask, cur, len(active))
					}
					break
				}
				if next == start {
					break
				}
				visited[next]++
				cur = next
			}
			if len(visited) != len(active) {
				t.Fatalf("mask %b from %d: visited %d of %d active", mask, start, len(visited), len(active))
			}
			for i, count := range visited {
				if count != 1 {
					t.Fatalf("mask %b from %d: visited %d %d times", mask, start, i, count)
				}
			}
		}
	}
}

func TestMarkInactiveIdempotent(t *testing.T) {
	d := newTestDirectory(4)

	changed, sole := d.MarkInactive(2)
	if !changed || sole {
		t.Fatalf("first call: changed=%v sole=%v", changed, sole)
	}
	changed, sole = d.MarkInactive(2)
	if changed || sole {
		t.Fatalf("second call: changed=%v sole=%v", changed, sole)
	}
	if d.Live() != 3 {
		t.Fatalf("expected live count 3, got %d", d.Live())
	}
}

func TestMarkInactiveReportsSoleOnce(t *testing.T) {
	d := newTestDirectory(3)
	if _, sole := d.MarkInactive(0); sole {
		t.Fatal("live count 2 reported as sole")
	}
	if _, sole := d.MarkInactive(1); !sole {
		t.Fatal("live count 1 not reported as sole")
	}
	if _, sole := d.MarkInactive(1); sole {
		t.Fatal("duplicate reported as sole")
	}
	if s, ok := d.Survivor(); !ok || s != 2 {
		t.Fatalf("expected survivor 2, got %d (ok=%v)", s, ok)
	}
}

func TestMarkInactiveOutOfRange(t *testing.T) {
	d := newTestDirectory(2)
	if changed, _ := d.MarkInactive(-1); changed {
		t.Fatal("negative index changed the directory")
	}
	if changed, _ := d.MarkInactive(2); changed {
		t.Fatal("index past the end changed the directory")
	}
	if d.Live() != 2 {
		t.Fatalf("expected live count 2, got %d", d.Live())
	}
}

func TestMarkInactiveConcurrent(t *testing.T) {
	n := 64
	d := newTestDirectory(n)
	var wg sync.WaitGroup
	var mu sync.Mutex
	soles := 0
	changes := 0
	for i := range n - 1 {
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				changed, sole := d.MarkInactive(i)
				mu.Lock()
				defer mu.Unlock()
				if changed {
					changes++
				}
				if sole {
					soles++
				}
			}()
		}
	}
	wg.Wait()
	if changes != n-1 {
		t.Fatalf("expected %d changes, got %d", n-1, changes)
	}
	if soles != 1 {
		t.Fatalf("expected exactly one sole report, got %d", soles)
	}
	if s, ok := d.Survivor(); !ok || s != n-1 {
		t.Fatalf("expected survivor %d, got %d (ok=%v)", n-1, s, ok)
	}
}

func TestIndexOf(t *testing.T) {
	d := newTestDirectory(3)
	i, ok := d.IndexOf(d.Identity(2))
	if !ok || i != 2 {
		t.Fatalf("expected 2, got %d (ok=%v)", i, ok)
	}
	if _, ok := d.IndexOf(identity.Identity("zz")); ok {
		t.Fatal("unknown identity found")
	}
	if d.Address(1) != "localhost:9001" {
		t.Fatalf("unexpected address %s", d.Address(1))
	}
}
