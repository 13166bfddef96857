// Package rangeiter streams IPv4 addresses over one or many CIDRs with
// bounded memory, optionally randomized.
//
// Grounded in original_source/src/network.rs's NetworkIterator: a vector
// of remaining networks, a current per-CIDR sub-iterator, and (random
// mode only) a refillable pool capped at 1000 addresses. Refilling in
// chunks bounds memory to O(len(cidrs) + 1000) regardless of total host
// count; a globally uniform shuffle would need O(N) memory and is an
// explicit non-goal (spec.md §9).
package rangeiter

import (
	"encoding/binary"
	"math/rand"
	"net"
)

const poolSize = 1000

// subIterator walks every address in a single CIDR, in order, including
// the network and broadcast addresses; selection of which targets to
// actually probe is the caller's responsibility.
type subIterator struct {
	next uint32
	last uint32
	done bool
}

func newSubIterator(network net.IPNet) *subIterator {
	ip4 := network.IP.To4()
	if ip4 == nil {
		return &subIterator{done: true}
	}
	base := binary.BigEndian.Uint32(ip4)
	ones, bits := network.Mask.Size()
	if bits != 32 {
		return &subIterator{done: true}
	}
	hostBits := uint(32 - ones)
	var size uint64 = 1 << hostBits
	start := base &^ uint32((1<<hostBits)-1)
	return &subIterator{
		next: start,
		last: start + uint32(size-1),
	}
}

func (s *subIterator) next_() (net.IP, bool) {
	if s.done {
		return nil, false
	}
	cur := s.next
	if cur == s.last {
		s.done = true
	} else {
		s.next++
	}
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, cur)
	return ip, true
}

// Iterator is a lazy, finite, non-restartable producer of net.IP values
// over a list of CIDRs.
type Iterator struct {
	networks []net.IPNet
	current  *subIterator
	random   bool
	pool     []net.IP
	rng      *rand.Rand
}

// New constructs an Iterator over cidrs. When random is true, CIDR order
// is shuffled up front and each sub-range is drained through a
// locally-shuffled pool of at most 1000 addresses at a time.
func New(cidrs []net.IPNet, random bool) *Iterator {
	networks := make([]net.IPNet, len(cidrs))
	copy(networks, cidrs)

	it := &Iterator{
		networks: networks,
		random:   random,
	}
	if random {
		it.rng = rand.New(rand.NewSource(rand.Int63()))
		it.rng.Shuffle(len(it.networks), func(i, j int) {
			it.networks[i], it.networks[j] = it.networks[j], it.networks[i]
		})
	}
	return it
}

func (it *Iterator) hasNoItemsLeft() bool {
	return it.current == nil && len(it.networks) == 0 && len(it.pool) == 0
}

func (it *Iterator) selectNewIterator() {
	it.current = newSubIterator(it.networks[0])
	it.networks = it.networks[1:]
}

func (it *Iterator) popCurrent() (net.IP, bool) {
	if it.current == nil {
		return nil, false
	}
	return it.current.next_()
}

func (it *Iterator) fillPool() {
	for i := 0; i < poolSize; i++ {
		ip, ok := it.popCurrent()
		if !ok {
			break
		}
		it.pool = append(it.pool, ip)
	}
	it.rng.Shuffle(len(it.pool), func(i, j int) {
		it.pool[i], it.pool[j] = it.pool[j], it.pool[i]
	})
}

func popLast(pool []net.IP) ([]net.IP, net.IP, bool) {
	if len(pool) == 0 {
		return pool, nil, false
	}
	n := len(pool) - 1
	ip := pool[n]
	return pool[:n], ip, true
}

// Next returns the next address in the union, or (nil, false) once every
// CIDR has been fully consumed.
func (it *Iterator) Next() (net.IP, bool) {
	if it.hasNoItemsLeft() {
		return nil, false
	}

	if it.current == nil && len(it.networks) > 0 {
		it.selectNewIterator()
	}

	if it.random && len(it.pool) == 0 {
		it.fillPool()
	}

	var ip net.IP
	var ok bool
	if it.random {
		it.pool, ip, ok = popLast(it.pool)
	} else {
		ip, ok = it.popCurrent()
	}

	if !ok && len(it.networks) > 0 {
		it.selectNewIterator()
		return it.popCurrent()
	}

	return ip, ok
}
