package store

import (
	"bytes"

	"github.com/google/btree"
)

// collect returns the cached entries in [start, end), deletions included,
// in iteration order. A nil bound is open.
func collect(bt *btree.BTree, start, end []byte, reverse bool) []entry {
	var items []entry
	insert := func(i btree.Item) bool {
		items = append(items, i.(entry))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, insert)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, insert)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// side tells which iterator holds the next key of a mergedIterator.
type side uint8

const (
	sideNone side = iota
	sideCache
	sideBack
	// sideBoth means both hold the same key. The cache wins.
	sideBoth
)

// mergedIterator walks the cached entries and the backing store together.
// A cached entry shadows the backing entry with the same key and a cached
// deletion hides it.
type mergedIterator struct {
	items   []entry
	pos     int
	back    Iterator
	reverse bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(items []entry, back Iterator, reverse bool) (*mergedIterator, error) {
	it := &mergedIterator{items: items, back: back, reverse: reverse}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *mergedIterator) Valid() bool {
	return it.next() != sideNone
}

func (it *mergedIterator) Next() error {
	if err := it.advance(it.next()); err != nil {
		return err
	}
	return it.skipDeleted()
}

func (it *mergedIterator) Key() []byte {
	key, _ := it.current()
	return key
}

func (it *mergedIterator) Value() []byte {
	_, value := it.current()
	return value
}

func (it *mergedIterator) Close() {
	it.items = nil
	it.back.Close()
}

func (it *mergedIterator) current() ([]byte, []byte) {
	switch it.next() {
	case sideCache, sideBoth:
		e := it.items[it.pos]
		return e.key, e.value
	case sideBack:
		return it.back.Key(), it.back.Value()
	}
	panic("iterator exhausted")
}

// advance moves past the current key on the given side.
func (it *mergedIterator) advance(s side) error {
	switch s {
	case sideNone:
		panic("iterator exhausted")
	case sideCache:
		it.pos++
		return nil
	case sideBoth:
		it.pos++
	}
	return it.back.Next()
}

// skipDeleted moves past every cached deletion and the backing entry it
// hides.
func (it *mergedIterator) skipDeleted() error {
	for {
		s := it.next()
		if s != sideCache && s != sideBoth {
			return nil
		}
		if !it.items[it.pos].deleted {
			return nil
		}
		if err := it.advance(s); err != nil {
			return err
		}
	}
}

func (it *mergedIterator) next() side {
	cached := it.pos < len(it.items)
	backed := it.back != nil && it.back.Valid()
	switch {
	case !cached && !backed:
		return sideNone
	case !backed:
		return sideCache
	case !cached:
		return sideBack
	}

	cmp := bytes.Compare(it.items[it.pos].key, it.back.Key())
	if it.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return sideCache
	case cmp > 0:
		return sideBack
	}
	return sideBoth
}
