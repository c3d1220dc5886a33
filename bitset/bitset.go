package bitset

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	wordBits  = 64
	wordShift = 6
)

// BitSet is a dense set of non-negative ints.
// The zero value is an empty set ready to use.
type BitSet struct {
	words []uint64
}

// New returns an empty BitSet with room for capacity bits before growing.
func New(capacity int) *BitSet {
	if capacity < 0 {
		panic(fmt.Sprintf("bitset: negative capacity %d", capacity))
	}
	return &BitSet{words: make([]uint64, wordsFor(capacity))}
}

// Of returns a BitSet containing exactly the given indices.
func Of(indices ...int) *BitSet {
	b := &BitSet{}
	for _, i := range indices {
		b.Set(i)
	}
	return b
}

// Range returns the set {from, ..., to-1}.
func Range(from, to int) *BitSet {
	b := New(to)
	b.SetRange(from, to)
	return b
}

func wordsFor(nbits int) int {
	return (nbits + wordBits - 1) >> wordShift
}

func checkIndex(i int) {
	if i < 0 {
		panic(fmt.Sprintf("bitset: negative index %d", i))
	}
}

// grow makes sure word w exists.
func (b *BitSet) grow(w int) {
	if w < len(b.words) {
		return
	}
	if w < cap(b.words) {
		b.words = b.words[:w+1]
		return
	}
	n := 2 * cap(b.words)
	if n < w+1 {
		n = w + 1
	}
	words := make([]uint64, w+1, n)
	copy(words, b.words)
	b.words = words
}

// Set adds i to the set.
func (b *BitSet) Set(i int) {
	checkIndex(i)
	w := i >> wordShift
	b.grow(w)
	b.words[w] |= 1 << uint(i&(wordBits-1))
}

// Clear removes i from the set.
func (b *BitSet) Clear(i int) {
	checkIndex(i)
	w := i >> wordShift
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= 1 << uint(i&(wordBits-1))
}

// SetTo adds or removes i depending on v.
func (b *BitSet) SetTo(i int, v bool) {
	if v {
		b.Set(i)
		return
	}
	b.Clear(i)
}

// Get reports whether i is in the set.
func (b *BitSet) Get(i int) bool {
	checkIndex(i)
	w := i >> wordShift
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<uint(i&(wordBits-1))) != 0
}

// SetRange adds every index in [from, to).
func (b *BitSet) SetRange(from, to int) {
	checkIndex(from)
	if to <= from {
		return
	}
	b.grow((to - 1) >> wordShift)
	for i := from; i < to; {
		w := i >> wordShift
		off := uint(i & (wordBits - 1))
		if off == 0 && to-i >= wordBits {
			b.words[w] = ^uint64(0)
			i += wordBits
			continue
		}
		b.words[w] |= 1 << off
		i++
	}
}

// NextSetBit returns the smallest member >= from, or -1 if there is none.
func (b *BitSet) NextSetBit(from int) int {
	checkIndex(from)
	w := from >> wordShift
	if w >= len(b.words) {
		return -1
	}
	word := b.words[w] >> uint(from&(wordBits-1))
	if word != 0 {
		return from + bits.TrailingZeros64(word)
	}
	for w++; w < len(b.words); w++ {
		if b.words[w] != 0 {
			return w<<wordShift + bits.TrailingZeros64(b.words[w])
		}
	}
	return -1
}

// NextClearBit returns the smallest non-member >= from.
func (b *BitSet) NextClearBit(from int) int {
	checkIndex(from)
	w := from >> wordShift
	if w >= len(b.words) {
		return from
	}
	word := ^b.words[w] >> uint(from&(wordBits-1))
	if word != 0 {
		return from + bits.TrailingZeros64(word)
	}
	for w++; w < len(b.words); w++ {
		if b.words[w] != ^uint64(0) {
			return w<<wordShift + bits.TrailingZeros64(^b.words[w])
		}
	}
	return len(b.words) << wordShift
}

// Or sets b to b ∪ other.
func (b *BitSet) Or(other *BitSet) {
	if len(other.words) > len(b.words) {
		b.grow(len(other.words) - 1)
	}
	for i, w := range other.words {
		b.words[i] |= w
	}
}

// And sets b to b ∩ other.
func (b *BitSet) And(other *BitSet) {
	n := min(len(b.words), len(other.words))
	for i := 0; i < n; i++ {
		b.words[i] &= other.words[i]
	}
	clear(b.words[n:])
}

// AndNot sets b to b \ other.
func (b *BitSet) AndNot(other *BitSet) {
	n := min(len(b.words), len(other.words))
	for i := 0; i < n; i++ {
		b.words[i] &^= other.words[i]
	}
}

// Reset removes every member. Capacity is kept.
func (b *BitSet) Reset() {
	clear(b.words)
}

// Cardinality returns the number of members.
func (b *BitSet) Cardinality() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (b *BitSet) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the largest member plus one, or 0 for the empty set.
func (b *BitSet) Len() int {
	for w := len(b.words) - 1; w >= 0; w-- {
		if b.words[w] != 0 {
			return w<<wordShift + wordBits - bits.LeadingZeros64(b.words[w])
		}
	}
	return 0
}

// Clone returns an independent copy.
func (b *BitSet) Clone() *BitSet {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitSet{words: words}
}

// Copy overwrites b with the members of src.
func (b *BitSet) Copy(src *BitSet) {
	if len(src.words) > len(b.words) {
		b.grow(len(src.words) - 1)
	}
	n := copy(b.words, src.words)
	clear(b.words[n:])
}

// Complement returns the members of [0, n) not in b.
func (b *BitSet) Complement(n int) *BitSet {
	out := Range(0, n)
	out.AndNot(b)
	return out
}

// Equal reports whether b and other hold the same members.
func (b *BitSet) Equal(other *BitSet) bool {
	short, long := b.words, other.words
	if len(short) > len(long) {
		short, long = long, short
	}
	for i, w := range short {
		if w != long[i] {
			return false
		}
	}
	for _, w := range long[len(short):] {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every member of b is in other.
func (b *BitSet) IsSubsetOf(other *BitSet) bool {
	for i, w := range b.words {
		var o uint64
		if i < len(other.words) {
			o = other.words[i]
		}
		if w&^o != 0 {
			return false
		}
	}
	return true
}

// Intersects reports whether b and other share a member.
func (b *BitSet) Intersects(other *BitSet) bool {
	n := min(len(b.words), len(other.words))
	for i := 0; i < n; i++ {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// All iterates the members in ascending order.
func (b *BitSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w, word := range b.words {
			for word != 0 {
				t := bits.TrailingZeros64(word)
				if !yield(w<<wordShift + t) {
					return
				}
				word &= word - 1
			}
		}
	}
}

// Indices returns the members in ascending order.
func (b *BitSet) Indices() []int {
	out := make([]int, 0, b.Cardinality())
	for i := range b.All() {
		out = append(out, i)
	}
	return out
}

// String renders the set as {a, b, c}.
func (b *BitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := range b.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%d", i)
	}
	sb.WriteByte('}')
	return sb.String()
}
