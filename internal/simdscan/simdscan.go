// Package simdscan implements a branchless bulk scan over byte lanes for
// skipping whitespace and locating delimiters, using the shufti technique:
// a byte is a class member if looking it up by low nibble in one 16-entry
// table and by high nibble in another, then ANDing the results, is nonzero.
//
// The scanner is an optimization, not a correctness contract (spec.md §9):
// every strategy here is plain Go, there is no assembly, and all of them
// must return byte-identical results to the scalar predicate loop. Strategy
// selection via cpuid only changes which of the strategies Scan runs; it
// never changes the result.
package simdscan

import (
	"encoding/binary"

	"github.com/klauspost/cpuid/v2"
)

// ClassTable is the shufti encoding of a character class: two 16-entry
// nibble lookup tables. A byte b is a member of the class iff
// Low[b&0xF] & High[b>>4] != 0.
type ClassTable struct {
	Low, High [16]byte
}

// Strategy names the execution strategy used by Scan, for diagnostics only.
type Strategy string

const (
	// StrategyMiniBlock loads 8-byte lanes to the end, then a zero-padded
	// final partial lane.
	StrategyMiniBlock Strategy = "unaligned-miniblock"
	// StrategyFallback loads 8-byte lanes to the last full lane, then a
	// scalar loop for the remainder.
	StrategyFallback Strategy = "unaligned-fallback"
	// StrategyAligned runs a scalar prefix to an alignment boundary, then
	// aligned lanes, then a scalar suffix.
	StrategyAligned Strategy = "prefix-aligned-suffix"
)

// Preferred is the strategy label Scan advertises it is using, chosen once
// at init time based on detected CPU features. All three strategies produce
// identical output on every platform; this only affects which one runs.
var Preferred = detectPreferred()

func detectPreferred() Strategy {
	switch {
	case cpuid.CPU.Supports(cpuid.SSSE3), cpuid.CPU.Supports(cpuid.ASIMD):
		// A real SIMD build would use the 16-wide shufti lookup here; the
		// portable build still runs the 8-byte SWAR lane scan, which is the
		// widest lane portable Go can express without assembly.
		return StrategyMiniBlock
	default:
		return StrategyFallback
	}
}

func member(t ClassTable, b byte) bool {
	return t.Low[b&0xF]&t.High[b>>4] != 0
}

// scalarCount returns the number of leading class-member bytes of buf,
// using t. It is the reference implementation every other strategy must
// match exactly.
func scalarCount(buf []byte, t ClassTable) int {
	for i, b := range buf {
		if !member(t, b) {
			return i
		}
	}
	return len(buf)
}

// scanMiniBlock classifies buf 8 bytes at a time via unaligned uint64
// loads, finishing with a zero-padded final partial lane.
func scanMiniBlock(buf []byte, t ClassTable) int {
	n := len(buf)
	i := 0
	for i+8 <= n {
		word := binary.LittleEndian.Uint64(buf[i : i+8])
		for j := 0; j < 8; j++ {
			b := byte(word >> (8 * j))
			if !member(t, b) {
				return i + j
			}
		}
		i += 8
	}
	// Zero-padded final partial block: zero bytes are never class members
	// of any class built from a well-formed ClassTable (Low[0]&High[0] is
	// only nonzero if the caller explicitly wants NUL to match, which none
	// of zxml's classes do), so padding cannot hide a boundary.
	if i < n {
		var last [8]byte
		copy(last[:], buf[i:])
		word := binary.LittleEndian.Uint64(last[:])
		for j := 0; j < 8; j++ {
			b := byte(word >> (8 * j))
			if !member(t, b) {
				if i+j > n {
					return n
				}
				return i + j
			}
		}
	}
	return n
}

// scanFallback is identical to scanMiniBlock for the block loop, but falls
// back to a plain scalar loop for the remainder instead of re-testing a
// padded lane. Kept as a distinct code path per spec.md §4.2's requirement
// for at least a second, independently-implemented strategy to check
// equivalence against.
func scanFallback(buf []byte, t ClassTable) int {
	n := len(buf)
	full := n - (n % 8)
	i := 0
	for i < full {
		word := binary.LittleEndian.Uint64(buf[i : i+8])
		for j := 0; j < 8; j++ {
			b := byte(word >> (8 * j))
			if !member(t, b) {
				return i + j
			}
		}
		i += 8
	}
	return i + scalarCount(buf[i:], t)
}

// scanAligned runs a scalar prefix over the first 8 bytes of buf (alignment
// is counted from buf's start, not from the memory address), then 8-byte
// lanes, then a scalar suffix.
func scanAligned(buf []byte, t ClassTable) int {
	n := len(buf)
	const align = 8
	prefix := align
	if prefix > n {
		prefix = n
	}
	i := 0
	for ; i < prefix; i++ {
		if !member(t, buf[i]) {
			return i
		}
	}
	full := n - ((n - i) % 8)
	for i < full {
		word := binary.LittleEndian.Uint64(buf[i : i+8])
		for j := 0; j < 8; j++ {
			b := byte(word >> (8 * j))
			if !member(t, b) {
				return i + j
			}
		}
		i += 8
	}
	return i + scalarCount(buf[i:], t)
}

// Scan returns the count of leading bytes of buf that belong to the class
// described by t, or len(buf) if every byte matches.
func Scan(buf []byte, t ClassTable) int {
	switch Preferred {
	case StrategyAligned:
		return scanAligned(buf, t)
	case StrategyFallback:
		return scanFallback(buf, t)
	default:
		return scanMiniBlock(buf, t)
	}
}

// BuildClassTable constructs a ClassTable that matches exactly the bytes
// for which pred returns true, given a predicate over all 256 byte values.
//
// This is the shufti construction: each distinct member byte is given its
// own bit (0-7), OR'd into Low at its low nibble and into High at its high
// nibble. Since bit i only ever appears in Low[member_i.low] and
// High[member_i.high], the AND of a non-member's Low/High entries can never
// pick up a bit unless that exact (low, high) pair is itself a member - so
// there are no false positives. This only has 8 bits of room, which is
// exactly enough for delimiter-style classes (whitespace, `<`/`&`) but not
// for large classes like NameStartChar; those stay on charclass's
// range-table predicates. BuildClassTable panics if pred matches more than
// 8 distinct bytes.
func BuildClassTable(pred func(b byte) bool) ClassTable {
	var t ClassTable
	bit := byte(1)
	for b := 0; b < 256; b++ {
		if !pred(byte(b)) {
			continue
		}
		if bit == 0 {
			panic("simdscan: BuildClassTable class has more than 8 members")
		}
		t.Low[byte(b)&0xF] |= bit
		t.High[byte(b)>>4] |= bit
		bit <<= 1
	}
	return t
}
