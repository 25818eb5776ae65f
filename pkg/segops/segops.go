// Package segops supplies ready-made operation closures for the domain
// values a segment is actually likely to move across the stack: 256-bit
// scalars and the hashes built from them. Each function here returns a
// plain Go func with the exact arity/shape Op0..Op3 expect, so a client
// can drop one straight into an append call without hand-writing the
// wrapper every time.
//
// The scalar type is github.com/holiman/uint256.Int, the same 256-bit
// integer the teacher's EVM interpreter uses for stack words — it is
// pointer-free (four fixed uint64 limbs) and so round-trips through
// RawStack natively rather than being boxed. Hashing is
// golang.org/x/crypto/sha3 (Keccak-256, matching the teacher's EVM
// precompile/opcode hashing) and golang.org/x/crypto/ripemd160.
package segops

import (
	"errors"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

var errDivisionByZero = errors.New("segops: division by zero")

// Uint256Add returns an operation closure computing a + b with 256-bit
// wraparound, mirroring the EVM ADD opcode's semantics.
func Uint256Add() func(a, b uint256.Int) uint256.Int {
	return func(a, b uint256.Int) uint256.Int {
		var r uint256.Int
		r.Add(&a, &b)
		return r
	}
}

// Uint256Sub returns an operation closure computing a - b with 256-bit
// wraparound.
func Uint256Sub() func(a, b uint256.Int) uint256.Int {
	return func(a, b uint256.Int) uint256.Int {
		var r uint256.Int
		r.Sub(&a, &b)
		return r
	}
}

// Uint256Mul returns an operation closure computing a * b with 256-bit
// wraparound.
func Uint256Mul() func(a, b uint256.Int) uint256.Int {
	return func(a, b uint256.Int) uint256.Int {
		var r uint256.Int
		r.Mul(&a, &b)
		return r
	}
}

// Uint256Div returns a fallible operation closure computing a / b,
// reporting an error on division by zero rather than silently returning
// zero the way the EVM's DIV opcode does — a segment's Op2r is the right
// place to surface that as a catchable failure instead.
func Uint256Div() func(a, b uint256.Int) (uint256.Int, error) {
	return func(a, b uint256.Int) (uint256.Int, error) {
		if b.IsZero() {
			return uint256.Int{}, errDivisionByZero
		}
		var r uint256.Int
		r.Div(&a, &b)
		return r, nil
	}
}

// Uint256FromUint64 returns an operation closure lifting a plain uint64
// onto the stack as a uint256.Int, the usual way a small literal enters
// a segment that otherwise operates on 256-bit scalars.
func Uint256FromUint64(v uint64) func() uint256.Int {
	return func() uint256.Int { return *uint256.NewInt(v) }
}

// Keccak256 returns an operation closure hashing a byte string with
// Keccak-256, returning the digest as a fixed-size array so it stays
// pointer-free on the stack.
func Keccak256() func(data []byte) [32]byte {
	return func(data []byte) [32]byte {
		h := sha3.NewLegacyKeccak256()
		h.Write(data)
		var out [32]byte
		h.Sum(out[:0])
		return out
	}
}

// Ripemd160 returns an operation closure hashing a byte string with
// RIPEMD-160, left-padded to 32 bytes the way the EVM's precompile at
// address 0x03 returns it.
func Ripemd160() func(data []byte) [32]byte {
	return func(data []byte) [32]byte {
		h := ripemd160.New()
		h.Write(data)
		sum := h.Sum(nil)
		var out [32]byte
		copy(out[32-len(sum):], sum)
		return out
	}
}
