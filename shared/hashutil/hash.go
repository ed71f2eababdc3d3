package hashutil

import (
	"golang.org/x/crypto/sha3"
)

// Hash defines a function that returns the
// Keccak-256/SHA3 hash of the data passed in.
// https://github.com/ethereum/eth2.0-specs/blob/master/specs/core/0_beacon-chain.md#appendix
func Hash(data []byte) [32]byte {
	var hash [32]byte

	h := sha3.NewLegacyKeccak256()

	// The hash interface never returns an error, for that reason
	// we are not handling the error below. For reference, it is
	// stated here https://golang.org/pkg/hash/#Hash

	// #nosec G104
	h.Write(data)
	h.Sum(hash[:0])

	return hash
}

// RepeatHash applies the Keccak-256/SHA3 hash function repeatedly
// numTimes on a [32]byte array.
func RepeatHash(data [32]byte, numTimes uint64) [32]byte {
	if numTimes == 0 {
		return data
	}
	return RepeatHash(Hash(data[:]), numTimes-1)
}

// HashBlockFields derives a deterministic block root from the fields fork
// choice cares about: parent root, state root, and slot. It is not a
// consensus SSZ hash tree root (that lives in the block/state storage layer,
// out of scope here) -- it only needs to be collision-resistant and stable
// so the reference Reader implementation and its tests can name blocks.
func HashBlockFields(parentRoot [32]byte, stateRoot [32]byte, slot uint64) [32]byte {
	buf := make([]byte, 0, 32+32+8)
	buf = append(buf, parentRoot[:]...)
	buf = append(buf, stateRoot[:]...)
	for i := uint(0); i < 8; i++ {
		buf = append(buf, byte(slot>>(8*i)))
	}
	return Hash(buf)
}
