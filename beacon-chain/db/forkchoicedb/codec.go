package forkchoicedb

import (
	"encoding/binary"

	"github.com/eth2-clients/lmd-ghost/beacon-chain/blockchain/forkchoice"
)

// This is a fixed-width encoding private to Store's BoltDB buckets. It is
// not a consensus wire format -- the spec is explicit that the fork-choice
// engine owns no on-disk format (spec.md §6) -- so it doesn't need the
// variable-length, merkleized SSZ encoding a real beacon block/state would
// use; a plain binary.BigEndian layout is all a demo persistence backend
// for forkchoice.Block/forkchoice.State needs.

const blockEncodedLen = 32 + 32 + 8

func encodeBlock(b *forkchoice.Block) []byte {
	buf := make([]byte, blockEncodedLen)
	copy(buf[0:32], b.ParentRoot[:])
	copy(buf[32:64], b.StateRoot[:])
	binary.BigEndian.PutUint64(buf[64:72], uint64(b.Slot))
	return buf
}

func decodeBlock(buf []byte) (*forkchoice.Block, error) {
	if len(buf) != blockEncodedLen {
		return nil, errInvalidBlockEncoding
	}
	b := &forkchoice.Block{}
	copy(b.ParentRoot[:], buf[0:32])
	copy(b.StateRoot[:], buf[32:64])
	b.Slot = forkchoice.Slot(binary.BigEndian.Uint64(buf[64:72]))
	return b, nil
}

const validatorEncodedLen = 8 + 8 + 8

func encodeState(s *forkchoice.State) []byte {
	buf := make([]byte, 4+len(s.Validators)*validatorEncodedLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(s.Validators)))
	for i, v := range s.Validators {
		off := 4 + i*validatorEncodedLen
		binary.BigEndian.PutUint64(buf[off:off+8], v.EffectiveBalance)
		binary.BigEndian.PutUint64(buf[off+8:off+16], v.ActivationEpoch)
		binary.BigEndian.PutUint64(buf[off+16:off+24], v.ExitEpoch)
	}
	return buf
}

func decodeState(buf []byte) (*forkchoice.State, error) {
	if len(buf) < 4 {
		return nil, errInvalidStateEncoding
	}
	count := int(binary.BigEndian.Uint32(buf[0:4]))
	want := 4 + count*validatorEncodedLen
	if len(buf) != want {
		return nil, errInvalidStateEncoding
	}
	s := &forkchoice.State{Validators: make([]*forkchoice.Validator, count)}
	for i := 0; i < count; i++ {
		off := 4 + i*validatorEncodedLen
		s.Validators[i] = &forkchoice.Validator{
			EffectiveBalance: binary.BigEndian.Uint64(buf[off : off+8]),
			ActivationEpoch:  binary.BigEndian.Uint64(buf[off+8 : off+16]),
			ExitEpoch:        binary.BigEndian.Uint64(buf[off+16 : off+24]),
		}
	}
	return s, nil
}
