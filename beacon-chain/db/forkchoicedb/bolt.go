package forkchoicedb

import (
	"context"

	"github.com/dgraph-io/ristretto"
	"github.com/eth2-clients/lmd-ghost/beacon-chain/blockchain/forkchoice"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	blocksBucket = []byte("blocks")
	statesBucket = []byte("states")

	errInvalidBlockEncoding = errors.New("could not decode block record")
	errInvalidStateEncoding = errors.New("could not decode state record")
)

// Store is a forkchoice.Reader backed by BoltDB, grounded on
// beacon-chain/db/kv.Store: a bolt.DB handle plus a ristretto read cache in
// front of it so a find_head walk doesn't pay a disk read for every block
// it revisits. State reads always go to BoltDB; they are not cached.
type Store struct {
	db         *bolt.DB
	blockCache *ristretto.Cache
}

// blockCacheCost bounds the read cache. Every cached block is set with a
// cost of 1, so this caps the cache at 2^21 block records.
const blockCacheCost = 1 << 21

// NewStore opens (creating if necessary) a BoltDB file at path and prepares
// its buckets.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not open bolt database")
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(blocksBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(statesBucket)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "could not initialize bolt buckets")
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000,
		MaxCost:     blockCacheCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not initialize block cache")
	}

	return &Store{db: db, blockCache: cache}, nil
}

// Close releases the underlying BoltDB handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBlock persists block under root and primes the read cache.
func (s *Store) SaveBlock(root forkchoice.BlockRoot, block *forkchoice.Block) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blocksBucket).Put(root[:], encodeBlock(block))
	}); err != nil {
		return errors.Wrapf(err, "could not save block %s", root)
	}
	s.blockCache.Set(root, block, 1)
	return nil
}

// SaveState persists state under stateRoot.
func (s *Store) SaveState(stateRoot [32]byte, state *forkchoice.State) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(statesBucket).Put(stateRoot[:], encodeState(state))
	}); err != nil {
		return errors.Wrapf(err, "could not save state %x", stateRoot)
	}
	return nil
}

// Block implements forkchoice.Reader.
func (s *Store) Block(_ context.Context, root forkchoice.BlockRoot) (*forkchoice.Block, error) {
	if cached, ok := s.blockCache.Get(root); ok {
		return cached.(*forkchoice.Block), nil
	}

	var block *forkchoice.Block
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(blocksBucket).Get(root[:])
		if raw == nil {
			return nil
		}
		decoded, err := decodeBlock(raw)
		if err != nil {
			return err
		}
		block = decoded
		return nil
	})
	if err != nil {
		if err == errInvalidBlockEncoding {
			return nil, forkchoice.InvalidBlock(root)
		}
		return nil, forkchoice.StorageError(errors.Wrapf(err, "could not read block %s", root).Error())
	}
	if block == nil {
		return nil, forkchoice.MissingBlock(root)
	}
	s.blockCache.Set(root, block, 1)
	return block, nil
}

// State implements forkchoice.Reader.
func (s *Store) State(_ context.Context, stateRoot [32]byte) (*forkchoice.State, error) {
	var state *forkchoice.State
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(statesBucket).Get(stateRoot[:])
		if raw == nil {
			return nil
		}
		decoded, err := decodeState(raw)
		if err != nil {
			return err
		}
		state = decoded
		return nil
	})
	if err != nil {
		if err == errInvalidStateEncoding {
			return nil, forkchoice.InvalidState(stateRoot)
		}
		return nil, forkchoice.StorageError(errors.Wrapf(err, "could not read state %x", stateRoot).Error())
	}
	if state == nil {
		return nil, forkchoice.MissingState(stateRoot)
	}
	return state, nil
}

// AncestorAtSlot implements forkchoice.Reader by walking parent pointers
// until it finds a block whose own slot is <= slot.
func (s *Store) AncestorAtSlot(ctx context.Context, root forkchoice.BlockRoot, slot forkchoice.Slot) (forkchoice.BlockRoot, forkchoice.Slot, error) {
	current := root
	for {
		block, err := s.Block(ctx, current)
		if err != nil {
			return forkchoice.BlockRoot{}, 0, err
		}
		if block.Slot <= slot {
			return current, block.Slot, nil
		}
		current = block.ParentRoot
	}
}
