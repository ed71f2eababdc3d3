// Package params defines the consensus constants the fork-choice engine
// needs from the wider beacon-chain specification.
//
// It keeps the singleton-config idiom this codebase has used for its chain
// parameters since the sharding prototype: a package-level default instance
// returned by BeaconConfig, overridable for tests via OverrideBeaconConfig
// or one of the UseXConfig helpers.
package params

import "sync"

// Config holds the subset of the beacon-chain spec constants that the
// fork-choice engine's vote tally and epoch arithmetic depend on.
type Config struct {
	GenesisSlot      uint64 // GenesisSlot is the first slot of the chain.
	SlotsPerEpoch    uint64 // SlotsPerEpoch is the number of slots in an epoch (EPOCH_LENGTH).
	MaxDepositAmount uint64 // MaxDepositAmount caps effective balance for voting weight, in Gwei.
	BalanceIncrement uint64 // BalanceIncrement is the divisor turning a balance into whole units of weight.
}

var mainnetConfig = &Config{
	GenesisSlot:      0,
	SlotsPerEpoch:    64,
	MaxDepositAmount: 32 * 1e9,
	BalanceIncrement: 1e9,
}

// minimalConfig shrinks the epoch length for fast-running tests.
var minimalConfig = &Config{
	GenesisSlot:      0,
	SlotsPerEpoch:    8,
	MaxDepositAmount: 32 * 1e9,
	BalanceIncrement: 1e9,
}

var (
	lock         sync.RWMutex
	activeConfig = mainnetConfig
)

// BeaconConfig returns a copy of the current active chain config.
func BeaconConfig() *Config {
	lock.RLock()
	defer lock.RUnlock()
	c := *activeConfig
	return &c
}

// OverrideBeaconConfig swaps the active config wholesale. Call this after
// mutating a config obtained from BeaconConfig so the change is visible to
// every reader, the same way the rest of this codebase's params packages
// require a deliberate override rather than in-place mutation of the
// package-level default.
func OverrideBeaconConfig(c *Config) {
	lock.Lock()
	defer lock.Unlock()
	activeConfig = c
}

// UseMinimalConfig switches to a shrunk epoch length for fast unit tests.
func UseMinimalConfig() {
	OverrideBeaconConfig(minimalConfig)
}

// UseMainnetConfig restores the production chain constants.
func UseMainnetConfig() {
	OverrideBeaconConfig(mainnetConfig)
}

// EpochOfSlot returns the epoch containing the given slot, per
// epoch = slot / SlotsPerEpoch.
func (c *Config) EpochOfSlot(slot uint64) uint64 {
	return slot / c.SlotsPerEpoch
}

// StartSlot returns the first slot of the given epoch.
func (c *Config) StartSlot(epoch uint64) uint64 {
	return epoch * c.SlotsPerEpoch
}

// Weight converts an effective balance into fork-choice voting weight:
// min(balance, MaxDepositAmount) / BalanceIncrement.
func (c *Config) Weight(effectiveBalance uint64) uint64 {
	balance := effectiveBalance
	if balance > c.MaxDepositAmount {
		balance = c.MaxDepositAmount
	}
	return balance / c.BalanceIncrement
}
