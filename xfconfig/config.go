// Package xfconfig holds the engine's file configuration: share weights,
// governance thresholds, cooldowns, and node-level settings, loadable from
// and writable to TOML.
package xfconfig

import (
	"fmt"
	"math/big"
	"os"
	"reflect"

	"github.com/naoina/toml"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/params"
)

// Config is the TOML-mapped engine configuration.
type Config struct {
	// DataDir is the directory for the persistent state database. Empty
	// selects the in-memory store.
	DataDir string

	// Verbosity is the log level (0=error .. 4=trace).
	Verbosity int

	Engine EngineConfig
}

// EngineConfig carries the protocol parameters. The split weights are
// protocol constants surfaced here for operator visibility; Validate
// rejects a file whose weights disagree with a sane split.
type EngineConfig struct {
	// Revenue split weights in basis points. Must sum to 10000.
	YieldShareBps    int64
	BuybackShareBps  int64
	ReceiptShareBps  int64
	TreasuryShareBps int64

	// Treasury destination for revenue remainders and native revenue.
	Treasury common.Address

	// Governance thresholds in whole tokens.
	MinVotingPowerForFeeChange int64
	MinVotingPowerForProposal  int64

	// FeeChangeCooldown in seconds.
	FeeChangeCooldown uint64

	// ProofChainID domain-separates attestation signatures.
	ProofChainID int64
}

// Defaults mirrors the params package.
var Defaults = Config{
	Verbosity: 2,
	Engine: EngineConfig{
		YieldShareBps:              params.YieldShareBps,
		BuybackShareBps:            params.BuybackShareBps,
		ReceiptShareBps:            params.ReceiptShareBps,
		TreasuryShareBps:           params.TreasuryShareBps,
		Treasury:                   params.DefaultTreasuryAddress,
		MinVotingPowerForFeeChange: 1_000,
		MinVotingPowerForProposal:  10_000,
		FeeChangeCooldown:          params.FeeChangeCooldown,
		ProofChainID:               params.ProofChainID.Int64(),
	},
}

// tomlSettings customizes TOML decoding: field names keep their Go
// spelling, and unknown keys are reported instead of ignored.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// Load reads a TOML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := tomlSettings.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the config as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return tomlSettings.Marshal(&cfg)
}

// Save writes the config as TOML.
func Save(path string, cfg Config) error {
	out, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	e := &c.Engine
	sum := e.YieldShareBps + e.BuybackShareBps + e.ReceiptShareBps + e.TreasuryShareBps
	if sum != params.BpsDenominator {
		return fmt.Errorf("xfconfig: share weights sum to %d, want %d", sum, params.BpsDenominator)
	}
	for _, w := range []int64{e.YieldShareBps, e.BuybackShareBps, e.ReceiptShareBps, e.TreasuryShareBps} {
		if w < 0 {
			return fmt.Errorf("xfconfig: negative share weight %d", w)
		}
	}
	if e.ProofChainID <= 0 {
		return fmt.Errorf("xfconfig: proof chain id must be positive")
	}
	if c.Verbosity < 0 || c.Verbosity > 4 {
		return fmt.Errorf("xfconfig: verbosity %d out of range", c.Verbosity)
	}
	return nil
}

// MinFeeChangePower returns the fee change threshold in base units.
func (c *Config) MinFeeChangePower() *big.Int {
	return new(big.Int).Mul(big.NewInt(c.Engine.MinVotingPowerForFeeChange), params.TokenScale)
}

// MinProposalPower returns the proposal threshold in base units.
func (c *Config) MinProposalPower() *big.Int {
	return new(big.Int).Mul(big.NewInt(c.Engine.MinVotingPowerForProposal), params.TokenScale)
}

// Apply pushes the configurable thresholds into the params package. Called
// once at startup before any action executes.
func (c *Config) Apply() {
	params.MinVotingPowerForFeeChange = c.MinFeeChangePower()
	params.MinVotingPowerForProposal = c.MinProposalPower()
	params.ProofChainID = big.NewInt(c.Engine.ProofChainID)
}
