package xfconfig

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/params"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")

	cfg := Defaults
	cfg.DataDir = "/var/lib/xfengine"
	cfg.Verbosity = 4
	cfg.Engine.Treasury = common.Address{0xaa}
	cfg.Engine.MinVotingPowerForProposal = 25_000
	cfg.Engine.FeeChangeCooldown = 3600

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DataDir != cfg.DataDir || got.Verbosity != cfg.Verbosity {
		t.Errorf("node settings: %+v", got)
	}
	if got.Engine.Treasury != cfg.Engine.Treasury {
		t.Errorf("treasury: want %v, got %v", cfg.Engine.Treasury, got.Engine.Treasury)
	}
	if got.Engine.MinVotingPowerForProposal != 25_000 {
		t.Errorf("proposal threshold: got %d", got.Engine.MinVotingPowerForProposal)
	}
	if got.Engine.FeeChangeCooldown != 3600 {
		t.Errorf("cooldown: got %d", got.Engine.FeeChangeCooldown)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("want error for missing file")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte("Bogus = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("want unknown-key error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad weight sum", func(c *Config) { c.Engine.TreasuryShareBps += 1 }, "sum to"},
		{"negative weight", func(c *Config) {
			c.Engine.YieldShareBps = -100
			c.Engine.TreasuryShareBps += 5100
		}, "negative"},
		{"zero chain id", func(c *Config) { c.Engine.ProofChainID = 0 }, "chain id"},
		{"verbosity out of range", func(c *Config) { c.Verbosity = 9 }, "verbosity"},
	}
	for _, tc := range cases {
		cfg := Defaults
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: want error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestThresholdScaling(t *testing.T) {
	cfg := Defaults
	cfg.Engine.MinVotingPowerForFeeChange = 3
	want := new(big.Int).Mul(big.NewInt(3), params.TokenScale)
	if got := cfg.MinFeeChangePower(); got.Cmp(want) != 0 {
		t.Errorf("fee change power: want %v, got %v", want, got)
	}
}

func TestApply(t *testing.T) {
	savedFee := params.MinVotingPowerForFeeChange
	savedProp := params.MinVotingPowerForProposal
	savedChain := params.ProofChainID
	defer func() {
		params.MinVotingPowerForFeeChange = savedFee
		params.MinVotingPowerForProposal = savedProp
		params.ProofChainID = savedChain
	}()

	cfg := Defaults
	cfg.Engine.MinVotingPowerForFeeChange = 7
	cfg.Engine.MinVotingPowerForProposal = 11
	cfg.Engine.ProofChainID = 424242
	cfg.Apply()

	if params.MinVotingPowerForFeeChange.Cmp(new(big.Int).Mul(big.NewInt(7), params.TokenScale)) != 0 {
		t.Errorf("fee change threshold: %v", params.MinVotingPowerForFeeChange)
	}
	if params.MinVotingPowerForProposal.Cmp(new(big.Int).Mul(big.NewInt(11), params.TokenScale)) != 0 {
		t.Errorf("proposal threshold: %v", params.MinVotingPowerForProposal)
	}
	if params.ProofChainID.Int64() != 424242 {
		t.Errorf("chain id: %v", params.ProofChainID)
	}
}
