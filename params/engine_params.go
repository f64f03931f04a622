package params

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
)

// Engine system addresses: fixed, well-known addresses under which each
// component keeps its storage slots and token balance.
var (
	// SystemActionAddress is the sentinel To-address for engine action
	// messages. Data sent to this address carries a JSON-encoded SysAction
	// and is dispatched to the component handlers.
	SystemActionAddress = common.HexToAddress("0x0000000000000000000000000000000058463031") // "XF01"

	// EscrowAddress holds locked principal and the vote-escrow ledger slots.
	EscrowAddress = common.HexToAddress("0x0000000000000000000000000000000058463032") // "XF02"

	// ReceiptAddress holds the rXF receipt ledger slots and the redeemable
	// token reserve backing outstanding receipts.
	ReceiptAddress = common.HexToAddress("0x0000000000000000000000000000000058463033") // "XF03"

	// BuybackAddress accumulates the buyback share of revenue events.
	BuybackAddress = common.HexToAddress("0x0000000000000000000000000000000058463034") // "XF04"

	// RevenueAddress is the splitter's intake account; funds only pass
	// through it within a single split event.
	RevenueAddress = common.HexToAddress("0x0000000000000000000000000000000058463035") // "XF05"

	// FeePolicyAddress holds the fee switch state machine slots.
	FeePolicyAddress = common.HexToAddress("0x0000000000000000000000000000000058463036") // "XF06"

	// ProofRegistryAddress holds consumed proof markers and cumulative
	// attested earnings.
	ProofRegistryAddress = common.HexToAddress("0x0000000000000000000000000000000058463037") // "XF07"

	// TreasuryGovernorAddress holds vault balances and proposal slots.
	TreasuryGovernorAddress = common.HexToAddress("0x0000000000000000000000000000000058463038") // "XF08"

	// DefaultTreasuryAddress receives the treasury share of revenue events
	// until the splitter is reconfigured.
	DefaultTreasuryAddress = common.HexToAddress("0x0000000000000000000000000000000058463039") // "XF09"
)

// TokenScale is the number of base units per whole token (18 decimals).
var TokenScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// BpsDenominator is the basis-point denominator used by every percentage in
// the engine.
const BpsDenominator = 10_000

// Vote-escrow parameters.
const (
	// MinLockDuration is the shortest accepted lock (1 week).
	MinLockDuration = 7 * 24 * 3600

	// MaxLockDuration is the longest accepted lock (4 years). A max-duration
	// lock earns the full 4x escrow multiplier.
	MaxLockDuration = 4 * 365 * 24 * 3600

	// BaseEscrowMultiplierBps is the voting-power multiplier floor (1x).
	BaseEscrowMultiplierBps = 10_000

	// BonusEscrowMultiplierBps is the extra multiplier earned linearly with
	// remaining lock fraction (up to +3x, for 4x total at max duration).
	BonusEscrowMultiplierBps = 30_000
)

// Revenue split weights. The treasury share is always computed as the exact
// remainder so the four shares sum to the split amount.
const (
	YieldShareBps    = 5_000
	BuybackShareBps  = 2_500
	ReceiptShareBps  = 1_500
	TreasuryShareBps = 1_000
)

// YieldPrecision is the fixed-point scale for the yield-per-unit accumulator.
var YieldPrecision = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Receipt token parameters.
const (
	// DefaultRedemptionPeriod applies when a mint passes a zero period.
	DefaultRedemptionPeriod = 365 * 24 * 3600

	// MinRedemptionPeriod bounds custom redemption periods from below.
	MinRedemptionPeriod = 30 * 24 * 3600

	// MaxRedemptionPeriod bounds custom redemption periods from above.
	MaxRedemptionPeriod = MaxLockDuration

	// ReceiptBoostWeight is the fixed weight of receipt balance in boosted
	// voting power.
	ReceiptBoostWeight = 4
)

// Fee policy parameters.
const (
	// GrowthFeeBps is the fee applied in Growth mode (0.1%).
	GrowthFeeBps = 10

	// ExtractionFeeBps is the fee applied in Extraction mode (1.0%).
	ExtractionFeeBps = 100

	// MaxFeeBps is the hard ceiling for custom fees (10%).
	MaxFeeBps = 1_000

	// FeeChangeCooldown is the minimum time between governance-gated fee
	// changes.
	FeeChangeCooldown = 7 * 24 * 3600
)

// MinVotingPowerForFeeChange is the voting power that lets a non-owner
// account flip fee policy. Default: 1,000 tokens.
var MinVotingPowerForFeeChange = new(big.Int).Mul(big.NewInt(1_000), TokenScale)

// Earnings proof parameters.
var (
	// ProofChainID domain-separates proof signatures between deployments.
	ProofChainID = big.NewInt(361)

	// TierOneEarnings .. TierThreeEarnings are the cumulative attested
	// earnings thresholds unlocking each permanent multiplier tier.
	TierOneEarnings   = new(big.Int).Mul(big.NewInt(10_000), TokenScale)
	TierTwoEarnings   = new(big.Int).Mul(big.NewInt(50_000), TokenScale)
	TierThreeEarnings = new(big.Int).Mul(big.NewInt(100_000), TokenScale)
)

// Permanent multiplier tiers in basis points.
const (
	TierBaseMultiplierBps  = 10_000 // 1x, below tier one
	TierOneMultiplierBps   = 15_000 // 1.5x
	TierTwoMultiplierBps   = 20_000 // 2x
	TierThreeMultiplierBps = 30_000 // 3x
)

// Treasury governor parameters.
const (
	// VotingPeriod is the proposal voting window.
	VotingPeriod = 7 * 24 * 3600

	// QuorumBps is the fraction of total voting-power supply that must vote
	// for a proposal to be executable (10%).
	QuorumBps = 1_000
)

// MinVotingPowerForProposal gates proposal creation. Default: 10,000 tokens.
var MinVotingPowerForProposal = new(big.Int).Mul(big.NewInt(10_000), TokenScale)
