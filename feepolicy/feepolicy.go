// Package feepolicy implements the protocol fee switch: a Growth/Extraction
// mode pair, an enable flag, and a bounded custom fee escape hatch. Mode and
// custom-fee changes are governance gated and rate limited by a cooldown;
// flipping the enable flag is not.
package feepolicy

import (
	"errors"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

// Mode selects the active fee schedule.
type Mode uint8

const (
	// ModeGrowth charges the low bootstrap fee.
	ModeGrowth Mode = iota
	// ModeExtraction charges the full protocol fee.
	ModeExtraction
)

func (m Mode) String() string {
	switch m {
	case ModeGrowth:
		return "growth"
	case ModeExtraction:
		return "extraction"
	}
	return "unknown"
}

// ParseMode converts a mode name to its value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "growth":
		return ModeGrowth, nil
	case "extraction":
		return ModeExtraction, nil
	}
	return 0, ErrBadMode
}

var (
	// ErrUnauthorized is returned when the caller is neither owner nor
	// holds the minimum voting power.
	ErrUnauthorized = errors.New("feepolicy: unauthorized")

	// ErrCooldownActive is returned when a mode or fee change lands inside
	// the cooldown window.
	ErrCooldownActive = errors.New("feepolicy: cooldown active")

	// ErrFeeTooHigh is returned when a custom fee exceeds the maximum.
	ErrFeeTooHigh = errors.New("feepolicy: fee too high")

	// ErrZeroFee is returned when a custom fee is zero.
	ErrZeroFee = errors.New("feepolicy: fee must be greater than 0")

	// ErrNotOwner is returned on owner-only operations.
	ErrNotOwner = errors.New("feepolicy: caller is not the owner")

	// ErrBadMode is returned for an unknown mode name.
	ErrBadMode = errors.New("feepolicy: unknown fee mode")
)

func slot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("feepolicy\x00"), field...)))
}

func getUint(db vm.StateDB, field string) uint64 {
	return db.GetState(params.FeePolicyAddress, slot(field)).Big().Uint64()
}

func setUint(db vm.StateDB, field string, v uint64) {
	db.SetState(params.FeePolicyAddress, slot(field), common.BigToHash(new(big.Int).SetUint64(v)))
}

func getOwner(db vm.StateDB) common.Address {
	return common.BytesToAddress(db.GetState(params.FeePolicyAddress, slot("owner")).Bytes())
}

type feeEvent struct {
	Mode    string `json:"mode,omitempty"`
	FeeBps  uint64 `json:"fee_bps"`
	Enabled bool   `json:"enabled"`
}

// Initialize records the owner and starts enabled in Growth mode.
func Initialize(db vm.StateDB, owner common.Address) {
	db.SetState(params.FeePolicyAddress, slot("owner"), common.BytesToHash(owner.Bytes()))
	setUint(db, "enabled", 1)
	setUint(db, "mode", uint64(ModeGrowth))
	setUint(db, "feeBps", params.GrowthFeeBps)
	setUint(db, "minVotingPower", 0) // 0 means the params default
}

// minVotingPower returns the governance threshold for fee changes.
func minVotingPower(db vm.StateDB) *big.Int {
	if v := db.GetState(params.FeePolicyAddress, slot("minVotingPower")).Big(); v.Sign() > 0 {
		return v
	}
	return params.MinVotingPowerForFeeChange
}

// authorize passes for the owner or any account whose escrow voting power
// meets the minimum.
func authorize(db vm.StateDB, caller common.Address, now uint64) error {
	if caller == getOwner(db) {
		return nil
	}
	if escrow.VotingPower(db, caller, now).Cmp(minVotingPower(db)) >= 0 {
		return nil
	}
	return ErrUnauthorized
}

// SetFeesEnabled flips fee collection on or off. Not subject to the
// cooldown.
func SetFeesEnabled(db vm.StateDB, caller common.Address, enabled bool, now uint64) error {
	if err := authorize(db, caller, now); err != nil {
		return err
	}
	v := uint64(0)
	if enabled {
		v = 1
	}
	setUint(db, "enabled", v)
	sysaction.EmitLog(db, params.FeePolicyAddress, "FeesEnabledChanged", now, feeEvent{
		FeeBps: getUint(db, "feeBps"), Enabled: enabled,
	})
	return nil
}

// SetFeeMode switches between Growth and Extraction. Cooldown gated.
func SetFeeMode(db vm.StateDB, caller common.Address, mode Mode, now uint64) error {
	if err := authorize(db, caller, now); err != nil {
		return err
	}
	if mode != ModeGrowth && mode != ModeExtraction {
		return ErrBadMode
	}
	if err := checkCooldown(db, now); err != nil {
		return err
	}
	bps := uint64(params.GrowthFeeBps)
	if mode == ModeExtraction {
		bps = params.ExtractionFeeBps
	}
	setUint(db, "mode", uint64(mode))
	setUint(db, "feeBps", bps)
	setUint(db, "lastChange", now)

	sysaction.EmitLog(db, params.FeePolicyAddress, "FeeModeChanged", now, feeEvent{
		Mode: mode.String(), FeeBps: bps, Enabled: IsFeesEnabled(db),
	})
	return nil
}

// SetCustomFee overrides the mode fee with an arbitrary bounded value.
// Cooldown gated.
func SetCustomFee(db vm.StateDB, caller common.Address, bps uint64, now uint64) error {
	if err := authorize(db, caller, now); err != nil {
		return err
	}
	if bps == 0 {
		return ErrZeroFee
	}
	if bps > params.MaxFeeBps {
		return ErrFeeTooHigh
	}
	if err := checkCooldown(db, now); err != nil {
		return err
	}
	setUint(db, "feeBps", bps)
	setUint(db, "lastChange", now)

	sysaction.EmitLog(db, params.FeePolicyAddress, "CustomFeeSet", now, feeEvent{
		FeeBps: bps, Enabled: IsFeesEnabled(db),
	})
	return nil
}

// SetMinVotingPower changes the governance threshold for fee changes.
// Owner only.
func SetMinVotingPower(db vm.StateDB, caller common.Address, min *big.Int) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	db.SetState(params.FeePolicyAddress, slot("minVotingPower"), common.BigToHash(min))
	return nil
}

func checkCooldown(db vm.StateDB, now uint64) error {
	last := getUint(db, "lastChange")
	if last != 0 && now < last+params.FeeChangeCooldown {
		return ErrCooldownActive
	}
	return nil
}

// GetFeeMode returns the active mode.
func GetFeeMode(db vm.StateDB) Mode {
	return Mode(getUint(db, "mode"))
}

// IsFeesEnabled reports whether fees are collected.
func IsFeesEnabled(db vm.StateDB) bool {
	return getUint(db, "enabled") != 0
}

// GetFeeMultiplier returns the active fee in basis points, zero when fees
// are disabled.
func GetFeeMultiplier(db vm.StateDB) uint64 {
	if !IsFeesEnabled(db) {
		return 0
	}
	return getUint(db, "feeBps")
}

// GetEffectiveFee applies the active fee to a base amount. Zero when fees
// are disabled.
func GetEffectiveFee(db vm.StateDB, base *big.Int) *big.Int {
	bps := GetFeeMultiplier(db)
	if bps == 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(base, new(big.Int).SetUint64(bps))
	return fee.Div(fee, big.NewInt(params.BpsDenominator))
}

// IsCooldownActive reports whether a mode or fee change is still blocked.
func IsCooldownActive(db vm.StateDB, now uint64) bool {
	last := getUint(db, "lastChange")
	return last != 0 && now < last+params.FeeChangeCooldown
}

// GetCooldownTimeRemaining returns the seconds until the next change is
// allowed, zero when the cooldown has passed.
func GetCooldownTimeRemaining(db vm.StateDB, now uint64) uint64 {
	last := getUint(db, "lastChange")
	if last == 0 || now >= last+params.FeeChangeCooldown {
		return 0
	}
	return last + params.FeeChangeCooldown - now
}
