// Package buyback accumulates the buyback share of protocol revenue and
// tracks the token amounts swapped and burned against it. Swaps execute off
// the engine through a configured venue; the accumulator holds funds until
// then and records the results.
package buyback

import (
	"errors"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

var (
	// ErrZeroAmount is returned when an amount must be greater than zero.
	ErrZeroAmount = errors.New("buyback: amount must be greater than 0")

	// ErrUnauthorized is returned when receiveRevenue is called by an
	// account that is neither owner nor the registered splitter.
	ErrUnauthorized = errors.New("buyback: unauthorized")

	// ErrNotOwner is returned on owner-only operations.
	ErrNotOwner = errors.New("buyback: caller is not the owner")

	// ErrInsufficient is returned when the accumulator balance cannot cover
	// a withdrawal or recorded swap.
	ErrInsufficient = errors.New("buyback: insufficient balance")

	// ErrZeroAddress is returned when a setter receives the zero address.
	ErrZeroAddress = errors.New("buyback: zero address")
)

func slot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("buyback\x00"), field...)))
}

func getBig(db vm.StateDB, field string) *big.Int {
	return db.GetState(params.BuybackAddress, slot(field)).Big()
}

func setBig(db vm.StateDB, field string, v *big.Int) {
	db.SetState(params.BuybackAddress, slot(field), common.BigToHash(v))
}

func getAddr(db vm.StateDB, field string) common.Address {
	return common.BytesToAddress(db.GetState(params.BuybackAddress, slot(field)).Bytes())
}

func setAddr(db vm.StateDB, field string, addr common.Address) {
	db.SetState(params.BuybackAddress, slot(field), common.BytesToHash(addr.Bytes()))
}

type revenueEvent struct {
	From   common.Address `json:"from"`
	Amount string         `json:"amount"`
}

type buybackEvent struct {
	Spent  string `json:"spent"`
	Burned string `json:"burned"`
}

// Initialize records the accumulator owner and registers the revenue
// splitter as the authorized revenue source.
func Initialize(db vm.StateDB, owner common.Address) {
	setAddr(db, "owner", owner)
	setAddr(db, "splitter", params.RevenueAddress)
}

// ReceiveRevenue moves revenue from the caller into the accumulator. Only
// the owner and the registered splitter may call it. Funds are held until a
// buyback is recorded; an unset swap venue only delays the burn.
func ReceiveRevenue(db vm.StateDB, caller common.Address, amount *big.Int, now uint64) error {
	if caller != getAddr(db, "owner") && caller != getAddr(db, "splitter") {
		return ErrUnauthorized
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(caller).Cmp(amount) < 0 {
		return ErrInsufficient
	}
	db.SubBalance(caller, amount)
	db.AddBalance(params.BuybackAddress, amount)
	setBig(db, "totalReceived", new(big.Int).Add(getBig(db, "totalReceived"), amount))

	sysaction.EmitLog(db, params.BuybackAddress, "RevenueReceived", now, revenueEvent{
		From: caller, Amount: amount.String(),
	})
	return nil
}

// RecordBuyback books a completed swap-and-burn: spent revenue leaves the
// accumulator and the bought tokens are destroyed. Owner only.
func RecordBuyback(db vm.StateDB, caller common.Address, spent, burned *big.Int, now uint64) error {
	if caller != getAddr(db, "owner") {
		return ErrNotOwner
	}
	if burned == nil || burned.Sign() <= 0 {
		return ErrZeroAmount
	}
	if spent == nil {
		spent = new(big.Int)
	}
	if spent.Sign() > 0 {
		if db.GetBalance(params.BuybackAddress).Cmp(spent) < 0 {
			return ErrInsufficient
		}
		db.SubBalance(params.BuybackAddress, spent)
		setBig(db, "totalSwapped", new(big.Int).Add(getBig(db, "totalSwapped"), spent))
	}
	setBig(db, "totalBurned", new(big.Int).Add(getBig(db, "totalBurned"), burned))

	sysaction.EmitLog(db, params.BuybackAddress, "BuybackExecuted", now, buybackEvent{
		Spent: spent.String(), Burned: burned.String(),
	})
	return nil
}

// EmergencyWithdraw drains funds from the accumulator. Owner only.
func EmergencyWithdraw(db vm.StateDB, caller, to common.Address, amount *big.Int) error {
	if caller != getAddr(db, "owner") {
		return ErrNotOwner
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(params.BuybackAddress).Cmp(amount) < 0 {
		return ErrInsufficient
	}
	db.SubBalance(params.BuybackAddress, amount)
	db.AddBalance(to, amount)
	return nil
}

// SetSwapVenue records the venue used to swap accumulated revenue. Owner
// only. May stay unset; ReceiveRevenue does not depend on it.
func SetSwapVenue(db vm.StateDB, caller, venue common.Address) error {
	if caller != getAddr(db, "owner") {
		return ErrNotOwner
	}
	setAddr(db, "swapVenue", venue)
	return nil
}

// SetSplitter changes the authorized revenue source. Owner only.
func SetSplitter(db vm.StateDB, caller, splitter common.Address) error {
	if caller != getAddr(db, "owner") {
		return ErrNotOwner
	}
	if splitter == (common.Address{}) {
		return ErrZeroAddress
	}
	setAddr(db, "splitter", splitter)
	return nil
}

// SwapVenue returns the configured swap venue, zero when unset.
func SwapVenue(db vm.StateDB) common.Address {
	return getAddr(db, "swapVenue")
}

// TotalReceived returns cumulative revenue received.
func TotalReceived(db vm.StateDB) *big.Int {
	return getBig(db, "totalReceived")
}

// TotalSwapped returns cumulative revenue spent on buybacks.
func TotalSwapped(db vm.StateDB) *big.Int {
	return getBig(db, "totalSwapped")
}

// TotalBurned returns cumulative tokens burned.
func TotalBurned(db vm.StateDB) *big.Int {
	return getBig(db, "totalBurned")
}

// Balance returns the revenue currently held by the accumulator.
func Balance(db vm.StateDB) *big.Int {
	return db.GetBalance(params.BuybackAddress)
}
