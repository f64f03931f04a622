// Package revenue splits each protocol revenue event across the escrow
// yield pool, the buyback accumulator, receipt minting and the treasury.
// The four shares always sum exactly to the event amount; the treasury
// absorbs the integer-division remainder. The split runs inside one action
// snapshot, so a failure in any leg rolls back the whole event.
package revenue

import (
	"errors"
	"math/big"

	"github.com/xfuel-network/xfengine/buyback"
	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/receipt"
	"github.com/xfuel-network/xfengine/sysaction"
)

var (
	// ErrZeroAmount is returned when an amount must be greater than zero.
	ErrZeroAmount = errors.New("revenue: amount must be greater than 0")

	// ErrInsufficient is returned when the caller's balance cannot cover
	// the revenue amount.
	ErrInsufficient = errors.New("revenue: insufficient balance")

	// ErrNotOwner is returned on owner-only operations.
	ErrNotOwner = errors.New("revenue: caller is not the owner")

	// ErrZeroAddress is returned when a setter receives the zero address.
	ErrZeroAddress = errors.New("revenue: zero address")
)

func slot(field string) common.Hash {
	return common.BytesToHash(crypto.Keccak256(append([]byte("revenue\x00"), field...)))
}

func getBig(db vm.StateDB, field string) *big.Int {
	return db.GetState(params.RevenueAddress, slot(field)).Big()
}

func setBig(db vm.StateDB, field string, v *big.Int) {
	db.SetState(params.RevenueAddress, slot(field), common.BigToHash(v))
}

func addBig(db vm.StateDB, field string, delta *big.Int) {
	setBig(db, field, new(big.Int).Add(getBig(db, field), delta))
}

func getAddr(db vm.StateDB, field string) common.Address {
	return common.BytesToAddress(db.GetState(params.RevenueAddress, slot(field)).Bytes())
}

func setAddr(db vm.StateDB, field string, addr common.Address) {
	db.SetState(params.RevenueAddress, slot(field), common.BytesToHash(addr.Bytes()))
}

type splitEvent struct {
	From     common.Address `json:"from"`
	Amount   string         `json:"amount"`
	Yield    string         `json:"yield"`
	Buyback  string         `json:"buyback"`
	Receipts string         `json:"receipts"`
	Treasury string         `json:"treasury"`
}

type nativeEvent struct {
	From   common.Address `json:"from"`
	Amount string         `json:"amount"`
}

// Initialize records the splitter owner and the default treasury address.
func Initialize(db vm.StateDB, owner common.Address) {
	setAddr(db, "owner", owner)
	setAddr(db, "treasury", params.DefaultTreasuryAddress)
}

// CalculateSplits returns the four shares of amount. The treasury share is
// the exact remainder, never the rounded weight, so the shares always sum
// to amount.
func CalculateSplits(amount *big.Int) (yield, buybackShare, receipts, treasury *big.Int) {
	denom := big.NewInt(params.BpsDenominator)
	yield = new(big.Int).Mul(amount, big.NewInt(params.YieldShareBps))
	yield.Div(yield, denom)
	buybackShare = new(big.Int).Mul(amount, big.NewInt(params.BuybackShareBps))
	buybackShare.Div(buybackShare, denom)
	receipts = new(big.Int).Mul(amount, big.NewInt(params.ReceiptShareBps))
	receipts.Div(receipts, denom)
	treasury = new(big.Int).Sub(amount, yield)
	treasury.Sub(treasury, buybackShare)
	treasury.Sub(treasury, receipts)
	return yield, buybackShare, receipts, treasury
}

// SplitRevenue debits the caller and routes the four shares: yield into the
// escrow yield pool, the buyback share into the accumulator, receipts
// minted to the caller backed by reserve funding, and the remainder to the
// treasury. Runs inside the caller's action snapshot; any leg failing rolls
// back all of them.
func SplitRevenue(db vm.StateDB, from common.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}
	yield, buybackShare, receipts, treasury := CalculateSplits(amount)

	db.SubBalance(from, amount)
	db.AddBalance(params.RevenueAddress, amount)

	if yield.Sign() > 0 {
		if err := escrow.DistributeYield(db, params.RevenueAddress, yield, now); err != nil {
			return err
		}
	}
	if buybackShare.Sign() > 0 {
		if err := buyback.ReceiveRevenue(db, params.RevenueAddress, buybackShare, now); err != nil {
			return err
		}
	}
	if receipts.Sign() > 0 {
		db.SubBalance(params.RevenueAddress, receipts)
		db.AddBalance(params.ReceiptAddress, receipts)
		if err := receipt.Mint(db, params.RevenueAddress, from, receipts, 0, false, now); err != nil {
			return err
		}
	}
	if treasury.Sign() > 0 {
		db.SubBalance(params.RevenueAddress, treasury)
		db.AddBalance(getAddr(db, "treasury"), treasury)
	}

	addBig(db, "totalSplit", amount)
	addBig(db, "totalToYield", yield)
	addBig(db, "totalToBuyback", buybackShare)
	addBig(db, "totalToReceipts", receipts)
	addBig(db, "totalToTreasury", treasury)

	sysaction.EmitLog(db, params.RevenueAddress, "RevenueSplit", now, splitEvent{
		From: from, Amount: amount.String(),
		Yield: yield.String(), Buyback: buybackShare.String(),
		Receipts: receipts.String(), Treasury: treasury.String(),
	})
	log.Debug("revenue: split", "from", from, "amount", amount,
		"yield", yield, "buyback", buybackShare, "receipts", receipts, "treasury", treasury)
	return nil
}

// SplitRevenueNative routes a native-asset revenue event straight to the
// treasury.
func SplitRevenueNative(db vm.StateDB, from common.Address, amount *big.Int, now uint64) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if db.GetBalance(from).Cmp(amount) < 0 {
		return ErrInsufficient
	}
	db.SubBalance(from, amount)
	db.AddBalance(getAddr(db, "treasury"), amount)
	addBig(db, "totalNative", amount)

	sysaction.EmitLog(db, params.RevenueAddress, "NativeRevenueSplit", now, nativeEvent{
		From: from, Amount: amount.String(),
	})
	return nil
}

// SetTreasury changes the treasury destination. Owner only.
func SetTreasury(db vm.StateDB, caller, treasury common.Address) error {
	if caller != getAddr(db, "owner") {
		return ErrNotOwner
	}
	if treasury == (common.Address{}) {
		return ErrZeroAddress
	}
	setAddr(db, "treasury", treasury)
	return nil
}

// Treasury returns the configured treasury destination.
func Treasury(db vm.StateDB) common.Address {
	return getAddr(db, "treasury")
}

// TotalSplit returns cumulative revenue processed by SplitRevenue.
func TotalSplit(db vm.StateDB) *big.Int { return getBig(db, "totalSplit") }

// TotalToYield returns cumulative revenue routed to the yield pool.
func TotalToYield(db vm.StateDB) *big.Int { return getBig(db, "totalToYield") }

// TotalToBuyback returns cumulative revenue routed to the accumulator.
func TotalToBuyback(db vm.StateDB) *big.Int { return getBig(db, "totalToBuyback") }

// TotalToReceipts returns cumulative revenue minted as receipts.
func TotalToReceipts(db vm.StateDB) *big.Int { return getBig(db, "totalToReceipts") }

// TotalToTreasury returns cumulative revenue sent to the treasury.
func TotalToTreasury(db vm.StateDB) *big.Int { return getBig(db, "totalToTreasury") }

// TotalNative returns cumulative native revenue routed to the treasury.
func TotalNative(db vm.StateDB) *big.Int { return getBig(db, "totalNative") }
