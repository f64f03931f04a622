package receipt

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

type mintEvent struct {
	To           common.Address `json:"to"`
	Amount       string         `json:"amount"`
	Period       uint64         `json:"period"`
	PriorityFlag bool           `json:"priority_flag"`
}

type redeemEvent struct {
	From   common.Address `json:"from"`
	Amount string         `json:"amount"`
}

type minterEvent struct {
	Minter common.Address `json:"minter"`
	Added  bool           `json:"added"`
}

// Initialize records the token owner and registers the revenue splitter as
// the initial minter.
func Initialize(db vm.StateDB, owner common.Address) {
	setOwner(db, owner)
	setMinter(db, params.RevenueAddress, true)
}

// AddMinter registers an address allowed to mint. Owner only.
func AddMinter(db vm.StateDB, caller, minter common.Address) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	setMinter(db, minter, true)
	sysaction.EmitLog(db, params.ReceiptAddress, "MinterAdded", 0, minterEvent{
		Minter: minter, Added: true,
	})
	return nil
}

// RemoveMinter deregisters a minter. Owner only.
func RemoveMinter(db vm.StateDB, caller, minter common.Address) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	setMinter(db, minter, false)
	sysaction.EmitLog(db, params.ReceiptAddress, "MinterRemoved", 0, minterEvent{
		Minter: minter, Added: false,
	})
	return nil
}

// Mint issues receipts to an account. A zero period selects the default.
// Repeated mints accumulate the amount while the latest mint's period and
// priority flag take over the whole position.
func Mint(db vm.StateDB, caller, to common.Address, amount *big.Int, period uint64, priority bool, now uint64) error {
	if caller != getOwner(db) && !isMinter(db, caller) {
		return ErrNotMinter
	}
	if to == (common.Address{}) {
		return ErrMintToZero
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if period == 0 {
		period = params.DefaultRedemptionPeriod
	}
	if period < params.MinRedemptionPeriod {
		return ErrPeriodTooShort
	}
	if period > params.MaxRedemptionPeriod {
		return ErrPeriodTooLong
	}

	setAmount(db, to, new(big.Int).Add(getAmount(db, to), amount))
	setMintTime(db, to, now)
	setRedemptionPeriod(db, to, period)
	setPriorityFlag(db, to, priority)
	setTotalSupply(db, new(big.Int).Add(getTotalSupply(db), amount))

	sysaction.EmitLog(db, params.ReceiptAddress, "ReceiptMinted", now, mintEvent{
		To: to, Amount: amount.String(), Period: period, PriorityFlag: priority,
	})
	return nil
}

// AdminMintBatch mints to several recipients in one call. Owner only. All
// argument slices must have the same length.
func AdminMintBatch(db vm.StateDB, caller common.Address, recipients []common.Address, amounts []*big.Int, periods []uint64, flags []bool, now uint64) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	if len(recipients) != len(amounts) || len(recipients) != len(periods) || len(recipients) != len(flags) {
		return ErrLengthMismatch
	}
	for i, to := range recipients {
		if err := Mint(db, caller, to, amounts[i], periods[i], flags[i], now); err != nil {
			return err
		}
	}
	return nil
}

// Redeem burns receipts and releases the same amount from the reserve held
// at the token address. The whole position must have aged past its
// redemption period; full redemption deletes the receipt.
func Redeem(db vm.StateDB, from common.Address, amount *big.Int, now uint64) error {
	outstanding := getAmount(db, from)
	if outstanding.Sign() == 0 {
		return ErrNoReceipt
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrZeroAmount
	}
	if now < getMintTime(db, from)+getRedemptionPeriod(db, from) {
		return ErrPeriodNotElapsed
	}
	if amount.Cmp(outstanding) > 0 {
		return ErrExceedsReceipt
	}
	if db.GetBalance(params.ReceiptAddress).Cmp(amount) < 0 {
		return ErrInsufficientReserve
	}

	remaining := new(big.Int).Sub(outstanding, amount)
	setAmount(db, from, remaining)
	if remaining.Sign() == 0 {
		setMintTime(db, from, 0)
		setRedemptionPeriod(db, from, 0)
		setPriorityFlag(db, from, false)
	}
	setTotalSupply(db, new(big.Int).Sub(getTotalSupply(db), amount))
	db.SubBalance(params.ReceiptAddress, amount)
	db.AddBalance(from, amount)

	sysaction.EmitLog(db, params.ReceiptAddress, "ReceiptRedeemed", now, redeemEvent{
		From: from, Amount: amount.String(),
	})
	return nil
}

// Transfer always fails. Receipts are bound to the account they were minted
// to.
func Transfer(db vm.StateDB, from, to common.Address, amount *big.Int) error {
	return ErrSoulboundTransfer
}

// TransferFrom always fails.
func TransferFrom(db vm.StateDB, spender, from, to common.Address, amount *big.Int) error {
	return ErrSoulboundTransfer
}

// Approve always fails.
func Approve(db vm.StateDB, owner, spender common.Address, amount *big.Int) error {
	return ErrSoulboundApproval
}

// Allowance is always zero.
func Allowance(db vm.StateDB, owner, spender common.Address) *big.Int {
	return new(big.Int)
}

// BalanceOf returns the account's outstanding receipt amount.
func BalanceOf(db vm.StateDB, addr common.Address) *big.Int {
	return getAmount(db, addr)
}

// TotalSupply returns the total outstanding receipt amount.
func TotalSupply(db vm.StateDB) *big.Int {
	return getTotalSupply(db)
}

// GetReceipt returns the account's receipt position.
func GetReceipt(db vm.StateDB, addr common.Address) Receipt {
	return Receipt{
		Amount:           getAmount(db, addr),
		MintTime:         getMintTime(db, addr),
		RedemptionPeriod: getRedemptionPeriod(db, addr),
		PriorityFlag:     getPriorityFlag(db, addr),
	}
}

// HasPriorityFlag reports whether the account's latest mint carried the
// priority flag.
func HasPriorityFlag(db vm.StateDB, addr common.Address) bool {
	return getPriorityFlag(db, addr)
}

// IsMinter reports whether the address may mint.
func IsMinter(db vm.StateDB, addr common.Address) bool {
	return isMinter(db, addr)
}

// CanRedeem reports whether the account can redeem now, together with the
// outstanding amount and the seconds remaining until redemption opens.
func CanRedeem(db vm.StateDB, addr common.Address, now uint64) (bool, *big.Int, uint64) {
	amount := getAmount(db, addr)
	if amount.Sign() == 0 {
		return false, new(big.Int), 0
	}
	unlock := getMintTime(db, addr) + getRedemptionPeriod(db, addr)
	if now < unlock {
		return false, amount, unlock - now
	}
	return true, amount, 0
}

// VotingBoost returns the governance boost granted by holding receipts.
func VotingBoost(db vm.StateDB, addr common.Address) *big.Int {
	return new(big.Int).Mul(getAmount(db, addr), big.NewInt(params.ReceiptBoostWeight))
}

// BoostedVotingPower returns escrow voting power plus the receipt boost.
func BoostedVotingPower(db vm.StateDB, addr common.Address, now uint64) *big.Int {
	power := escrow.VotingPower(db, addr, now)
	return power.Add(power, VotingBoost(db, addr))
}

// Reserve returns the balance backing redemptions.
func Reserve(db vm.StateDB) *big.Int {
	return db.GetBalance(params.ReceiptAddress)
}
