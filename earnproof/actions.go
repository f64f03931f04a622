package earnproof

import (
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/vm"
	"github.com/xfuel-network/xfengine/escrow"
	"github.com/xfuel-network/xfengine/params"
	"github.com/xfuel-network/xfengine/sysaction"
)

type proofEvent struct {
	Account    common.Address `json:"account"`
	Earnings   string         `json:"earnings"`
	Nonce      uint64         `json:"nonce"`
	Signer     common.Address `json:"signer"`
	Cumulative string         `json:"cumulative"`
}

type signerEvent struct {
	Signer     common.Address `json:"signer"`
	Authorized bool           `json:"authorized"`
}

// Initialize records the registry owner. The owner manages the authorized
// signer set.
func Initialize(db vm.StateDB, owner common.Address) {
	setOwner(db, owner)
}

// AuthorizeSigner adds an attestation signer. Owner only.
func AuthorizeSigner(db vm.StateDB, caller, signer common.Address) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	if signer == (common.Address{}) {
		return ErrInvalidSigner
	}
	setAuthorizedSigner(db, signer, true)
	sysaction.EmitLog(db, params.ProofRegistryAddress, "SignerAuthorized", 0, signerEvent{
		Signer: signer, Authorized: true,
	})
	return nil
}

// RevokeSigner removes an attestation signer. Owner only.
func RevokeSigner(db vm.StateDB, caller, signer common.Address) error {
	if caller != getOwner(db) {
		return ErrNotOwner
	}
	setAuthorizedSigner(db, signer, false)
	sysaction.EmitLog(db, params.ProofRegistryAddress, "SignerRevoked", 0, signerEvent{
		Signer: signer, Authorized: false,
	})
	return nil
}

// MultiplierFor maps cumulative attested earnings to a permanent voting
// multiplier in basis points.
func MultiplierFor(cumulative *big.Int) uint64 {
	switch {
	case cumulative.Cmp(params.TierThreeEarnings) >= 0:
		return params.TierThreeMultiplierBps
	case cumulative.Cmp(params.TierTwoEarnings) >= 0:
		return params.TierTwoMultiplierBps
	case cumulative.Cmp(params.TierOneEarnings) >= 0:
		return params.TierOneMultiplierBps
	default:
		return params.TierBaseMultiplierBps
	}
}

// VerifyProof consumes a signed earnings attestation, accumulates the
// account's attested earnings, and raises its escrow multiplier when a tier
// threshold is crossed. Each (account, nonce) pair is accepted once.
func VerifyProof(db vm.StateDB, account common.Address, earnings *big.Int, nonce uint64, sig []byte, now uint64) error {
	if account == (common.Address{}) {
		return ErrInvalidAccount
	}
	if earnings == nil || earnings.Sign() <= 0 {
		return ErrZeroEarnings
	}
	id := proofID(account, nonce)
	if isConsumed(db, id) {
		return ErrProofConsumed
	}
	signer, err := RecoverSigner(account, earnings, nonce, sig)
	if err != nil {
		return err
	}
	if !isAuthorizedSigner(db, signer) {
		return ErrUnauthorizedSigner
	}

	markConsumed(db, id)
	total := new(big.Int).Add(getCumulativeEarnings(db, account), earnings)
	setCumulativeEarnings(db, account, total)

	tier := MultiplierFor(total)
	if tier > params.TierBaseMultiplierBps {
		if err := escrow.SetPermanentMultiplier(db, params.ProofRegistryAddress, account, tier); err != nil {
			return err
		}
	}

	sysaction.EmitLog(db, params.ProofRegistryAddress, "ProofVerified", now, proofEvent{
		Account: account, Earnings: earnings.String(), Nonce: nonce,
		Signer: signer, Cumulative: total.String(),
	})
	return nil
}

// GetMultiplier returns the multiplier the account's attested earnings have
// unlocked so far.
func GetMultiplier(db vm.StateDB, account common.Address) uint64 {
	return MultiplierFor(getCumulativeEarnings(db, account))
}

// TotalProvenEarnings returns the account's cumulative attested earnings.
func TotalProvenEarnings(db vm.StateDB, account common.Address) *big.Int {
	return getCumulativeEarnings(db, account)
}

// IsProofConsumed reports whether the (account, nonce) pair has been used.
func IsProofConsumed(db vm.StateDB, account common.Address, nonce uint64) bool {
	return isConsumed(db, proofID(account, nonce))
}

// IsAuthorizedSigner reports whether the address may sign attestations.
func IsAuthorizedSigner(db vm.StateDB, signer common.Address) bool {
	return isAuthorizedSigner(db, signer)
}
