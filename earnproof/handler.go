package earnproof

import (
	"fmt"
	"math/big"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/common/hexutil"
	"github.com/xfuel-network/xfengine/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&proofHandler{})
}

// proofHandler implements sysaction.Handler for earnings attestations.
type proofHandler struct{}

func (h *proofHandler) CanHandle(kind sysaction.ActionKind) bool {
	return kind == sysaction.ActionProofVerify
}

// ProofPayload carries a signed earnings attestation. Earnings is a decimal
// string, the signature a 0x-prefixed 65-byte blob.
type ProofPayload struct {
	Account   common.Address `json:"account"`
	Earnings  string         `json:"earnings"`
	Nonce     uint64         `json:"nonce"`
	Signature string         `json:"signature"`
}

func (h *proofHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	var p ProofPayload
	if err := sysaction.DecodePayload(sa, &p); err != nil {
		return fmt.Errorf("proof verify: %w", err)
	}
	earnings, ok := new(big.Int).SetString(p.Earnings, 10)
	if !ok {
		return fmt.Errorf("proof verify: bad earnings %q", p.Earnings)
	}
	sig, err := hexutil.Decode(p.Signature)
	if err != nil {
		return fmt.Errorf("proof verify: bad signature: %w", err)
	}
	return VerifyProof(ctx.StateDB, p.Account, earnings, p.Nonce, sig, ctx.Time)
}
