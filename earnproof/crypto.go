package earnproof

import (
	"crypto/ecdsa"
	"math/big"

	lru "github.com/hashicorp/golang-lru"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/params"
)

// signedMessagePrefix is the conventional prefix applied before signing a
// 32-byte digest, preventing proof signatures from doubling as transaction
// signatures.
const signedMessagePrefix = "\x19Ethereum Signed Message:\n32"

// recoveredSigners caches signature recovery results keyed by
// keccak(digest || signature). Recovery is a pure function, so cached
// entries never go stale.
var recoveredSigners, _ = lru.New(4096)

// ProofHash computes the digest of an earnings attestation tuple:
// keccak256(account[20] || earnings[32] || nonce[32] || chainID[32]).
func ProofHash(account common.Address, earnings *big.Int, nonce uint64, chainID *big.Int) common.Hash {
	buf := make([]byte, 0, 20+3*32)
	buf = append(buf, account.Bytes()...)
	buf = append(buf, common.BigToHash(earnings).Bytes()...)
	buf = append(buf, common.BigToHash(new(big.Int).SetUint64(nonce)).Bytes()...)
	buf = append(buf, common.BigToHash(chainID).Bytes()...)
	return crypto.Keccak256Hash(buf)
}

// signedProofDigest wraps the proof hash in the signed-message prefix.
func signedProofDigest(account common.Address, earnings *big.Int, nonce uint64) common.Hash {
	h := ProofHash(account, earnings, nonce, params.ProofChainID)
	return crypto.Keccak256Hash([]byte(signedMessagePrefix), h.Bytes())
}

// SignProof signs an earnings attestation with the given key, producing a
// 65-byte [R || S || V] signature. Used by the signer tooling and tests.
func SignProof(key *ecdsa.PrivateKey, account common.Address, earnings *big.Int, nonce uint64) ([]byte, error) {
	digest := signedProofDigest(account, earnings, nonce)
	return crypto.Sign(digest.Bytes(), key)
}

// RecoverSigner returns the address that signed the attestation. Both 0/1
// and legacy 27/28 recovery ids are accepted.
func RecoverSigner(account common.Address, earnings *big.Int, nonce uint64, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, ErrInvalidSignature
	}
	digest := signedProofDigest(account, earnings, nonce)

	norm := make([]byte, crypto.SignatureLength)
	copy(norm, sig)
	if norm[crypto.RecoveryIDOffset] >= 27 {
		norm[crypto.RecoveryIDOffset] -= 27
	}

	cacheKey := crypto.Keccak256Hash(digest.Bytes(), norm)
	if cached, ok := recoveredSigners.Get(cacheKey); ok {
		return cached.(common.Address), nil
	}

	pub, err := crypto.SigToPub(digest.Bytes(), norm)
	if err != nil {
		return common.Address{}, ErrInvalidSignature
	}
	signer := crypto.PubkeyToAddress(*pub)
	recoveredSigners.Add(cacheKey, signer)
	return signer, nil
}
