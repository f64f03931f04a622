// Package govidx maintains an in-memory index of treasury governance
// activity by consuming audit logs emitted under the governor address.
//
// It lives outside treasury/ so that query surfaces (RPC, tooling) can hold
// a fast snapshot of proposal state without touching ledger storage.
package govidx

import (
	"encoding/json"
	"math/big"
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/xfuel-network/xfengine/common"
	"github.com/xfuel-network/xfengine/core/types"
	"github.com/xfuel-network/xfengine/crypto"
	"github.com/xfuel-network/xfengine/log"
	"github.com/xfuel-network/xfengine/params"
)

var (
	topicProposalCreated   = crypto.Keccak256Hash([]byte("ProposalCreated"))
	topicVoteCast          = crypto.Keccak256Hash([]byte("VoteCast"))
	topicProposalExecuted  = crypto.Keccak256Hash([]byte("ProposalExecuted"))
	topicProposalCancelled = crypto.Keccak256Hash([]byte("ProposalCancelled"))
)

// ProposalSummary is the indexed view of one proposal.
type ProposalSummary struct {
	ID           uint64
	Proposer     common.Address
	Vault        string
	Recipient    common.Address
	Amount       *big.Int
	CreatedAt    uint64
	ForVotes     *big.Int
	AgainstVotes *big.Int
	Executed     bool
	Cancelled    bool
}

type proposalPayload struct {
	ID        uint64         `json:"id"`
	Proposer  common.Address `json:"proposer"`
	Vault     string         `json:"vault"`
	Recipient common.Address `json:"recipient"`
	Amount    string         `json:"amount"`
}

type votePayload struct {
	ID      uint64         `json:"id"`
	Voter   common.Address `json:"voter"`
	Support bool           `json:"support"`
	Weight  string         `json:"weight"`
}

// Index is the in-memory governance index. Safe for concurrent readers.
type Index struct {
	mu        sync.RWMutex
	proposals map[uint64]*ProposalSummary
	voters    map[uint64]mapset.Set // proposal id → set of voter addresses
	open      mapset.Set            // ids still accepting votes
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		proposals: make(map[uint64]*ProposalSummary),
		voters:    make(map[uint64]mapset.Set),
		open:      mapset.NewSet(),
	}
}

// ApplyLogs feeds a batch of audit logs through the index, ignoring
// anything not emitted by the treasury governor.
func (idx *Index) ApplyLogs(logs []*types.Log) {
	for _, l := range logs {
		idx.ApplyLog(l)
	}
}

// ApplyLog applies one audit log to the index.
func (idx *Index) ApplyLog(l *types.Log) {
	if l.Address != params.TreasuryGovernorAddress || len(l.Topics) == 0 {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	switch l.Topics[0] {
	case topicProposalCreated:
		var p proposalPayload
		if err := json.Unmarshal(l.Data, &p); err != nil {
			log.Warn("Governance indexer: bad proposal payload", "err", err)
			return
		}
		amount, _ := new(big.Int).SetString(p.Amount, 10)
		idx.proposals[p.ID] = &ProposalSummary{
			ID: p.ID, Proposer: p.Proposer, Vault: p.Vault,
			Recipient: p.Recipient, Amount: amount, CreatedAt: l.Time,
			ForVotes: new(big.Int), AgainstVotes: new(big.Int),
		}
		idx.voters[p.ID] = mapset.NewSet()
		idx.open.Add(p.ID)

	case topicVoteCast:
		var v votePayload
		if err := json.Unmarshal(l.Data, &v); err != nil {
			log.Warn("Governance indexer: bad vote payload", "err", err)
			return
		}
		sum, ok := idx.proposals[v.ID]
		if !ok {
			return
		}
		weight, _ := new(big.Int).SetString(v.Weight, 10)
		if weight == nil {
			weight = new(big.Int)
		}
		if v.Support {
			sum.ForVotes.Add(sum.ForVotes, weight)
		} else {
			sum.AgainstVotes.Add(sum.AgainstVotes, weight)
		}
		idx.voters[v.ID].Add(v.Voter)

	case topicProposalExecuted:
		var p proposalPayload
		if err := json.Unmarshal(l.Data, &p); err != nil {
			return
		}
		if sum, ok := idx.proposals[p.ID]; ok {
			sum.Executed = true
			idx.open.Remove(p.ID)
		}

	case topicProposalCancelled:
		var p proposalPayload
		if err := json.Unmarshal(l.Data, &p); err != nil {
			return
		}
		if sum, ok := idx.proposals[p.ID]; ok {
			sum.Cancelled = true
			idx.open.Remove(p.ID)
		}
	}
}

// Get returns the indexed summary for a proposal id.
func (idx *Index) Get(id uint64) (ProposalSummary, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.proposals[id]
	if !ok {
		return ProposalSummary{}, false
	}
	return *p, true
}

// OpenProposals returns the ids still accepting votes.
func (idx *Index) OpenProposals() []uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids := make([]uint64, 0, idx.open.Cardinality())
	for _, v := range idx.open.ToSlice() {
		ids = append(ids, v.(uint64))
	}
	return ids
}

// HasVoted reports whether the voter appears in the proposal's indexed
// voter set.
func (idx *Index) HasVoted(id uint64, voter common.Address) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	set, ok := idx.voters[id]
	return ok && set.Contains(voter)
}

// VoterCount returns the number of distinct voters on a proposal.
func (idx *Index) VoterCount(id uint64) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	set, ok := idx.voters[id]
	if !ok {
		return 0
	}
	return set.Cardinality()
}

// Len returns the number of indexed proposals.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.proposals)
}
