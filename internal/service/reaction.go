package service

import (
	"github.com/threadly-dev/threadly/internal/domain"
)

type ReactionService interface {
	Vote(responseId domain.ResponseId, accountId domain.AccountId, like bool) (domain.VoteOutcome, error)
	Current(responseId domain.ResponseId, accountId domain.AccountId) (*domain.Reaction, error)
}

// Reaction maintains at most one reaction per (account, response) pair with
// toggle semantics. Voting is not a ban-gated action.
type Reaction struct {
	storage ReactionStorage
}

type ReactionStorage interface {
	Vote(accountId domain.AccountId, responseId domain.ResponseId, like bool) (domain.VoteOutcome, error)
	Reaction(accountId domain.AccountId, responseId domain.ResponseId) (*domain.Reaction, error)
}

func NewReaction(storage ReactionStorage) *Reaction {
	return &Reaction{storage}
}

func (r *Reaction) Vote(responseId domain.ResponseId, accountId domain.AccountId, like bool) (domain.VoteOutcome, error) {
	return r.storage.Vote(accountId, responseId, like)
}

func (r *Reaction) Current(responseId domain.ResponseId, accountId domain.AccountId) (*domain.Reaction, error) {
	return r.storage.Reaction(accountId, responseId)
}
