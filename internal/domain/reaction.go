package domain

// Reaction associates one account and one response with a like/dislike flag.
// At most one reaction exists per (account, response) pair; the storage layer
// enforces this with a uniqueness constraint.
type Reaction struct {
	Id       ReactionId
	Account  AccountId
	Response ResponseId
	Like     bool
}

// VoteOutcome describes what a vote did to the (account, response) reaction.
type VoteOutcome int

const (
	VoteCreated VoteOutcome = iota // no prior reaction, one created
	VoteUpdated                    // prior reaction flipped polarity in place
	VoteDeleted                    // same polarity submitted twice, reaction removed
)

func (o VoteOutcome) String() string {
	switch o {
	case VoteCreated:
		return "created"
	case VoteUpdated:
		return "updated"
	case VoteDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
