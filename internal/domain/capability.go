package domain

type Capability string

const (
	CapCreateThread      Capability = "can-create-thread"
	CapPinThreads        Capability = "can-pin-threads"
	CapDeleteAnyThread   Capability = "can-delete-any-thread"
	CapRemoveAnyResponse Capability = "can-remove-any-response"
	CapBanUsers          Capability = "can-ban-users"
)

type Capabilities []Capability

func (c Capabilities) Has(capability Capability) bool {
	for _, held := range c {
		if held == capability {
			return true
		}
	}
	return false
}

// CanMutate is the uniform ownership/capability check used by every mutating
// operation on threads and responses: the actor may act iff they created the
// resource or hold the named elevated capability. Pure predicate, no side
// effects; callers translate false into an action-specific Forbidden outcome.
func CanMutate(actor *Account, ownerId AccountId, capability Capability) bool {
	if actor == nil {
		return false
	}
	if actor.Id == ownerId {
		return true
	}
	return actor.Capabilities.Has(capability)
}

// CanPin: pinning is capability-only. Ownership never grants pin rights.
func CanPin(actor *Account) bool {
	return actor != nil && actor.Capabilities.Has(CapPinThreads)
}
