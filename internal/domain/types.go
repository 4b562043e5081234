package domain

type (
	AccountId = int64
	Username  = string

	SectionId = int64
	ForumId   = int64

	ThreadId    = int64
	ThreadTitle = string

	ResponseId  = int64
	MessageText = string

	ReactionId = int64
)
