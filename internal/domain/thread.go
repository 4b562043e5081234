package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title       ThreadTitle
	Forum       ForumId
	RootMessage ResponseCreationData
}

type ThreadMetadata struct {
	Id           ThreadId
	Forum        ForumId
	Title        ThreadTitle
	Pinned       bool
	CreatedAt    time.Time
	LastActivity time.Time // max(created_at) over the thread's responses
	NumResponses int
}

type Thread struct {
	ThreadMetadata
	Responses []*Response
}

// Root returns the thread's earliest response (its root post).
// Responses are always loaded ordered by creation time.
func (t *Thread) Root() *Response {
	if len(t.Responses) == 0 {
		return nil
	}
	return t.Responses[0]
}
