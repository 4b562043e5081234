package domain

import "time"

const MaxMessageLen = 1000

type ResponseCreationData struct {
	Thread    ThreadId
	Responder Account
	Message   MessageText
}

type Response struct {
	Id            ResponseId
	Thread        ThreadId
	Responder     Account
	Message       MessageText
	CreatedAt     time.Time
	OrderInThread int // dense 1..N within the thread, matching creation order
	Edited        bool
}
