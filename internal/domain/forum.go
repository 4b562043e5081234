package domain

type Section struct {
	Id     SectionId
	Name   string
	Forums []ForumMetadata
}

type ForumMetadata struct {
	Id          ForumId
	SectionId   SectionId
	Name        string
	Description string
}

// Forum page as served to the request layer: one page of ranked threads.
type ForumPage struct {
	ForumMetadata
	Page       int
	TotalPages int
	Threads    []ThreadMetadata
}
