// Package api holds the request/response DTOs exchanged with the request layer.
package api

import (
	"time"

	"github.com/threadly-dev/threadly/internal/domain"
)

// Request DTOs

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateThreadRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	RootMessage string `json:"root_message" validate:"required"`
}

type CreateResponseRequest struct {
	Message string `json:"message" validate:"required"`
}

type EditResponseRequest struct {
	Message string `json:"message" validate:"required"`
}

type SetPinRequest struct {
	Pinned bool `json:"pinned"`
}

type VoteRequest struct {
	Like *bool `json:"like" validate:"required"`
}

type SetBanRequest struct {
	Until time.Time `json:"until" validate:"required"`
}

type CreateSectionRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateForumRequest struct {
	Section     int64  `json:"section" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// Response DTOs

type TokenResponse struct {
	Token string `json:"token"`
}

type UsernameAvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

type SectionListResponse struct {
	Sections []domain.Section `json:"sections"`
}

type ForumPageResponse struct {
	domain.ForumPage
}

type ThreadResponse struct {
	domain.Thread
}

type CreatedResponse struct {
	Id int64 `json:"id"`
}

type VoteResponse struct {
	Outcome string `json:"outcome"`
	Like    *bool  `json:"like,omitempty"` // polarity after the vote; absent when deleted
}

type AccountResponse struct {
	Id          int64      `json:"id"`
	Username    string     `json:"username"`
	CreatedAt   time.Time  `json:"created_at"`
	BannedUntil *time.Time `json:"banned_until,omitempty"`
}
