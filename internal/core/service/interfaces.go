package service

import (
	"context"
	"time"

	"github.com/yndnr/restoremesh-go/internal/core/domain"
)

// Event is one inbound event as seen by the restoration protocol.
type Event interface {
	// IsConnection is true for the event raised when a connection opens.
	IsConnection() bool
	// Message is the inbound payload: a string for text frames, []byte for
	// binary frames, nil for connection events.
	Message() any
	// Session is the state record of the connection the event belongs to.
	Session() *domain.Session
	// Send delivers a notification to the client.
	Send(n domain.Notification) error
}

// Next continues the dispatch pipeline.
type Next func(ctx context.Context) error

// RestoreRegistry stores restorable sessions by token.
type RestoreRegistry interface {
	Put(token string, session *domain.Session, issuedAt time.Time) error
	Get(token string) (*domain.Session, bool)
	Remove(token string)
	Claim(token string, now time.Time, lifetime time.Duration) (domain.RestoreEntry, domain.ClaimOutcome)
	Sweep(now time.Time, lifetime time.Duration) int
	Len() int
}
