package domain

import "time"

// FundingStatus enumerates the lifecycle of an investor funding request.
type FundingStatus string

const (
	FundingPending  FundingStatus = "pending"
	FundingApproved FundingStatus = "approved"
	FundingRejected FundingStatus = "rejected"
	FundingFunded   FundingStatus = "funded"
)

// Valid reports whether s is one of the known statuses.
func (s FundingStatus) Valid() bool {
	switch s {
	case FundingPending, FundingApproved, FundingRejected, FundingFunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether a request in status s may move to target.
// The only allowed moves are pending→approved, pending→rejected and
// approved→funded; the last one additionally requires the admin-approval
// flag. rejected and funded are terminal.
func (s FundingStatus) CanTransitionTo(target FundingStatus, adminApproved bool) bool {
	switch s {
	case FundingPending:
		return target == FundingApproved || target == FundingRejected
	case FundingApproved:
		return target == FundingFunded && adminApproved
	}
	return false
}

// FundingRequest is an entrepreneur's ask for investor capital as held by the
// remote funding service. The companion mediates status changes but stores
// nothing locally; the server remains authoritative.
type FundingRequest struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	AmountCents   int64         `json:"amountCents"`
	Status        FundingStatus `json:"status"`
	AdminApproved bool          `json:"adminApproved"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FundingMessage is one note on a funding request's message thread.
type FundingMessage struct {
	ID        string    `json:"id"`
	RequestID int64     `json:"requestId"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
