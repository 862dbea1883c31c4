package funding

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"marketplace-companion/internal/domain"
	fundingclient "marketplace-companion/internal/funding"
)

// Service mediates funding request status changes against the remote funding
// service. It validates the transition table locally before patching; the
// server stays authoritative and no optimistic lock is held, so two actors
// racing on the same request resolve in whatever order the server sees them.
type Service struct {
	client client
	logger zerolog.Logger
}

type client interface {
	Get(ctx context.Context, id int64) (*domain.FundingRequest, error)
	Patch(ctx context.Context, id int64, patch fundingclient.StatusPatch) (*domain.FundingRequest, error)
	Messages(ctx context.Context, id int64) ([]domain.FundingMessage, error)
	PostMessage(ctx context.Context, id int64, author, body string) (*domain.FundingMessage, error)
}

// New builds a Service.
func New(client client, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Get fetches the current state of a funding request.
func (s *Service) Get(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	return s.client.Get(ctx, id)
}

// Approve moves a pending request to approved.
func (s *Service) Approve(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	return s.transition(ctx, id, domain.FundingApproved)
}

// Reject moves a pending request to rejected. Rejected is terminal; there is
// no re-opening a rejected request.
func (s *Service) Reject(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	return s.transition(ctx, id, domain.FundingRejected)
}

// MarkFunded moves an approved request to funded, gated on the admin-approval
// flag already being set.
func (s *Service) MarkFunded(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	return s.transition(ctx, id, domain.FundingFunded)
}

// AdminApprove sets the secondary admin flag on an approved request. The flag
// gates approved→funded; it has no meaning in any other status.
func (s *Service) AdminApprove(ctx context.Context, id int64) (*domain.FundingRequest, error) {
	request, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.FundingApproved {
		return nil, fmt.Errorf("%w: admin approval requires status %q, have %q", domain.ErrInvalidTransition, domain.FundingApproved, request.Status)
	}
	approved := true
	return s.client.Patch(ctx, id, fundingclient.StatusPatch{AdminApproved: &approved})
}

func (s *Service) transition(ctx context.Context, id int64, target domain.FundingStatus) (*domain.FundingRequest, error) {
	request, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !request.Status.CanTransitionTo(target, request.AdminApproved) {
		return nil, fmt.Errorf("%w: %q to %q", domain.ErrInvalidTransition, request.Status, target)
	}

	s.logger.Info().Int64("request", id).Str("from", string(request.Status)).Str("to", string(target)).Msg("funding status transition")
	return s.client.Patch(ctx, id, fundingclient.StatusPatch{Status: &target})
}

// Messages lists the request's message thread.
func (s *Service) Messages(ctx context.Context, id int64) ([]domain.FundingMessage, error) {
	return s.client.Messages(ctx, id)
}

// PostMessage appends a note to the request's message thread.
func (s *Service) PostMessage(ctx context.Context, id int64, author, body string) (*domain.FundingMessage, error) {
	if body == "" {
		return nil, errors.New("message body required")
	}
	return s.client.PostMessage(ctx, id, author, body)
}
