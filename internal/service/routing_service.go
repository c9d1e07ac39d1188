package service

import (
	"context"
	"strings"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

type RoutingService struct {
	portal Portal
}

func NewRoutingService(portal Portal) *RoutingService {
	return &RoutingService{portal: portal}
}

// IOUsers lists the portal-side investigation officers a complaint can be
// routed to.
func (s *RoutingService) IOUsers(ctx context.Context, sess *model.Session) ([]model.IOUser, error) {
	return s.portal.IOUsers(ctx, sess.UpstreamToken)
}

type RouteInput struct {
	Ticket    string
	Method    model.RouteMethod
	Recipient string
	Message   string
}

// Route forwards a complaint by email or through the portal. Email routing
// accepts any plausible address; portal routing requires the recipient to be
// one of the known IO users.
func (s *RoutingService) Route(ctx context.Context, sess *model.Session, input RouteInput) error {
	recipient := strings.TrimSpace(input.Recipient)
	if recipient == "" {
		return ErrInvalidInput
	}

	req := model.RouteRequest{
		ComplaintID: input.Ticket,
		Method:      input.Method,
		Recipient:   recipient,
		Message:     input.Message,
	}

	switch input.Method {
	case model.RouteMethodEmail:
		if !strings.Contains(recipient, "@") {
			return ErrInvalidInput
		}
		return s.portal.RouteViaEmail(ctx, sess.UpstreamToken, req)
	case model.RouteMethodPortal:
		users, err := s.portal.IOUsers(ctx, sess.UpstreamToken)
		if err != nil {
			return err
		}
		if !knownIOUser(users, recipient) {
			return ErrInvalidInput
		}
		return s.portal.RouteViaPortal(ctx, sess.UpstreamToken, req)
	default:
		return ErrInvalidInput
	}
}

func knownIOUser(users []model.IOUser, recipient string) bool {
	for _, u := range users {
		if strings.EqualFold(u.Email, recipient) {
			return true
		}
	}
	return false
}

type RouteHistory struct {
	Items []model.RouteHistoryItem `json:"items"`
	Show  bool                     `json:"show"`
}

// History returns prior routing attempts for a ticket. Show tells the caller
// whether there is anything worth rendering.
func (s *RoutingService) History(ctx context.Context, sess *model.Session, ticket string) (*RouteHistory, error) {
	items, err := s.portal.RouteHistory(ctx, sess.UpstreamToken, ticket)
	if err != nil {
		return nil, err
	}
	return &RouteHistory{Items: items, Show: len(items) > 0}, nil
}
