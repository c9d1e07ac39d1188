package service

import (
	"context"
	"errors"

	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)

// Portal is the slice of the upstream client the services depend on. Tests
// substitute a fake; production wires *client.PortalClient.
type Portal interface {
	Login(ctx context.Context, username, password string) (*client.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Complaints(ctx context.Context, token string) ([]model.Complaint, error)
	ComplaintFiles(ctx context.Context, token, ticket, category string) ([]model.ComplaintFile, error)
	SubmitForm(ctx context.Context, token string, input client.SubmitFormInput) error
	ToggleComplaint(ctx context.Context, token, ticket string) error
	ShareTimeline(ctx context.Context, token string, input client.ShareTimelineInput) error
	Notifications(ctx context.Context, token string) ([]model.Notification, error)
	MarkNotificationsRead(ctx context.Context, token string) error
	IOUsers(ctx context.Context, token string) ([]model.IOUser, error)
	RouteViaEmail(ctx context.Context, token string, req model.RouteRequest) error
	RouteViaPortal(ctx context.Context, token string, req model.RouteRequest) error
	RouteHistory(ctx context.Context, token, ticket string) ([]model.RouteHistoryItem, error)
}
