package service

import (
	"context"

	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

// fakePortal is a hand-rolled Portal double: canned responses plus call
// recording for the mutating endpoints.
type fakePortal struct {
	loginResult *client.LoginResult
	loginErr    error
	loginCalls  int

	complaints    []model.Complaint
	complaintsErr error

	files    map[string][]model.ComplaintFile
	filesErr error

	submitErr    error
	submitCalls  []client.SubmitFormInput
	toggleErr    error
	toggleCalls  []string
	shareCalls   []client.ShareTimelineInput
	logoutCalls  int
	logoutErr    error
	ioUsers      []model.IOUser
	ioUsersErr   error
	emailRoutes  []model.RouteRequest
	portalRoutes []model.RouteRequest
	routeErr     error
	history      []model.RouteHistoryItem
	historyErr   error

	notifications []model.Notification
	notifyErr     error
	markReadCalls int
	markReadErr   error
}

func (f *fakePortal) Login(_ context.Context, _, _ string) (*client.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakePortal) Logout(_ context.Context, _ string) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakePortal) Complaints(_ context.Context, _ string) ([]model.Complaint, error) {
	return f.complaints, f.complaintsErr
}

func (f *fakePortal) ComplaintFiles(_ context.Context, _, _, category string) ([]model.ComplaintFile, error) {
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return f.files[category], nil
}

func (f *fakePortal) SubmitForm(_ context.Context, _ string, input client.SubmitFormInput) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submitCalls = append(f.submitCalls, input)
	return nil
}

func (f *fakePortal) ToggleComplaint(_ context.Context, _, ticket string) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.toggleCalls = append(f.toggleCalls, ticket)
	return nil
}

func (f *fakePortal) ShareTimeline(_ context.Context, _ string, input client.ShareTimelineInput) error {
	f.shareCalls = append(f.shareCalls, input)
	return nil
}

func (f *fakePortal) Notifications(_ context.Context, _ string) ([]model.Notification, error) {
	return f.notifications, f.notifyErr
}

func (f *fakePortal) MarkNotificationsRead(_ context.Context, _ string) error {
	f.markReadCalls++
	return f.markReadErr
}

func (f *fakePortal) IOUsers(_ context.Context, _ string) ([]model.IOUser, error) {
	return f.ioUsers, f.ioUsersErr
}

func (f *fakePortal) RouteViaEmail(_ context.Context, _ string, req model.RouteRequest) error {
	if f.routeErr != nil {
		return f.routeErr
	}
	f.emailRoutes = append(f.emailRoutes, req)
	return nil
}

func (f *fakePortal) RouteViaPortal(_ context.Context, _ string, req model.RouteRequest) error {
	if f.routeErr != nil {
		return f.routeErr
	}
	f.portalRoutes = append(f.portalRoutes, req)
	return nil
}

func (f *fakePortal) RouteHistory(_ context.Context, _, _ string) ([]model.RouteHistoryItem, error) {
	return f.history, f.historyErr
}
