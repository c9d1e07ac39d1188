package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/minhaalawais/fos-hrdd-software/internal/model"
)

// NotificationService layers an optimistic read-state cache over the upstream
// notification feed: opening the panel marks everything read locally and
// reports upstream in the background of the request, so a slow or failed
// upstream write never blocks the panel.
type NotificationService struct {
	portal Portal
	log    zerolog.Logger

	mu   sync.Mutex
	read map[string]map[int]bool
}

func NewNotificationService(portal Portal, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		portal: portal,
		log:    log,
		read:   make(map[string]map[int]bool),
	}
}

type NotificationFeed struct {
	Items  []model.Notification `json:"items"`
	Unread int                  `json:"unread"`
}

func (s *NotificationService) Feed(ctx context.Context, sess *model.Session) (*NotificationFeed, error) {
	items, err := s.portal.Notifications(ctx, sess.UpstreamToken)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	localRead := s.read[sess.ID]
	for i := range items {
		if localRead[items[i].ID] {
			items[i].IsRead = true
		}
	}
	s.mu.Unlock()

	feed := &NotificationFeed{Items: items}
	for _, n := range items {
		if !n.IsRead {
			feed.Unread++
		}
	}
	return feed, nil
}

// MarkAllRead flips the local read state first and treats the upstream write
// as best effort. The local cache keeps the badge cleared even if the
// upstream write fails; the next login starts from upstream truth again.
func (s *NotificationService) MarkAllRead(ctx context.Context, sess *model.Session) error {
	items, err := s.portal.Notifications(ctx, sess.UpstreamToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	localRead := s.read[sess.ID]
	if localRead == nil {
		localRead = make(map[int]bool)
		s.read[sess.ID] = localRead
	}
	for _, n := range items {
		localRead[n.ID] = true
	}
	s.mu.Unlock()

	if err := s.portal.MarkNotificationsRead(ctx, sess.UpstreamToken); err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("failed to mark notifications read upstream")
	}
	return nil
}

// Forget drops the per-session cache, called when the session ends.
func (s *NotificationService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.read, sessionID)
}
