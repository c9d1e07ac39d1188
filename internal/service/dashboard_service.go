package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/minhaalawais/fos-hrdd-software/internal/charts"
	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/draft"
	"github.com/minhaalawais/fos-hrdd-software/internal/lifecycle"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/view"
)

type DashboardService struct {
	portal Portal
	drafts draft.Store
	log    zerolog.Logger
}

func NewDashboardService(portal Portal, drafts draft.Store, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		portal: portal,
		drafts: drafts,
		log:    log,
	}
}

// Summary counts the full complaint set, ignoring any active filter. Bounced
// covers both dissatisfaction rounds.
type Summary struct {
	Total       int `json:"total"`
	Unprocessed int `json:"unprocessed"`
	InProcess   int `json:"in_process"`
	Submitted   int `json:"submitted"`
	Bounced     int `json:"bounced"`
}

type Overview struct {
	Page        view.Page            `json:"page"`
	Filter      view.Filter          `json:"filter"`
	Summary     Summary              `json:"summary"`
	StatusPie   []charts.StatusSlice `json:"status_pie"`
	CategoryBar charts.CategoryChart `json:"category_bar"`
}

// Overview produces one dashboard payload: the filtered page plus summary and
// chart data computed over the unfiltered set.
func (s *DashboardService) Overview(ctx context.Context, sess *model.Session, filter view.Filter) (*Overview, error) {
	complaints, err := s.portal.Complaints(ctx, sess.UpstreamToken)
	if err != nil {
		return nil, err
	}

	filter.PageSize = view.NormalizePageSize(filter.PageSize)
	filtered := view.Apply(complaints, filter)
	page := view.Paginate(filtered, filter.Page, filter.PageSize)
	filter.Page = page.PageIndex

	return &Overview{
		Page:        page,
		Filter:      filter,
		Summary:     summarize(complaints),
		StatusPie:   charts.StatusDistribution(complaints),
		CategoryBar: charts.CategoryBreakdown(complaints, filter.Status),
	}, nil
}

func summarize(complaints []model.Complaint) Summary {
	summary := Summary{Total: len(complaints)}
	for _, c := range complaints {
		switch c.Status {
		case model.StatusUnprocessed:
			summary.Unprocessed++
		case model.StatusInProcess:
			summary.InProcess++
		case model.StatusSubmitted:
			summary.Submitted++
		case model.StatusBounced, model.StatusBounced1:
			summary.Bounced++
		}
	}
	return summary
}

type Timeline struct {
	Complaint          model.Complaint   `json:"complaint"`
	Stages             []lifecycle.Stage `json:"stages"`
	RequiresProcessing bool              `json:"requires_processing"`
	CanRoute           bool              `json:"can_route"`
}

// Timeline classifies a complaint into its stage sequence and decorates the
// editable stages with saved drafts and the evidence stages with their files.
// File fetches are best effort; a failed fetch leaves the stage without
// attachments rather than failing the whole timeline.
func (s *DashboardService) Timeline(ctx context.Context, sess *model.Session, ticket string) (*Timeline, error) {
	complaint, err := s.findComplaint(ctx, sess, ticket)
	if err != nil {
		return nil, err
	}

	if lifecycle.RequiresProcessing(*complaint) {
		return &Timeline{
			Complaint:          *complaint,
			RequiresProcessing: true,
		}, nil
	}

	stages := lifecycle.Classify(*complaint)
	savedDrafts, err := s.drafts.Fields(ctx, ticket)
	if err != nil {
		return nil, err
	}

	for i := range stages {
		stage := &stages[i]
		if stage.Editable {
			stage.Draft = savedDrafts[stage.DraftField]
			if stage.DeadlineField != "" {
				stage.DraftDeadline = savedDrafts[stage.DeadlineField]
			}
		}
		if stage.FileCategory == "" {
			continue
		}
		files, err := s.portal.ComplaintFiles(ctx, sess.UpstreamToken, ticket, stage.FileCategory)
		if err != nil {
			if client.IsUnauthorized(err) {
				return nil, err
			}
			s.log.Warn().Err(err).
				Str("ticket", ticket).
				Str("category", stage.FileCategory).
				Msg("failed to fetch stage files")
			continue
		}
		stage.Files = files
	}

	return &Timeline{
		Complaint: *complaint,
		Stages:    stages,
		CanRoute:  canRoute(complaint.Status),
	}, nil
}

// StageFiles fetches the attachments for one stage category on demand, used
// when the timeline lazily loads a gallery.
func (s *DashboardService) StageFiles(ctx context.Context, sess *model.Session, ticket, category string) ([]model.ComplaintFile, error) {
	switch category {
	case model.FileCategoryProof, model.FileCategoryCAPA, model.FileCategoryCAPA1, model.FileCategoryCAPA2:
	default:
		return nil, ErrInvalidInput
	}
	return s.portal.ComplaintFiles(ctx, sess.UpstreamToken, ticket, category)
}

func canRoute(status model.ComplaintStatus) bool {
	switch status {
	case model.StatusInProcess, model.StatusBounced, model.StatusBounced1:
		return true
	}
	return false
}

// ProcessComplaint confirms an Unprocessed complaint, moving it to In Process
// upstream so its timeline becomes available.
func (s *DashboardService) ProcessComplaint(ctx context.Context, sess *model.Session, ticket string) error {
	complaint, err := s.findComplaint(ctx, sess, ticket)
	if err != nil {
		return err
	}
	if complaint.Status != model.StatusUnprocessed {
		return ErrConflict
	}
	return s.portal.ToggleComplaint(ctx, sess.UpstreamToken, ticket)
}

type StageUpdateInput struct {
	Fields  map[string]string
	Uploads []client.Upload
}

// SubmitStageUpdate forwards authored stage fields upstream and, only after
// the upstream accepts them, clears the ticket's drafts. There is no
// optimistic path here: a failed submit keeps the drafts intact.
func (s *DashboardService) SubmitStageUpdate(ctx context.Context, sess *model.Session, ticket string, input StageUpdateInput) error {
	if len(input.Fields) == 0 && len(input.Uploads) == 0 {
		return ErrInvalidInput
	}
	for field := range input.Fields {
		if !draft.ValidField(field) {
			return ErrInvalidInput
		}
	}

	if _, err := s.findComplaint(ctx, sess, ticket); err != nil {
		return err
	}

	err := s.portal.SubmitForm(ctx, sess.UpstreamToken, client.SubmitFormInput{
		Ticket:  ticket,
		Fields:  input.Fields,
		Uploads: input.Uploads,
	})
	if err != nil {
		return err
	}

	if err := s.drafts.ClearTicket(ctx, ticket); err != nil {
		s.log.Warn().Err(err).Str("ticket", ticket).Msg("failed to clear drafts after submit")
	}
	return nil
}

func (s *DashboardService) SaveDraft(ctx context.Context, ticket, field, value string) error {
	if !draft.ValidField(field) {
		return ErrInvalidInput
	}
	return s.drafts.Put(ctx, ticket, field, value)
}

func (s *DashboardService) Drafts(ctx context.Context, ticket string) (map[string]string, error) {
	return s.drafts.Fields(ctx, ticket)
}

func (s *DashboardService) DiscardDrafts(ctx context.Context, ticket string) error {
	return s.drafts.ClearTicket(ctx, ticket)
}

type ShareInput struct {
	Email   string
	Subject string
	HTML    string
	CSS     string
}

// ShareTimeline mails a rendered timeline snapshot through the upstream
// portal, which owns the mail infrastructure.
func (s *DashboardService) ShareTimeline(ctx context.Context, sess *model.Session, ticket string, input ShareInput) error {
	if input.Email == "" || input.HTML == "" {
		return ErrInvalidInput
	}
	if _, err := s.findComplaint(ctx, sess, ticket); err != nil {
		return err
	}
	return s.portal.ShareTimeline(ctx, sess.UpstreamToken, client.ShareTimelineInput{
		Email:       input.Email,
		Subject:     input.Subject,
		ComplaintID: ticket,
		HTML:        input.HTML,
		CSS:         input.CSS,
	})
}

func (s *DashboardService) findComplaint(ctx context.Context, sess *model.Session, ticket string) (*model.Complaint, error) {
	complaints, err := s.portal.Complaints(ctx, sess.UpstreamToken)
	if err != nil {
		return nil, err
	}
	for i := range complaints {
		if complaints[i].TicketNumber == ticket {
			return &complaints[i], nil
		}
	}
	return nil, ErrNotFound
}
