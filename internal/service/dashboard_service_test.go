package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhaalawais/fos-hrdd-software/internal/draft"
	"github.com/minhaalawais/fos-hrdd-software/internal/lifecycle"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/view"
)

func strPtr(s string) *string {
	return &s
}

func testSession() *model.Session {
	return &model.Session{ID: "sess-1", Email: "hr@factory.example", UpstreamToken: "tok"}
}

func newDashboard(portal Portal, drafts draft.Store) *DashboardService {
	return NewDashboardService(portal, drafts, zerolog.Nop())
}

func TestOverviewSummaryCountsFullSet(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusUnprocessed, Categories: "Harassment"},
		{TicketNumber: "GRV-002", Status: model.StatusInProcess, Categories: "Working Hours"},
		{TicketNumber: "GRV-003", Status: model.StatusBounced, Categories: "Harassment"},
		{TicketNumber: "GRV-004", Status: model.StatusBounced1, Categories: "Discipline"},
		{TicketNumber: "GRV-005", Status: model.StatusSubmitted, Categories: "Harassment"},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	overview, err := svc.Overview(context.Background(), testSession(), view.Filter{Status: "Submitted"})

	require.NoError(t, err)
	assert.Equal(t, 5, overview.Summary.Total)
	assert.Equal(t, 1, overview.Summary.Unprocessed)
	assert.Equal(t, 1, overview.Summary.InProcess)
	assert.Equal(t, 1, overview.Summary.Submitted)
	assert.Equal(t, 2, overview.Summary.Bounced, "both bounce rounds count as Bounced")

	// The page reflects the filter even though the summary does not.
	assert.Equal(t, 1, overview.Page.TotalItems)
	assert.Equal(t, "GRV-005", overview.Page.Items[0].TicketNumber)
}

func TestOverviewSingleSeriesUnderStatusFilter(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusBounced, Categories: "Harassment"},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	overview, err := svc.Overview(context.Background(), testSession(), view.Filter{Status: "Bounced"})

	require.NoError(t, err)
	require.Len(t, overview.CategoryBar.Series, 1)
	assert.Equal(t, "Bounced", overview.CategoryBar.Series[0].Status)
	assert.Len(t, overview.StatusPie, 4)
}

func TestTimelineUnknownTicket(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusInProcess},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	_, err := svc.Timeline(context.Background(), testSession(), "GRV-404")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimelineUnprocessedPromptsForProcessing(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusUnprocessed},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	timeline, err := svc.Timeline(context.Background(), testSession(), "GRV-001")

	require.NoError(t, err)
	assert.True(t, timeline.RequiresProcessing)
	assert.Empty(t, timeline.Stages)
}

func TestTimelineMergesDraftsIntoEditableStages(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusInProcess, Categories: "Harassment"},
	}}
	drafts := draft.NewMemory()
	require.NoError(t, drafts.Put(context.Background(), "GRV-001", "rca", "saved narrative"))
	require.NoError(t, drafts.Put(context.Background(), "GRV-001", "rcaDeadline", "2026-03-15"))
	svc := newDashboard(portal, drafts)

	timeline, err := svc.Timeline(context.Background(), testSession(), "GRV-001")

	require.NoError(t, err)
	var rca *lifecycle.Stage
	for i := range timeline.Stages {
		if timeline.Stages[i].Kind == lifecycle.KindRCA {
			rca = &timeline.Stages[i]
		}
	}
	require.NotNil(t, rca)
	assert.Equal(t, "saved narrative", rca.Draft)
	assert.Equal(t, "2026-03-15", rca.DraftDeadline)
}

func TestTimelineAttachesStageFiles(t *testing.T) {
	portal := &fakePortal{
		complaints: []model.Complaint{
			{TicketNumber: "GRV-001", Status: model.StatusSubmitted, Categories: "Harassment",
				RCA: strPtr("rca"), CAPA: strPtr("capa")},
		},
		files: map[string][]model.ComplaintFile{
			model.FileCategoryProof: {{Type: model.FileTypeImage, URL: "https://cdn.example/a.jpg"}},
			model.FileCategoryCAPA:  {{Type: model.FileTypePDF, URL: "https://cdn.example/b.pdf"}},
		},
	}
	svc := newDashboard(portal, draft.NewMemory())

	timeline, err := svc.Timeline(context.Background(), testSession(), "GRV-001")

	require.NoError(t, err)
	require.NotEmpty(t, timeline.Stages)
	intake := timeline.Stages[0]
	require.Len(t, intake.Files, 1)
	assert.Equal(t, model.FileTypeImage, intake.Files[0].Type)
}

func TestTimelineToleratesFileFetchFailure(t *testing.T) {
	portal := &fakePortal{
		complaints: []model.Complaint{
			{TicketNumber: "GRV-001", Status: model.StatusInProcess, Categories: "Harassment"},
		},
		filesErr: assert.AnError,
	}
	svc := newDashboard(portal, draft.NewMemory())

	timeline, err := svc.Timeline(context.Background(), testSession(), "GRV-001")

	require.NoError(t, err)
	assert.Empty(t, timeline.Stages[0].Files)
}

func TestTimelineCanRouteOnlyWhileActive(t *testing.T) {
	cases := []struct {
		status model.ComplaintStatus
		want   bool
	}{
		{model.StatusInProcess, true},
		{model.StatusBounced, true},
		{model.StatusBounced1, true},
		{model.StatusSubmitted, false},
		{model.StatusCompleted, false},
	}

	for _, tc := range cases {
		portal := &fakePortal{complaints: []model.Complaint{
			{TicketNumber: "GRV-001", Status: tc.status, Categories: "Harassment",
				RCA: strPtr("rca"), CAPA: strPtr("capa")},
		}}
		svc := newDashboard(portal, draft.NewMemory())

		timeline, err := svc.Timeline(context.Background(), testSession(), "GRV-001")

		require.NoError(t, err)
		assert.Equal(t, tc.want, timeline.CanRoute, "status %s", tc.status)
	}
}

func TestProcessComplaintTogglesUpstream(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusUnprocessed},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	require.NoError(t, svc.ProcessComplaint(context.Background(), testSession(), "GRV-001"))
	assert.Equal(t, []string{"GRV-001"}, portal.toggleCalls)
}

func TestProcessComplaintRejectsAlreadyProcessed(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusInProcess},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	err := svc.ProcessComplaint(context.Background(), testSession(), "GRV-001")

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, portal.toggleCalls)
}

func TestSubmitStageUpdateClearsDrafts(t *testing.T) {
	ctx := context.Background()
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusInProcess},
	}}
	drafts := draft.NewMemory()
	require.NoError(t, drafts.Put(ctx, "GRV-001", "rca", "draft text"))
	svc := newDashboard(portal, drafts)

	err := svc.SubmitStageUpdate(ctx, testSession(), "GRV-001", StageUpdateInput{
		Fields: map[string]string{"rca": "final text", "rcaDeadline": "2026-04-01"},
	})

	require.NoError(t, err)
	require.Len(t, portal.submitCalls, 1)
	assert.Equal(t, "GRV-001", portal.submitCalls[0].Ticket)
	assert.Equal(t, "final text", portal.submitCalls[0].Fields["rca"])

	fields, err := drafts.Fields(ctx, "GRV-001")
	require.NoError(t, err)
	assert.Empty(t, fields)
}

// A failed submit must leave the drafts untouched; there is no optimistic
// path for stage updates.
func TestSubmitStageUpdateFailureKeepsDrafts(t *testing.T) {
	ctx := context.Background()
	portal := &fakePortal{
		complaints: []model.Complaint{{TicketNumber: "GRV-001", Status: model.StatusInProcess}},
		submitErr:  assert.AnError,
	}
	drafts := draft.NewMemory()
	require.NoError(t, drafts.Put(ctx, "GRV-001", "rca", "draft text"))
	svc := newDashboard(portal, drafts)

	err := svc.SubmitStageUpdate(ctx, testSession(), "GRV-001", StageUpdateInput{
		Fields: map[string]string{"rca": "final text"},
	})

	require.Error(t, err)
	value, getErr := drafts.Get(ctx, "GRV-001", "rca")
	require.NoError(t, getErr)
	assert.Equal(t, "draft text", value)
}

func TestSubmitStageUpdateValidatesFields(t *testing.T) {
	svc := newDashboard(&fakePortal{}, draft.NewMemory())

	err := svc.SubmitStageUpdate(context.Background(), testSession(), "GRV-001", StageUpdateInput{
		Fields: map[string]string{"bogus": "text"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.SubmitStageUpdate(context.Background(), testSession(), "GRV-001", StageUpdateInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveDraftValidatesField(t *testing.T) {
	svc := newDashboard(&fakePortal{}, draft.NewMemory())

	assert.NoError(t, svc.SaveDraft(context.Background(), "GRV-001", "capa1", "text"))
	assert.ErrorIs(t, svc.SaveDraft(context.Background(), "GRV-001", "status", "x"), ErrInvalidInput)
}

func TestStageFilesValidatesCategory(t *testing.T) {
	portal := &fakePortal{files: map[string][]model.ComplaintFile{
		model.FileCategoryCAPA1: {{Type: model.FileTypeVideo, URL: "https://cdn.example/v.mp4"}},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	files, err := svc.StageFiles(context.Background(), testSession(), "GRV-001", model.FileCategoryCAPA1)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = svc.StageFiles(context.Background(), testSession(), "GRV-001", "passwords")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestShareTimelineValidatesInput(t *testing.T) {
	portal := &fakePortal{complaints: []model.Complaint{
		{TicketNumber: "GRV-001", Status: model.StatusInProcess},
	}}
	svc := newDashboard(portal, draft.NewMemory())

	err := svc.ShareTimeline(context.Background(), testSession(), "GRV-001", ShareInput{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ShareTimeline(context.Background(), testSession(), "GRV-001", ShareInput{
		Email: "a@b.c",
		HTML:  "<div>timeline</div>",
	})
	require.NoError(t, err)
	require.Len(t, portal.shareCalls, 1)
	assert.Equal(t, "GRV-001", portal.shareCalls[0].ComplaintID)
}
