// Package lifecycle maps a complaint record onto the ordered sequence of
// timeline stages the dashboard renders. Classification is a pure function of
// the record: both the status and the nullability of the stage narratives gate
// which sections appear.
package lifecycle

import "github.com/minhaalawais/fos-hrdd-software/internal/model"

type Kind string

const (
	KindIntake       Kind = "intake"
	KindIOFeedback   Kind = "io_feedback"
	KindRCA          Kind = "rca"
	KindCAPA         Kind = "capa"
	KindDissatisfied Kind = "dissatisfied"
	KindRCA1         Kind = "rca1"
	KindCAPA1        Kind = "capa1"
	KindRCA2         Kind = "rca2"
	KindCAPA2        Kind = "capa2"
	KindUnclosed     Kind = "unclosed"
	KindSubmitted    Kind = "submitted"
	KindSatisfied    Kind = "satisfied"
)

// Stage is one rendered timeline section. An editable stage carries the draft
// field names the client writes scratch input under; a read-only stage carries
// the stored narrative instead.
type Stage struct {
	Kind     Kind   `json:"kind"`
	Date     string `json:"date,omitempty"`
	Editable bool   `json:"editable"`

	// Read-only narrative content and its stored deadline.
	Content  string `json:"content,omitempty"`
	Deadline string `json:"deadline,omitempty"`

	// Editable-form capabilities. RCA variants take a deadline picker, CAPA
	// variants take attachments instead.
	DeadlineField string `json:"deadline_field,omitempty"`
	DraftField    string `json:"draft_field,omitempty"`
	Attachments   bool   `json:"attachments,omitempty"`

	// Complainant feedback carried by dissatisfaction/satisfaction banners.
	Feedback string `json:"feedback,omitempty"`

	// Upstream file category whose attachments render beside this stage.
	FileCategory string `json:"file_category,omitempty"`

	// Filled in by the dashboard service, not by Classify.
	Draft         string                `json:"draft,omitempty"`
	DraftDeadline string                `json:"draft_deadline,omitempty"`
	Files         []model.ComplaintFile `json:"files,omitempty"`
}

// RequiresProcessing reports whether the complaint is still awaiting the
// initial processing confirmation; the timeline is only rendered once it is
// past Unprocessed.
func RequiresProcessing(c model.Complaint) bool {
	return c.Status == model.StatusUnprocessed
}

// Classify returns the ordered stage sequence for a complaint. Stages are
// cumulative: later rules append, they never replace earlier output. Escalation
// rounds are never skipped; a Bounced1 complaint always carries both rounds
// even while their narratives are still unauthored.
func Classify(c model.Complaint) []Stage {
	stages := []Stage{{
		Kind:         KindIntake,
		Date:         c.InProcessDate,
		FileCategory: model.FileCategoryProof,
	}}

	if c.Categories == model.CategoryFeedback {
		stages = append(stages, capaStage(KindIOFeedback, c.CAPA, c.CAPADate, "capa", model.FileCategoryCAPA))
	} else {
		stages = append(stages,
			rcaStage(KindRCA, c.RCA, c.RCADate, c.CAPADeadline, "rca", "rcaDeadline"),
			capaStage(KindCAPA, c.CAPA, c.CAPADate, "capa", model.FileCategoryCAPA),
		)
	}

	if c.Status == model.StatusBounced || c.Status == model.StatusBounced1 || c.CAPA1 != nil {
		stages = append(stages,
			Stage{Kind: KindDissatisfied, Feedback: c.Feedback},
			rcaStage(KindRCA1, c.RCA1, c.RCA1Date, c.CAPADeadline1, "rca1", "rca1Deadline"),
			capaStage(KindCAPA1, c.CAPA1, c.CAPA1Date, "capa1", model.FileCategoryCAPA1),
		)
	}

	if c.Status == model.StatusBounced1 || c.CAPA2 != nil {
		stages = append(stages,
			Stage{Kind: KindDissatisfied, Feedback: c.Feedback1},
			rcaStage(KindRCA2, c.RCA2, c.RCA2Date, c.CAPADeadline2, "rca2", "rca2Deadline"),
			capaStage(KindCAPA2, c.CAPA2, c.CAPA2Date, "capa2", model.FileCategoryCAPA2),
		)
	}

	switch c.Status {
	case model.StatusUnclosed:
		stages = append(stages, Stage{Kind: KindUnclosed, Date: c.UnclosedDate})
	case model.StatusSubmitted:
		stages = append(stages, Stage{Kind: KindSubmitted, Date: c.ClosedDate})
	case model.StatusCompleted:
		stages = append(stages,
			Stage{Kind: KindSubmitted, Date: c.ClosedDate},
			Stage{Kind: KindSatisfied, Feedback: c.ClosedFeedback},
		)
	}

	return stages
}

func rcaStage(kind Kind, narrative *string, date, deadline, draftField, deadlineField string) Stage {
	if narrative == nil {
		return Stage{
			Kind:          kind,
			Date:          date,
			Editable:      true,
			DraftField:    draftField,
			DeadlineField: deadlineField,
		}
	}
	return Stage{
		Kind:     kind,
		Date:     date,
		Content:  *narrative,
		Deadline: deadline,
	}
}

func capaStage(kind Kind, narrative *string, date, draftField, fileCategory string) Stage {
	if narrative == nil {
		return Stage{
			Kind:         kind,
			Date:         date,
			Editable:     true,
			DraftField:   draftField,
			Attachments:  true,
			FileCategory: fileCategory,
		}
	}
	return Stage{
		Kind:         kind,
		Date:         date,
		Content:      *narrative,
		FileCategory: fileCategory,
	}
}
