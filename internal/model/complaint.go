package model

// ComplaintStatus values mirror the upstream portal exactly, including the two
// escalation-bounce statuses which the UI merges into one filterable bucket.
type ComplaintStatus string

const (
	StatusUnprocessed ComplaintStatus = "Unprocessed"
	StatusInProcess   ComplaintStatus = "In Process"
	StatusSubmitted   ComplaintStatus = "Submitted"
	StatusBounced     ComplaintStatus = "Bounced"
	StatusBounced1    ComplaintStatus = "Bounced1"
	StatusUnclosed    ComplaintStatus = "Unclosed"
	StatusCompleted   ComplaintStatus = "Completed"
)

// CategoryFeedback complaints have no root-cause workflow; the timeline shows an
// IO feedback section instead of RCA/CAPA.
const CategoryFeedback = "Feedback"

// Categories is the fixed category set used by the bar chart, in display order.
var Categories = []string{
	"Workplace Health, Safety and Environment",
	"Freedom of Association",
	"Child Labor",
	"Wages & Benefits",
	"Working Hours",
	"Forced Labor",
	"Discrimination",
	"Unfair Employment",
	"Ethical Business",
	"Harassment",
	"Discipline",
	CategoryFeedback,
}

type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
	FileTypeVideo FileType = "video"
)

type ComplaintFile struct {
	Type     FileType `json:"type"`
	URL      string   `json:"url"`
	Filename string   `json:"filename,omitempty"`
}

// File categories accepted by the upstream get_complaint_files endpoint.
const (
	FileCategoryProof = "proof"
	FileCategoryCAPA  = "capa"
	FileCategoryCAPA1 = "capa1"
	FileCategoryCAPA2 = "capa2"
)

// Complaint is the record served by the upstream portal. Narrative fields
// (RCA/CAPA and their escalation rounds) are pointers: nil means the stage has
// not been authored yet, which is what drives editable-vs-read-only rendering.
// Dates stay strings in the upstream's format; only sorting parses them.
type Complaint struct {
	ID                  int             `json:"id,omitempty"`
	TicketNumber        string          `json:"ticket_number"`
	EmployeeName        string          `json:"employee_name"`
	Status              ComplaintStatus `json:"status"`
	DateEntry           string          `json:"date_entry"`
	MobileNumber        string          `json:"mobile_number"`
	Categories          string          `json:"complaint_categories"`
	AdditionalComments  string          `json:"additional_comments"`
	IsUrgent            bool            `json:"is_urgent"`
	CompanyName         string          `json:"company_name,omitempty"`
	OfficeName          string          `json:"office_name,omitempty"`
	Designation         string          `json:"designation,omitempty"`
	LodgedByAgent       bool            `json:"lodged_by_agent"`
	LodgedFromWeb       bool            `json:"lodged_from_web"`
	DateOfIssue         string          `json:"date_of_issue,omitempty"`
	PersonIssue         string          `json:"person_issue,omitempty"`
	ConcernedDepartment string          `json:"concerned_department,omitempty"`
	PreviousHistory     string          `json:"previous_history,omitempty"`
	ProposedSolution    string          `json:"proposed_solution,omitempty"`

	InProcessDate string `json:"in_process_date,omitempty"`

	RCA          *string `json:"rca"`
	CAPA         *string `json:"capa"`
	RCADate      string  `json:"rca_date,omitempty"`
	CAPADate     string  `json:"capa_date,omitempty"`
	CAPADeadline string  `json:"capa_deadline,omitempty"`

	Feedback      string  `json:"feedback,omitempty"`
	RCA1          *string `json:"rca1"`
	CAPA1         *string `json:"capa1"`
	RCA1Date      string  `json:"rca1_date,omitempty"`
	CAPA1Date     string  `json:"capa1_date,omitempty"`
	CAPADeadline1 string  `json:"capa_deadline1,omitempty"`

	Feedback1     string  `json:"feedback1,omitempty"`
	RCA2          *string `json:"rca2"`
	CAPA2         *string `json:"capa2"`
	RCA2Date      string  `json:"rca2_date,omitempty"`
	CAPA2Date     string  `json:"capa2_date,omitempty"`
	CAPADeadline2 string  `json:"capa_deadline2,omitempty"`

	ClosedDate     string `json:"closed_date,omitempty"`
	CompletedDate  string `json:"completed_date,omitempty"`
	ClosedFeedback string `json:"closed_feedback,omitempty"`
	UnclosedDate   string `json:"unclosed_date,omitempty"`

	ProofFiles []ComplaintFile `json:"proof_files,omitempty"`
	CAPAFiles  []ComplaintFile `json:"capa_files,omitempty"`
	CAPA1Files []ComplaintFile `json:"capa1_files,omitempty"`
	CAPA2Files []ComplaintFile `json:"capa2_files,omitempty"`
}

// LodgedVia describes the intake channel from the two recorded flags.
func (c Complaint) LodgedVia() string {
	switch {
	case c.LodgedByAgent && c.LodgedFromWeb:
		return "Agent from Web"
	case c.LodgedByAgent:
		return "Agent from Mobile App"
	case c.LodgedFromWeb:
		return "Employee from Web"
	default:
		return "Employee from Mobile App"
	}
}

// Terminal reports whether further edits from the dashboard are blocked.
func (c Complaint) Terminal() bool {
	return c.Status == StatusSubmitted || c.Status == StatusCompleted
}
