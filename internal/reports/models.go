package reports

import "time"

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
)

// RegisterRow is one case in the exported case register
type RegisterRow struct {
	CaseNumber         string    `db:"case_number"`
	VictimName         string    `db:"victim_name"`
	IncidentDate       time.Time `db:"incident_date"`
	IncidentLocation   string    `db:"incident_location"`
	Stage              string    `db:"stage"`
	Status             string    `db:"status"`
	CompensationAmount float64   `db:"compensation_amount"`
	AssignedOfficer    string    `db:"assigned_officer"`
	CreatedAt          time.Time `db:"created_at"`
}

var registerColumns = []string{
	"Case Number", "Victim Name", "Incident Date", "Location",
	"Stage", "Status", "Compensation (INR)", "Assigned Officer", "Registered On",
}

func (r RegisterRow) values() []string {
	return []string{
		r.CaseNumber,
		r.VictimName,
		r.IncidentDate.Format("2006-01-02"),
		r.IncidentLocation,
		r.Stage,
		r.Status,
		formatAmount(r.CompensationAmount),
		r.AssignedOfficer,
		r.CreatedAt.Format("2006-01-02"),
	}
}
