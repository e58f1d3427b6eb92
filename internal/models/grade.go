package models

// FinalGrade is a locked-in quarterly grade for one subject assignment.
// Unique per (enrollment, subject assignment, quarter).
type FinalGrade struct {
	ID                  string  `db:"id" json:"id"`
	EnrollmentID        string  `db:"enrollment_id" json:"enrollment_id"`
	SubjectAssignmentID string  `db:"subject_assignment_id" json:"subject_assignment_id"`
	SubjectName         string  `db:"subject_name" json:"subject_name"`
	Quarter             int     `db:"quarter" json:"quarter"`
	Grade               float64 `db:"grade" json:"grade"`
	IsLocked            bool    `db:"is_locked" json:"is_locked"`
}

// CoreValueMark is an observed-values rating used on report cards.
type CoreValueMark string

const (
	MarkAlwaysObserved    CoreValueMark = "AO"
	MarkSometimesObserved CoreValueMark = "SO"
	MarkRarelyObserved    CoreValueMark = "RO"
	MarkNotObserved       CoreValueMark = "NO"
)

// ConductRating holds the four core-value marks for an enrollment quarter.
type ConductRating struct {
	ID            string        `db:"id" json:"id"`
	EnrollmentID  string        `db:"enrollment_id" json:"enrollment_id"`
	Quarter       int           `db:"quarter" json:"quarter"`
	MakaDiyos     CoreValueMark `db:"maka_diyos" json:"maka_diyos"`
	MakaTao       CoreValueMark `db:"maka_tao" json:"maka_tao"`
	MakaKalikasan CoreValueMark `db:"maka_kalikasan" json:"maka_kalikasan"`
	MakaBansa     CoreValueMark `db:"maka_bansa" json:"maka_bansa"`
	Remarks       string        `db:"remarks" json:"remarks"`
	IsLocked      bool          `db:"is_locked" json:"is_locked"`
}
