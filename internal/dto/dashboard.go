package dto

// KPICard is a single headline figure on the dashboard.
type KPICard struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

// AlertLevel grades the severity of a dashboard alert.
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertWarning  AlertLevel = "warning"
	AlertInfo     AlertLevel = "info"
)

// Alert is a threshold-driven notice shown on the dashboard.
type Alert struct {
	Level    AlertLevel `json:"level"`
	Category string     `json:"category"`
	Message  string     `json:"message"`
}

// TrendPoint is one labelled value in a time-series block.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendBlock is a small time-series panel. Fallback carries the display text
// used when no data exists for the window.
type TrendBlock struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Points   []TrendPoint `json:"points,omitempty"`
	Fallback string       `json:"fallback,omitempty"`
}

// ActionLink is a shortcut rendered under the dashboard cards.
type ActionLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// StudentDashboardResponse is the page payload for the student dashboard.
type StudentDashboardResponse struct {
	StudentID      string       `json:"student_id"`
	AcademicYearID string       `json:"academic_year_id,omitempty"`
	KPIs           []KPICard    `json:"kpis"`
	Alerts         []Alert      `json:"alerts"`
	Trends         []TrendBlock `json:"trends"`
	ActionLinks    []ActionLink `json:"action_links"`
}
