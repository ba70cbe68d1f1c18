package dashboard

import "github.com/hadirhq/hadir-backend-go/internal/domain/attendance"

// TodaySummary is the admin dashboard headline for the current working day.
type TodaySummary struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	OnLeave        int    `json:"on_leave"`
	NotYetArrived  int    `json:"not_yet_arrived"`
}

type SummaryResponse struct {
	Summary TodaySummary                    `json:"summary"`
	Recent  []attendance.AttendanceResponse `json:"recent"`
}
