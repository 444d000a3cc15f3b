package update_staff_schedule

import "github.com/NikoCousin/book-am/internal/service/staff/models"

// ReplaceScheduleRequest HTTP request model: полное недельное расписание
type ReplaceScheduleRequest struct {
	Days []models.ScheduleDay `json:"days"`
}
