package get_availability

import (
	"time"

	"github.com/NikoCousin/book-am/pkg/types"
)

// Request входные данные для получения доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	StaffID    *int64    // ID мастера (nil - любой мастер)
	Date       time.Time // Дата, на которую запрашиваются слоты
}

// Slot доступный слот с указанием мастеров, у которых он свободен
type Slot struct {
	StartTime types.TimeString // Время начала слота
	StaffIDs  []int64          // ID мастеров, доступных в этот слот
}

// Response результат с доступными слотами
type Response struct {
	BusinessID int64
	ServiceID  int64
	StaffID    *int64
	Date       time.Time
	Slots      []Slot // Слоты в порядке возрастания времени начала
}
