package domain

// Default scheduling values
const (
	DefaultBufferMinutes         = 120        // монтаж/демонтаж до и после мероприятия
	DefaultExtensionCeilingHours = 2          // максимально возможное продление мероприятия
	DefaultBaseDurationHours     = 2          // базовая длительность, если у пакета она не задана
	DefaultEarliestStartMinutes  = 8 * 60     // 08:00
	DefaultLatestStartMinutes    = 21*60 + 59 // 21:59
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MaxRejectionNoteLength максимальная длина причины отклонения заявки
const MaxRejectionNoteLength = 500
