package domain

// Default scheduling values for artists without stored settings
const (
	DefaultSlotGranularityMinutes  = 60
	DefaultDurationMinutes         = 120 // 2 hours
	DefaultBufferMinutes           = 0
	DefaultAdvanceBookingDays      = 30
	DefaultMinBookingNoticeMinutes = 60
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MinDurationMinutes        = 15
	MaxDurationMinutes        = 720 // 12 hours
	MaxBufferMinutes          = 60
	MinAdvanceBookingDays     = 1
	MaxAdvanceBookingDays     = 90
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MaxNotesLength            = 500
)

// AllowedBufferMinutes are the buffer choices offered to artists
var AllowedBufferMinutes = []int{0, 15, 30, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
