package roster

type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type CreateWeeklyOffRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	IsFixed *bool  `json:"is_fixed"`
	OffDay  string `json:"off_day"`
	OffDate string `json:"off_date"`
}

type WeeklyOffResponse struct {
	ID      string  `json:"id"`
	UserID  string  `json:"user_id"`
	IsFixed bool    `json:"is_fixed"`
	OffDay  string  `json:"off_day,omitempty"`
	OffDate *string `json:"off_date,omitempty"`
}
