package compoff

type GrantCompOffRequest struct {
	UserID   string  `json:"user_id" binding:"required,uuid"`
	WorkDate string  `json:"work_date" binding:"required"`
	Duration float64 `json:"duration"`
	Note     string  `json:"note"`
}

type CompOffResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	WorkDate string  `json:"work_date"`
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
	Note     string  `json:"note,omitempty"`
}
