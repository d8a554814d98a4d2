package correction

type RequestCorrectionRequest struct {
	Date      string `json:"date" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Witness   string `json:"witness"`
	WitnessID string `json:"witness_id"`
}

type DecideCorrectionRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVED REJECTED"`
	Reason string `json:"reason"`
}

type CorrectionResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Witness     string  `json:"witness"`
	Status      string  `json:"status"`
	AdminReason *string `json:"admin_reason,omitempty"`
	DecidedAt   *string `json:"decided_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
