package leave

type CreateLeaveRequest struct {
	Type      string `json:"type" binding:"required,oneof=PAID UNPAID SICK CASUAL HALF_DAY WFH COMP_OFF"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// UpdateLeaveRequest is a partial patch. Status, ApproverID, UserID and
// RejectReason are silently stripped for non-admin callers before the
// patch is applied.
type UpdateLeaveRequest struct {
	Type         *string `json:"type"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Reason       *string `json:"reason"`
	Status       *string `json:"status"`
	ApproverID   *string `json:"approver_id"`
	UserID       *string `json:"user_id"`
	RejectReason *string `json:"reject_reason"`
}

type DecideLeaveRequest struct {
	Action string `json:"action" binding:"required,oneof=APPROVED REJECTED"`
	Reason string `json:"reason"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	UserName     string  `json:"user_name,omitempty"`
	Type         string  `json:"type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApproverID   *string `json:"approver_id,omitempty"`
	RejectReason *string `json:"reject_reason,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
