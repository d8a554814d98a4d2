package user

type UserResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	IsActive       bool    `json:"is_active"`
	LeaveBalance   float64 `json:"leave_balance"`
	CompOffBalance float64 `json:"comp_off_balance"`
}
