package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type AssignUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type DepartmentDetailResponse struct {
	DepartmentResponse
	MemberIDs  []string `json:"member_ids"`
	ManagerIDs []string `json:"manager_ids"`
}
