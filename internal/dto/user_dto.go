package dto

// UserCreateRequest describes the payload for provisioning a user account.
type UserCreateRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"full_name" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=employee manager hr_admin"`
	Department string `json:"department"`
}

// DepartmentCreateRequest describes the payload for creating a department.
type DepartmentCreateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}
