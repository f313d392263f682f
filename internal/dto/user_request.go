package dto

type UserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type RoleResponse struct {
	Role string `json:"role"`
}
