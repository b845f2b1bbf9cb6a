package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,gte=13"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=female male nonbinary unspecified"`
}

type RegisterResponse struct {
	Username string `json:"username"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken     string `json:"access_token"`
	Username        string `json:"username"`
	ActiveSessionID string `json:"active_session_id"`
}
