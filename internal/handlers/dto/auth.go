package dto

type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Nickname    string  `json:"nickname" binding:"required,min=3,max=15"`
	Password    string  `json:"password" binding:"required,min=8,max=64"`
	DateOfBirth *string `json:"date_of_birth"`
	Biography   string  `json:"biography" binding:"max=400"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
