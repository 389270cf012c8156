package dto

type UpdateUserRequest struct {
	Nickname    string  `json:"nickname" binding:"omitempty,min=3,max=15"`
	Password    string  `json:"password" binding:"omitempty,min=8,max=64"`
	DateOfBirth *string `json:"date_of_birth"`
	Biography   *string `json:"biography" binding:"omitempty,max=400"`
}
