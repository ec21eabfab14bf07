package dto

type RegisterRequestDTO struct {
	Email        string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referral_code,omitempty" example:"a1b2c3d4"`
}

type RegisterResponseDTO struct {
	Message      string `json:"message"`
	ReferralCode string `json:"referral_code" example:"e5f6a7b8"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}
