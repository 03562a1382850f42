package dto

// OTPRequest asks for a one-time code.
type OTPRequest struct {
	Email string `json:"email"`
}

// UserLoginRequest completes the OTP step.
type UserLoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// AdminLoginRequest payload for the dashboard login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse reports both authorization flags.
type SessionResponse struct {
	UserAuthenticated  bool   `json:"userAuthenticated"`
	AdminAuthenticated bool   `json:"adminAuthenticated"`
	CurrentUserEmail   string `json:"currentUserEmail"`
}
