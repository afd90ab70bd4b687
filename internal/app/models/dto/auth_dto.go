package dto

// AdminLoginRequest carries admin password credentials
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// BiometricLoginRequest carries a facial descriptor for voter or
// candidate login
type BiometricLoginRequest struct {
	Email      string    `json:"email" binding:"required,email"`
	Descriptor []float64 `json:"descriptor" binding:"required"`
}

// OTPRequest asks for a one-time code to be emailed
type OTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPVerifyRequest verifies an emailed one-time code
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// SessionResponse describes an issued session
type SessionResponse struct {
	PrincipalID int64  `json:"principalId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Kind        string `json:"kind"`
	ExpiresAt   string `json:"expiresAt"`
}
