package dto

// RegisterVoterRequest carries a new voter registration
type RegisterVoterRequest struct {
	FirstName  string    `json:"firstName" binding:"required"`
	LastName   string    `json:"lastName" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Faculty    string    `json:"faculty" binding:"required"`
	Descriptor []float64 `json:"descriptor" binding:"required"`
}

// RegisterCandidateRequest carries a new candidate registration. Unlike
// voters, candidates supply their registration number.
type RegisterCandidateRequest struct {
	FirstName  string    `json:"firstName" binding:"required"`
	LastName   string    `json:"lastName" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Faculty    string    `json:"faculty" binding:"required"`
	RegNumber  string    `json:"regNumber" binding:"required"`
	Descriptor []float64 `json:"descriptor" binding:"required"`
}

// RegisterResponse confirms a successful registration
type RegisterResponse struct {
	ID        int64  `json:"id"`
	RegNumber string `json:"regNumber"`
	Message   string `json:"message"`
}
