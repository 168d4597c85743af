package dto

// RegisterReq represents the request body for the /api/auth/register endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
type RegisterReq struct {
	FirstName           string `json:"firstName" binding:"required,min=1,max=50"`
	LastName            string `json:"lastName" binding:"required,min=1,max=50"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8"`
	SubscribeNewsletter bool   `json:"subscribeNewsletter"`
}
