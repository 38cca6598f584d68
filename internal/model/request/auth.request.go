package request

type RegisterRequest struct {
	Username   string `json:"username"   validate:"required,min=3,max=50"`
	Password   string `json:"password"   validate:"required,min=8,max=72"`
	PostalCode string `json:"postalCode" validate:"omitempty,postalcode"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UsernameParam struct {
	Username string `uri:"username" validate:"required,min=3,max=50"`
}
