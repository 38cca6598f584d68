package request

type WeatherRequest struct {
	PostalCode string `json:"postalCode" validate:"required,postalcode"`
	Username   string `json:"username"   validate:"required"`
}

// HistoryQuery caps the number of history entries returned; 0 means all.
type HistoryQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

type PostalCodeParam struct {
	PostalCode string `uri:"postalCode" validate:"required,postalcode"`
}
