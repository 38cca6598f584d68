package model

type User struct {
	ID           string   `json:"id"         bson:"_id"`
	Username     string   `json:"username"   bson:"username"`
	PasswordHash string   `json:"-"          bson:"password"`
	PostalCode   string   `json:"postalCode" bson:"postalCode"`
	Active       bool     `json:"active"     bson:"active"`
	Roles        []string `json:"roles"      bson:"roles"`
}
