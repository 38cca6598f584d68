package model

import "github.com/golang-jwt/jwt/v5"

// JWTPayload is the claim set carried by access tokens.
type JWTPayload struct {
	Type  string   `json:"type"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}
