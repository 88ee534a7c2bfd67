package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are the JWT claims attached to every authenticated connection.
// Token issuance itself happens in the account system; this service only
// needs the verified player identity.
type PlayerClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}
