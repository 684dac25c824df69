package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Este paquete solo LEE claims de tokens emitidos por el backend. La firma
// pertenece al backend y no se puede verificar aquí: los claims se usan
// únicamente para mostrar información de sesión (expiración, subject),
// nunca para decisiones de autorización.

// Expiry devuelve el claim exp del token sin verificar la firma.
func Expiry(tokenString string) (time.Time, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("jwt: el token no incluye claim exp")
	}
	return claims.ExpiresAt.Time, nil
}

// Subject devuelve el claim sub del token sin verificar la firma.
func Subject(tokenString string) (string, error) {
	claims, err := parseUnverified(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func parseUnverified(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token malformado: %w", err)
	}
	return claims, nil
}
