// Package auth define el puerto de verificación de identidad. La API no emite
// tokens: sólo valida los que trae el cliente.
package auth

import "context"

// Claims es lo que la API necesita saber del usuario autenticado.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// AuthVerifier verifica un bearer token y devuelve sus claims.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
