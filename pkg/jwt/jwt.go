package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de sesión codificados en el claim "kind".
const (
	KindProvider = "provider" // emitido por el proveedor de identidad externo
	KindAdmin    = "admin"    // emitido por /api/admin/login
)

// Claims incluye los claims estándar JWT más los datos de identidad de la sesión.
// Subject es el ID del usuario (provider) o un ID sintético "admin-<uuid>" (admin).
type Claims struct {
	jwt.RegisteredClaims
	Kind            string `json:"kind"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	AdminSince      int64  `json:"admin_since,omitempty"` // unix segundos
}

// Generate firma un token HS256 con los claims dados. IssuedAt y ExpiresAt se
// calculan aquí; Issuer se sobrescribe con el parámetro.
func Generate(secret, issuer string, claims Claims, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("jwt: subject vacío")
	}
	if claims.Kind != KindProvider && claims.Kind != KindAdmin {
		return "", fmt.Errorf("jwt: kind inválido %q", claims.Kind)
	}
	now := time.Now()
	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma, expiración y forma de los claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("jwt: subject ausente")
	}
	if claims.Kind != KindProvider && claims.Kind != KindAdmin {
		return nil, fmt.Errorf("jwt: kind inválido %q", claims.Kind)
	}
	return claims, nil
}
