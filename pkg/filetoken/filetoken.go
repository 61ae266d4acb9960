// Package filetoken emite y valida tokens de descarga firmados (HS256) con alcance
// a un único archivo y expiración.
package filetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrFileMismatch el token es válido pero fue emitido para otro archivo.
var ErrFileMismatch = errors.New("filetoken: el token no corresponde al archivo")

// Claims incluye los claims estándar JWT más el archivo autorizado.
type Claims struct {
	jwt.RegisteredClaims
	File string `json:"file"`
}

// Generate genera un token firmado para file que expira en ttl.
func Generate(secret, file, issuer string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("filetoken: secret vacío")
	}
	if file == "" {
		return "", time.Time{}, fmt.Errorf("filetoken: archivo vacío")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   file,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		File: file,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("filetoken: firmar: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma y expiración y devuelve el archivo autorizado.
func Parse(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("filetoken: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.File == "" || claims.File != claims.Subject {
		return "", fmt.Errorf("filetoken: claims inválidos")
	}
	return claims.File, nil
}

// Verify valida el token y exige que haya sido emitido para file.
func Verify(secret, tokenString, file string) error {
	got, err := Parse(secret, tokenString)
	if err != nil {
		return err
	}
	if got != file {
		return ErrFileMismatch
	}
	return nil
}
