package dto

import "time"

// FileTokenResponse token de descarga con alcance a un archivo.
type FileTokenResponse struct {
	File      string    `json:"file"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
