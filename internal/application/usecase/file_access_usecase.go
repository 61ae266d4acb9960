package usecase

import (
	"crypto/subtle"
	"time"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/pkg/filetoken"
)

// FileAccessConfig secretos y vigencia de los tokens de descarga.
type FileAccessConfig struct {
	IssuerKey   string // quien lo presenta puede emitir tokens
	TokenSecret string
	Issuer      string
	TTL         time.Duration
}

// FileAccessUseCase emite y valida tokens de descarga con alcance a un archivo.
type FileAccessUseCase struct {
	images ports.ImageStore
	cfg    FileAccessConfig
}

// NewFileAccessUseCase construye el caso de uso.
func NewFileAccessUseCase(images ports.ImageStore, cfg FileAccessConfig) *FileAccessUseCase {
	return &FileAccessUseCase{images: images, cfg: cfg}
}

// Issue emite un token para file. ErrForbidden si key no coincide con la clave emisora.
// El archivo debe existir.
func (uc *FileAccessUseCase) Issue(key, file string) (*dto.FileTokenResponse, error) {
	if uc.cfg.IssuerKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(uc.cfg.IssuerKey)) != 1 {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.images.Resolve(file); err != nil {
		return nil, err
	}
	tok, exp, err := filetoken.Generate(uc.cfg.TokenSecret, file, uc.cfg.Issuer, uc.cfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.FileTokenResponse{File: file, Token: tok, ExpiresAt: exp}, nil
}

// Resolve valida el token para file y devuelve la ruta en disco.
// Orden: nombre inválido → ErrInvalidInput; token inválido → ErrForbidden; archivo ausente → ErrNotFound.
func (uc *FileAccessUseCase) Resolve(token, file string) (string, error) {
	if err := validFileName(file); err != nil {
		return "", err
	}
	if token == "" || filetoken.Verify(uc.cfg.TokenSecret, token, file) != nil {
		return "", domain.ErrForbidden
	}
	return uc.images.Resolve(file)
}

// validFileName comprueba el nombre sin tocar el disco (el store lo vuelve a validar).
func validFileName(name string) error {
	if name == "" || name == "." || name == ".." || name[0] == '.' {
		return domain.ErrInvalidInput
	}
	for _, r := range name {
		if r == '/' || r == '\\' || r == 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
