// Package upload stores user profile pictures on the image host.
package upload

import (
	"context"
	"fmt"

	"stockstores-be/internal/apperr"
	"stockstores-be/internal/logger"
	"stockstores-be/internal/user"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// MaxFileSize is the largest accepted picture, in bytes.
const MaxFileSize = 1 << 20

var allowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrNoFile       = apperr.New(apperr.Validation, "No subistes ninguna imagen. Intentelo nuevamente.")
	ErrFileTooLarge = apperr.New(apperr.Validation, "La imagen no puede superar 1MB.")
	ErrInvalidType  = apperr.New(apperr.Validation, "Imagen invalida (solo .png, .jpeg y .webp permitido)")
	ErrHostFailed   = apperr.New(apperr.Upstream, "Error al subir la imagen. Por favor intentelo de nuevo.")
)

type ImageHost interface {
	DeletePrefix(ctx context.Context, prefix string) error
	Upload(ctx context.Context, folder, filename string, data []byte) (string, error)
}

type UserStore interface {
	Get(ctx context.Context, id string) (*user.User, error)
	SetPicture(ctx context.Context, id, url string) (*user.User, error)
}

type Service interface {
	UploadUserPicture(ctx context.Context, userID, filename string, data []byte) (string, error)
}

type service struct {
	users UserStore
	host  ImageHost
}

func NewService(users UserStore, host ImageHost) Service {
	return &service{users: users, host: host}
}

// CheckImage validates size and sniffed content type of data.
func CheckImage(data []byte) error {
	if len(data) == 0 {
		return ErrNoFile
	}
	if len(data) > MaxFileSize {
		return ErrFileTooLarge
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedTypes {
		if mt.Is(allowed) {
			return nil
		}
	}
	return ErrInvalidType
}

// UploadUserPicture replaces the user's picture and returns its public URL.
// The user is looked up before anything is sent to the image host.
func (s *service) UploadUserPicture(ctx context.Context, userID, filename string, data []byte) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UploadUserPicture"),
		zap.String("user_id", userID),
	)

	if err := CheckImage(data); err != nil {
		return "", err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return "", err
	}

	folder := fmt.Sprintf("users/%s", userID)

	if err := s.host.DeletePrefix(ctx, folder+"/"); err != nil {
		log.Error("failed to clear previous pictures", zap.Error(err))
		return "", ErrHostFailed
	}

	publicURL, err := s.host.Upload(ctx, folder, filename, data)
	if err != nil {
		log.Error("image upload failed", zap.Error(err))
		return "", ErrHostFailed
	}

	if _, err := s.users.SetPicture(ctx, userID, publicURL); err != nil {
		return "", err
	}

	log.Info("user picture updated", zap.String("url", publicURL))
	return publicURL, nil
}
