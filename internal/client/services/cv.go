package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/validation"
)

const (
	MsgLoadCV     = "Failed to load CV"
	MsgSaveCV     = "Failed to save profile. Please try again."
	MsgGenerateCV = "Failed to generate CV. Please try again."
	MsgFormatCV   = "Failed to format CV"
)

var formatRule = "oneof=" + strings.Join(models.CVFormats, " ")

// CVService reads, saves and renders the user's CV.
type CVService interface {
	Current(ctx context.Context) (models.CV, error)
	Save(ctx context.Context, cv models.CV) (models.CV, error)
	Generate(ctx context.Context) (models.CV, error)
	GenerateFormatted(ctx context.Context, cv models.CV, format string) (string, error)
}

type cvService struct {
	client client.Client
}

func NewCVService(c client.Client) CVService {
	return &cvService{client: c}
}

func (s *cvService) Current(ctx context.Context) (models.CV, error) {
	cv, err := s.client.CurrentCV(ctx)
	if err != nil {
		return models.CV{}, fmt.Errorf("current cv: %w", err)
	}
	return cv, nil
}

func (s *cvService) Save(ctx context.Context, cv models.CV) (models.CV, error) {
	cv.Email = strings.TrimSpace(cv.Email)
	if err := validation.Struct(cv); err != nil {
		return models.CV{}, err
	}
	saved, err := s.client.SaveCV(ctx, cv)
	if err != nil {
		return models.CV{}, fmt.Errorf("save cv: %w", err)
	}
	return saved, nil
}

func (s *cvService) Generate(ctx context.Context) (models.CV, error) {
	cv, err := s.client.GenerateCV(ctx)
	if err != nil {
		return models.CV{}, fmt.Errorf("generate cv: %w", err)
	}
	return cv, nil
}

// GenerateFormatted renders cv in one of models.CVFormats.
func (s *cvService) GenerateFormatted(ctx context.Context, cv models.CV, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if err := validation.Var("format", format, formatRule); err != nil {
		return "", err
	}
	if strings.TrimSpace(cv.FullName) == "" {
		return "", validation.New("cv", "Please generate a CV first")
	}
	res, err := s.client.FormatCV(ctx, models.CVFormatRequest{CVData: cv, Format: format})
	if err != nil {
		return "", fmt.Errorf("format cv: %w", err)
	}
	return res.FormattedCV, nil
}
