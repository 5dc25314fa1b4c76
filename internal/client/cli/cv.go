package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edupilot/edupilot/internal/client/client"
	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
)

func (a *App) CV(ctx context.Context, _ []string) error {
	cv, err := a.cvService.Current(ctx)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintln(a.out, "No CV yet. Use 'cvgen' to generate one.")
		return nil
	}
	if err != nil {
		return a.fail(ctx, "load cv", err, services.MsgLoadCV)
	}
	printCV(a.out, cv)
	return nil
}

// GenerateCV builds a CV from the profile, skills and projects.
func (a *App) GenerateCV(ctx context.Context, _ []string) error {
	cv, err := a.cvService.Generate(ctx)
	if err != nil {
		return a.fail(ctx, "generate cv", err, services.MsgGenerateCV)
	}
	fmt.Fprintln(a.out, "CV generated")
	printCV(a.out, cv)
	return nil
}

// FormatCV renders the stored CV in one of the supported layouts.
func (a *App) FormatCV(ctx context.Context, args []string) error {
	format, err := a.textArg(args, fmt.Sprintf("Format (%s)", strings.Join(models.CVFormats, ", ")))
	if err != nil {
		return err
	}

	cv, err := a.cvService.Current(ctx)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return a.fail(ctx, "format cv", err, services.MsgLoadCV)
	}

	text, err := a.cvService.GenerateFormatted(ctx, cv, format)
	if err != nil {
		return a.fail(ctx, "format cv", err, services.MsgFormatCV)
	}
	fmt.Fprintln(a.out, text)
	return nil
}
