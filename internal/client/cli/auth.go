package cli

import (
	"context"
	"fmt"

	"github.com/edupilot/edupilot/internal/client/models"
	"github.com/edupilot/edupilot/internal/client/services"
	"github.com/edupilot/edupilot/internal/common"
)

// Register prompts for the registration form and creates an account.
// On success the new session is active immediately.
func (a *App) Register(ctx context.Context, _ []string) error {
	var in services.RegisterInput
	var err error

	if in.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	in.Password, in.ConfirmPassword = string(password), string(confirm)

	if in.DegreeProgram, err = getSimpleText(a.reader, "Degree program (optional)", a.out); err != nil {
		return err
	}
	if in.CareerGoal, err = getSimpleText(a.reader, "Career goal (optional)", a.out); err != nil {
		return err
	}
	year, err := GetOptionalInt(a.reader, "Current year (1-6)", "current_year", a.out)
	if err != nil {
		return a.fail(ctx, "register", err, MsgRegister)
	}
	semester, err := GetOptionalInt(a.reader, "Current semester (1-2)", "current_semester", a.out)
	if err != nil {
		return a.fail(ctx, "register", err, MsgRegister)
	}
	if year != nil {
		in.CurrentYear = *year
	}
	if semester != nil {
		in.CurrentSemester = *semester
	}

	user, err := a.authService.Register(ctx, in)
	return a.signedIn(ctx, "register", user, err, MsgRegister)
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.authService.Login(ctx, services.LoginInput{Email: email, Password: string(password)})
	return a.signedIn(ctx, "login", user, err, MsgLogin)
}

// signedIn reports the outcome of Login or Register. A user with an error
// means the session is live but was not persisted.
func (a *App) signedIn(ctx context.Context, op string, user *models.UserProfile, err error, fallback string) error {
	if user == nil {
		return a.fail(ctx, op, err, fallback)
	}
	if err != nil {
		a.warnPersist(ctx, err)
	}
	a.clearData()
	a.notice.Clear()
	fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	return nil
}

// Logout drops the session and every cached collection.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.authService.Logout(ctx)
	a.clearData()
	if err != nil {
		a.warnPersist(ctx, err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the profile, fetching it first when only the rehydration
// placeholder is known.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	user := a.session.Snapshot().User
	if user.IsEmpty() {
		fresh, err := a.authService.RefreshProfile(ctx)
		if fresh == nil {
			return a.fail(ctx, "whoami", err, MsgLoadProfile)
		}
		if err != nil {
			a.warnPersist(ctx, err)
		}
		user = fresh
	}
	printProfile(a.out, user)
	return nil
}

// Profile edits the profile. Empty answers keep the current values.
func (a *App) Profile(ctx context.Context, _ []string) error {
	var upd models.ProfileUpdate
	var err error

	if upd.FullName, err = GetOptionalText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if upd.DegreeProgram, err = GetOptionalText(a.reader, "Degree program", a.out); err != nil {
		return err
	}
	if upd.CareerGoal, err = GetOptionalText(a.reader, "Career goal", a.out); err != nil {
		return err
	}
	if upd.CurrentYear, err = GetOptionalInt(a.reader, "Current year (1-6)", "current_year", a.out); err != nil {
		return a.fail(ctx, "update profile", err, MsgUpdateProfile)
	}
	if upd.CurrentSemester, err = GetOptionalInt(a.reader, "Current semester (1-2)", "current_semester", a.out); err != nil {
		return a.fail(ctx, "update profile", err, MsgUpdateProfile)
	}

	user, err := a.authService.UpdateProfile(ctx, upd)
	if user == nil {
		return a.fail(ctx, "update profile", err, MsgUpdateProfile)
	}
	if err != nil {
		a.warnPersist(ctx, err)
	}
	fmt.Fprintln(a.out, "Profile updated")
	printProfile(a.out, user)
	return nil
}
