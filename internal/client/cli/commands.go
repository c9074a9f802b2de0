package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/plated/internal/client/services"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/common"
)

var errUsage = errors.New("usage")

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// Login points the user at the OAuth sign-in page.
func (a *App) Login(ctx context.Context) error {
	a.Navigate(a.routes.Login)
	return nil
}

// Register consumes the handoff token from the sign-in redirect. It is
// taken from args, or read without echo when no argument is given.
func (a *App) Register(ctx context.Context, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		secret, err := getSecret(a.out, "Paste the redirect URL or token")
		if err != nil {
			return err
		}
		raw = string(secret)
		common.WipeByteArray(secret)
	}

	reg := services.NewRegistrationFlow(a.api, a.store, a, a.newChecker(), a.routes, a.log)
	a.mu.Lock()
	a.route = registerRoute
	a.reg = reg
	a.mu.Unlock()

	if err := reg.Bootstrap(ctx, ExtractHandoffToken(raw)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Complete your profile: set username <name>, set name <display name>, set pic <url>, then submit.")
	a.printRegistration(reg)
	return nil
}

// Set edits one field of the form on the current screen.
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: set username|name|pic <value>", errUsage)
	}
	field, value := args[0], strings.Join(args[1:], " ")

	if reg := a.registration(); reg != nil {
		switch field {
		case "username":
			fmt.Fprintln(a.out, "username:", reg.SetUsername(ctx, value))
		case "name":
			reg.SetDisplayName(value)
		case "pic":
			reg.SetProfilePic(value)
		default:
			return fmt.Errorf("%w: unknown field %q", errUsage, field)
		}
		return nil
	}

	var err error
	switch field {
	case "username":
		var u string
		if u, err = a.profile.SetUsername(ctx, value); err == nil {
			fmt.Fprintln(a.out, "username:", u)
		}
	case "name":
		err = a.profile.SetDisplayName(value)
	case "pic":
		err = a.profile.SetProfilePic(value)
	default:
		return fmt.Errorf("%w: unknown field %q", errUsage, field)
	}
	return err
}

// Check waits for the pending availability lookup and prints the form.
func (a *App) Check(ctx context.Context) error {
	if reg := a.registration(); reg != nil {
		if err := reg.Checker().Wait(ctx); err != nil {
			return err
		}
		a.printRegistration(reg)
		return nil
	}
	if err := a.profile.Checker().Wait(ctx); err != nil {
		return err
	}
	a.printProfile(a.profile.View())
	return nil
}

// Submit completes registration and shows the new profile.
func (a *App) Submit(ctx context.Context) error {
	reg := a.registration()
	if reg == nil {
		return services.ErrNotBootstrapped
	}
	if err := reg.Submit(ctx); err != nil {
		if reg.Error() == "" {
			return err
		}
		a.printRegistration(reg)
		return nil
	}
	fmt.Fprintln(a.out, "Registration complete.")
	return a.Profile(ctx)
}

// Profile loads and shows the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	a.mu.Lock()
	a.route = a.routes.Profile
	a.reg = nil
	a.mu.Unlock()

	// Failures are either rendered by the view or already handled by a
	// redirect to login.
	if err := a.profile.Load(ctx); err != nil {
		a.log.Debug(ctx, "profile not loaded", "err", err)
	}
	a.printProfile(a.profile.View())
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	if err := a.profile.Edit(); err != nil {
		return err
	}
	a.printProfile(a.profile.View())
	return nil
}

func (a *App) Save(ctx context.Context) error {
	err := a.profile.Save(ctx)
	v := a.profile.View()
	a.printProfile(v)
	if err != nil && v.Error == "" {
		return err
	}
	return nil
}

func (a *App) Cancel(ctx context.Context) error {
	if err := a.profile.Cancel(); err != nil {
		return err
	}
	a.printProfile(a.profile.View())
	return nil
}

// Whoami prints what the stored token says about the user. The claims
// are unverified and shown for display only.
func (a *App) Whoami(ctx context.Context) error {
	claims, err := session.CurrentClaims(ctx, a.store)
	if err != nil {
		return err
	}
	if claims == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.out, "email:        %s\n", claims.Email)
	fmt.Fprintf(a.out, "display name: %s\n", claims.DisplayName)
	if claims.ProfilePic != "" {
		fmt.Fprintf(a.out, "picture:      %s\n", claims.ProfilePic)
	}
	if exp, ok := claims.ExpiresAtUnix(); ok {
		fmt.Fprintf(a.out, "expires:      %s\n", time.Unix(exp, 0).Format(time.DateTime))
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	return a.profile.Logout(ctx)
}

// status is shown in the prompt.
func (a *App) status(ctx context.Context) string {
	var parts []string
	if r := a.currentRoute(); r != "" {
		parts = append(parts, r)
	}
	if a.isLoggedIn(ctx) {
		if c, err := session.CurrentClaims(ctx, a.store); err == nil && c != nil && c.Email != "" {
			parts = append(parts, c.Email)
		}
	}
	return strings.Join(parts, " ")
}
