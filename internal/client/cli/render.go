package cli

import (
	"fmt"

	"github.com/dmitrijs2005/plated/internal/client/services"
)

const (
	msgChecking  = "Checking availability..."
	msgAvailable = "Username is available"
)

// availabilityLine is the feedback shown under the username field, or ""
// when there is nothing to say.
func availabilityLine(username string, v services.Verdict, checking bool) string {
	if len(username) < services.MinUsernameLength {
		return ""
	}
	if checking {
		return msgChecking
	}
	switch v {
	case services.VerdictAvailable:
		return msgAvailable
	case services.VerdictTaken:
		return services.MsgUsernameTaken
	default:
		return ""
	}
}

func (a *App) printRegistration(reg *services.RegistrationFlow) {
	d := reg.Draft()
	v, _ := reg.Availability()

	fmt.Fprintf(a.out, "  username:     %s\n", d.Username)
	if line := availabilityLine(d.Username, v, reg.Checker().Checking()); line != "" {
		fmt.Fprintf(a.out, "                %s\n", line)
	}
	fmt.Fprintf(a.out, "  display name: %s\n", d.DisplayName)
	fmt.Fprintf(a.out, "  picture:      %s\n", d.ProfilePic)
	if msg := reg.Error(); msg != "" {
		fmt.Fprintln(a.out, "Error:", msg)
	}
	if !reg.CanSubmit() {
		fmt.Fprintln(a.out, "(submit unavailable)")
	}
}

func (a *App) printProfile(v services.ProfileView) {
	switch v.State {
	case services.StateLoading:
		return

	case services.StateLoadFailed:
		fmt.Fprintln(a.out, "Error:", v.Error)
		fmt.Fprintln(a.out, "Run 'profile' to try again.")

	case services.StateViewing:
		p := v.Profile
		fmt.Fprintf(a.out, "  username:     %s\n", p.Username)
		fmt.Fprintf(a.out, "  display name: %s\n", p.DisplayName)
		fmt.Fprintf(a.out, "  email:        %s\n", p.Email)
		if p.ProfilePic != "" {
			fmt.Fprintf(a.out, "  picture:      %s\n", p.ProfilePic)
		}
		if v.Success != "" {
			fmt.Fprintln(a.out, v.Success)
		}

	case services.StateEditing:
		d := v.Draft
		fmt.Fprintf(a.out, "  username:     %s\n", d.Username)
		if d.Username != v.Profile.Username {
			if line := availabilityLine(d.Username, v.Verdict, v.Checking); line != "" {
				fmt.Fprintf(a.out, "                %s\n", line)
			}
		}
		fmt.Fprintf(a.out, "  display name: %s\n", d.DisplayName)
		fmt.Fprintf(a.out, "  picture:      %s\n", d.ProfilePic)
		if v.Error != "" {
			fmt.Fprintln(a.out, "Error:", v.Error)
		}
		fmt.Fprintln(a.out, "(editing: set username|name|pic <value>, save, cancel)")
	}
}
