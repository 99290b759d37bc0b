package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/boxtube/internal/repositories"
	"github.com/desertthunder/boxtube/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignup registers a new account and logs it in.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	username := cmd.StringArg("username")
	password := cmd.String("password")
	confirm := cmd.String("confirm")

	if confirm != "" && confirm != password {
		return fmt.Errorf("%w: passwords do not match", shared.ErrInvalidInput)
	}

	user, err := r.users.Signup(username, password)
	if err != nil {
		return err
	}
	r.rescope()

	r.logger.Info("account created", "user", user.Username, "id", user.ID)
	r.writePlainln("✓ Signed up and logged in as %s", user.Username)
	return nil
}

// AuthLogin sets the active identity after verifying the credential.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	user, err := r.users.Login(cmd.StringArg("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	r.rescope()

	r.writePlainln("✓ Logged in as %s", user.Username)
	return nil
}

// AuthLogout clears the active identity and swaps back to anonymous collections.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if r.users.Current() == nil {
		r.writePlainln("Not logged in.")
		return nil
	}

	r.users.Logout()
	r.rescope()
	r.writePlainln("✓ Logged out")
	return nil
}

// AuthWhoami prints the active account.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	user := r.users.Current()
	if user == nil {
		r.writePlainln("Browsing anonymously.")
		return nil
	}

	if cmd.Bool("json") {
		// The credential hash stays out of command output.
		return r.writeJSON(map[string]any{
			"id":            user.ID,
			"username":      user.Username,
			"createdAt":     user.CreatedAt,
			"subscriptions": len(user.Subscriptions),
		}, true)
	}

	r.writePlainHeader("Account")
	r.writePlain("Username:      %s\n", user.Username)
	r.writePlain("ID:            %s\n", user.ID)
	r.writePlain("Created:       %s\n", user.CreatedAt.Format("2006-01-02"))
	r.writePlain("Subscriptions: %d\n", len(user.Subscriptions))
	return nil
}

// AuthUpdateProfile merges the provided fields into the active account.
func (r *Runner) AuthUpdateProfile(ctx context.Context, cmd *cli.Command) error {
	update := repositories.ProfileUpdate{
		Username:       cmd.String("username"),
		ProfilePicture: cmd.String("picture"),
	}
	if update.Username == "" && update.ProfilePicture == "" {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	user, err := r.users.UpdateProfile(update)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Profile updated for %s", user.Username)
	return nil
}

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Local account operations",
		Commands: []*cli.Command{
			{
				Name:      "signup",
				Usage:     "Create an account and log in",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (min 6 characters)", Required: true},
					&cli.StringFlag{Name: "confirm", Usage: "Confirm password"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:      "login",
				Usage:     "Log in to an existing account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "username"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Clear the active session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the active account",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output JSON"},
				},
				Action: r.AuthWhoami,
			},
			{
				Name:  "profile",
				Usage: "Update the active account's profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "New username"},
					&cli.StringFlag{Name: "picture", Usage: "New profile picture URL"},
				},
				Action: r.AuthUpdateProfile,
			},
		},
	}
}
