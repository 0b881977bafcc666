package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/melodica-app/melodica/internal/auth"
	"github.com/melodica-app/melodica/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// printErr turns the service sentinels into user-facing messages.
func printErr(err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		fmt.Println("Invalid input:", err)
	case errors.Is(err, common.ErrInvalidCredentials):
		fmt.Println("Invalid email or password.")
	case errors.Is(err, common.ErrDuplicateEmail):
		fmt.Println("That email is already registered.")
	default:
		fmt.Println("Something went wrong:", err)
	}
}

func (a *App) register(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return
	}

	_, err = a.auth.Register(ctx, auth.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		printErr(err)
		return
	}

	// registration never signs the user in, mirror that in the prompt state
	a.user = nil
	fmt.Println("Account created. Please log in.")
}

func (a *App) login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return
	}

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		printErr(err)
		return
	}

	a.user = user
	fmt.Printf("Welcome, %s!\n", user.Username)
}

func (a *App) resetPassword(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter the account email", os.Stdout)
	if err != nil {
		return
	}
	username, err := getSimpleText(a.reader, "Enter the account username", os.Stdout)
	if err != nil {
		return
	}
	password, err := getPassword("New password", os.Stdout)
	if err != nil {
		return
	}
	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return
	}

	err = a.auth.ResetPassword(ctx, auth.ResetPasswordInput{
		Email:                email,
		VerificationUsername: username,
		NewPassword:          password,
		ConfirmNewPassword:   confirm,
	})
	if err != nil {
		printErr(err)
		return
	}

	fmt.Println("Password reset. Please log in.")
}

func (a *App) logout(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in.")
		return
	}
	if err := a.auth.Logout(ctx); err != nil {
		printErr(err)
		return
	}
	a.user = nil
	fmt.Println("Logged out.")
}
