package cli

import (
	"context"
	"fmt"
	"os"
)

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Println("Please log in first.")
		return false
	}
	return true
}

func (a *App) showProfile(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	image, err := a.auth.ProfileImage(ctx)
	if err != nil {
		printErr(err)
		return
	}
	if image == "" {
		image = "(default)"
	}

	fmt.Println("Username:", a.user.Username)
	fmt.Println("Email:   ", a.user.Email)
	fmt.Println("Picture: ", image)
}

func (a *App) editEmail(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	email, err := getSimpleText(a.reader, "New email", os.Stdout)
	if err != nil {
		return
	}

	updated, err := a.auth.UpdateEmail(ctx, a.user.ID, email)
	if err != nil {
		printErr(err)
		return
	}

	a.user = updated
	fmt.Println("Email updated.")
}

func (a *App) editUsername(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	username, err := getSimpleText(a.reader, "New username", os.Stdout)
	if err != nil {
		return
	}

	updated, err := a.auth.UpdateUsername(ctx, a.user.ID, username)
	if err != nil {
		printErr(err)
		return
	}

	a.user = updated
	fmt.Println("Username updated.")
}

func (a *App) changePassword(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	oldPassword, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return
	}
	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return
	}

	if err := a.auth.ChangePassword(ctx, a.user.Email, oldPassword, newPassword); err != nil {
		printErr(err)
		return
	}

	fmt.Println("Password changed.")
}

func (a *App) pickImage(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	ref, err := getSimpleText(a.reader, "Image reference (file path or asset:<name>, empty for default)", os.Stdout)
	if err != nil {
		return
	}

	if err := a.auth.SetProfileImage(ctx, ref); err != nil {
		printErr(err)
		return
	}

	fmt.Println("Profile picture updated.")
}
