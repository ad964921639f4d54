package cli

import (
	"fmt"

	"github.com/kmahoney/tend/internal/models"
)

type ProfileCmd struct {
	Name   string `help:"Set the profile name."`
	Avatar string `help:"Set the avatar reference."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	if c.Name == "" && c.Avatar == "" {
		profile := repo.State().Profile
		if profile == nil {
			fmt.Println("No profile set.")
			return nil
		}
		fmt.Printf("Name:   %s\n", profile.Name)
		if profile.Avatar != "" {
			fmt.Printf("Avatar: %s\n", profile.Avatar)
		}
		return nil
	}

	profile := models.Profile{}
	if existing := repo.State().Profile; existing != nil {
		profile = *existing
	}
	if c.Name != "" {
		profile.Name = c.Name
	}
	if c.Avatar != "" {
		profile.Avatar = c.Avatar
	}

	if err := repo.SetProfile(profile); err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}

type ThemeCmd struct {
	Dark  bool `help:"Use the dark theme." xor:"mode"`
	Light bool `help:"Use the light theme." xor:"mode"`
}

func (c *ThemeCmd) Run(ctx *Context) error {
	repo, err := ctx.Repo()
	if err != nil {
		return err
	}

	if !c.Dark && !c.Light {
		theme := repo.State().Theme
		switch {
		case theme == nil:
			fmt.Println("Theme: default")
		case theme.Dark:
			fmt.Println("Theme: dark")
		default:
			fmt.Println("Theme: light")
		}
		return nil
	}

	if err := repo.SetTheme(c.Dark); err != nil {
		return err
	}
	if c.Dark {
		fmt.Println("Theme set to dark.")
	} else {
		fmt.Println("Theme set to light.")
	}
	return nil
}
