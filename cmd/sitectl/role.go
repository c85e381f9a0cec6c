package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/megamounds/sitetrack-api/internal/config"
	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
)

func roleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role <email>",
		Short: "Set the role of a profile",
		Long: `Set the role of a profile directly in the database. This is how the
first Admin is created; after that admins manage roles through the API.

Examples:
  sitectl role ada@example.com
  sitectl role ada@example.com --role="Project Manager"
`,
		Args: cobra.ExactArgs(1),
		RunE: runRole,
	}

	cmd.Flags().String("role", string(models.RoleAdmin), "Role to assign")

	return cmd
}

func runRole(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("role")
	role, ok := models.ParseRole(raw)
	if !ok {
		return fmt.Errorf("unknown role %q", raw)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	user, err := services.NewUserService(db, nil, cfg.InviteExpiry).SetRoleByEmail(ctx, args[0], role)
	if errors.Is(err, services.ErrUserNotFound) {
		return fmt.Errorf("no user found with email: %s", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set role of %s to %s\n", user.Email, user.Role)
	return nil
}
