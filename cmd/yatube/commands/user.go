package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"yatube/internal/database"
	"yatube/internal/logger"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/storage"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete USERNAME",
	Short: "Delete a user with all their posts, post images, comments and subscriptions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return fmt.Errorf("не удалось инициализировать MinIO: %w", err)
		}

		users := service.NewUserService(repository.NewRepository(db.DB), minioClient, logger.Default())
		user, err := users.GetByUsername(ctx, args[0])
		if err != nil {
			return err
		}
		if err := users.DeleteUser(ctx, user.UserID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Пользователь %s удален\n", user.Username)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userDeleteCmd)
}
