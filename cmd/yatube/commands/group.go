package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"yatube/internal/database"
	"yatube/internal/repository"
	"yatube/internal/service"
)

var (
	groupTitle       string
	groupDescription string
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create SLUG",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroups(cmd.Context(), func(ctx context.Context, groups service.GroupService) error {
			group, err := groups.CreateGroup(ctx, service.GroupForm{
				Title:       groupTitle,
				Slug:        args[0],
				Description: groupDescription,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Группа %q создана (%s)\n", group.Title, group.Slug)
			return nil
		})
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroups(cmd.Context(), func(ctx context.Context, groups service.GroupService) error {
			list, err := groups.ListGroups(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE\tDESCRIPTION")
			for _, g := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", g.Slug, g.Title, g.Description)
			}
			return w.Flush()
		})
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "Delete a group; its posts are kept without a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withGroups(cmd.Context(), func(ctx context.Context, groups service.GroupService) error {
			if err := groups.DeleteGroup(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Группа %s удалена\n", args[0])
			return nil
		})
	},
}

func withGroups(ctx context.Context, fn func(context.Context, service.GroupService) error) error {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	groups := service.NewGroupService(repository.NewGroupRepository(db.DB), service.NewValidator())
	return fn(ctx, groups)
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "Group title")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	_ = groupCreateCmd.MarkFlagRequired("title")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupDeleteCmd)
}
