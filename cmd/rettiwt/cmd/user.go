package cmd

import (
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "User commands",
}

var userDetailsCmd = &cobra.Command{
	Use:   "details <username>",
	Short: "Fetch a user profile by handle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		user, err := client.GetUserByUsername(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

var userTimelineCmd = &cobra.Command{
	Use:   "timeline <user-id>",
	Short: "Fetch a user's tweets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cursor, _ := cmd.Flags().GetString("cursor")

		client, err := newClient()
		if err != nil {
			return err
		}
		page, err := client.GetUserTimeline(cmd.Context(), args[0], count, cursor)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

var userFollowersCmd = &cobra.Command{
	Use:   "followers <user-id>",
	Short: "List a user's followers (requires API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cursor, _ := cmd.Flags().GetString("cursor")

		client, err := newClient()
		if err != nil {
			return err
		}
		page, err := client.GetFollowers(cmd.Context(), args[0], count, cursor)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

var userFollowingCmd = &cobra.Command{
	Use:   "following <user-id>",
	Short: "List who a user follows (requires API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cursor, _ := cmd.Flags().GetString("cursor")

		client, err := newClient()
		if err != nil {
			return err
		}
		page, err := client.GetFollowing(cmd.Context(), args[0], count, cursor)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userDetailsCmd)
	userCmd.AddCommand(userTimelineCmd)
	userCmd.AddCommand(userFollowersCmd)
	userCmd.AddCommand(userFollowingCmd)

	for _, c := range []*cobra.Command{userTimelineCmd, userFollowersCmd, userFollowingCmd} {
		c.Flags().IntP("count", "n", 20, "items per page")
		c.Flags().String("cursor", "", "pagination cursor from a previous page")
	}
}
