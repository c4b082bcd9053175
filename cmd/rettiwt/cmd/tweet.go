package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tweetCmd = &cobra.Command{
	Use:   "tweet",
	Short: "Tweet commands",
}

var tweetDetailsCmd = &cobra.Command{
	Use:   "details <id>",
	Short: "Fetch a single tweet by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		tweet, err := client.GetTweetDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(tweet)
	},
}

var tweetSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search latest tweets (requires API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cursor, _ := cmd.Flags().GetString("cursor")

		client, err := newClient()
		if err != nil {
			return err
		}
		page, err := client.SearchTweets(cmd.Context(), args[0], count, cursor)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

var tweetRetweetersCmd = &cobra.Command{
	Use:   "retweeters <id>",
	Short: "List users who retweeted a tweet (requires API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		cursor, _ := cmd.Flags().GetString("cursor")

		client, err := newClient()
		if err != nil {
			return err
		}
		page, err := client.GetRetweeters(cmd.Context(), args[0], count, cursor)
		if err != nil {
			return err
		}
		return printJSON(page)
	},
}

var tweetPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a tweet (requires API key)",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		replyTo, _ := cmd.Flags().GetString("reply-to")
		if text == "" {
			return fmt.Errorf("--text is required")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.CreateTweet(cmd.Context(), text, replyTo); err != nil {
			return err
		}
		fmt.Println("posted")
		return nil
	},
}

var tweetLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a tweet (requires API key)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.FavoriteTweet(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("liked")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tweetCmd)
	tweetCmd.AddCommand(tweetDetailsCmd)
	tweetCmd.AddCommand(tweetSearchCmd)
	tweetCmd.AddCommand(tweetRetweetersCmd)
	tweetCmd.AddCommand(tweetPostCmd)
	tweetCmd.AddCommand(tweetLikeCmd)

	tweetSearchCmd.Flags().IntP("count", "n", 20, "tweets per page")
	tweetSearchCmd.Flags().String("cursor", "", "pagination cursor from a previous page")
	tweetRetweetersCmd.Flags().IntP("count", "n", 20, "users per page")
	tweetRetweetersCmd.Flags().String("cursor", "", "pagination cursor from a previous page")
	tweetPostCmd.Flags().StringP("text", "t", "", "tweet text")
	tweetPostCmd.Flags().String("reply-to", "", "tweet ID to reply to")
}
