package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bloghub/cmd/blogctl/command/client"
)

var postCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"post"},
	Short:   "Browse posts",
}

var listPostsCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f client.PostFilter
		f.Page, _ = cmd.Flags().GetInt("page")
		f.Size, _ = cmd.Flags().GetInt("size")
		f.Search, _ = cmd.Flags().GetString("search")
		f.Category, _ = cmd.Flags().GetString("category")
		f.Tag, _ = cmd.Flags().GetString("tag")
		f.Date, _ = cmd.Flags().GetString("date")

		ctx, cancel := requestContext(cmd)
		defer cancel()

		page, err := client.NewHTTPClient(apiURL).ListPosts(ctx, f)
		if err != nil {
			return err
		}

		fmt.Printf("Page %d (%d of %d posts)\n", page.Page, len(page.Posts), page.Total)
		for _, p := range page.Posts {
			fmt.Printf("  [%d] %s  %s  %s  views:%d likes:%d\n", p.ID, p.Date, p.Title, p.Category, p.Views, p.Likes)
		}
		return nil
	},
}

var showPostCmd = &cobra.Command{
	Use:   "show [post-id]",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %w", err)
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		p, err := client.NewHTTPClient(apiURL).GetPost(ctx, id)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s by %s in %s [%s]\n\n%s\n", p.Title, p.Date, p.Author, p.Category, strings.Join(p.Tags, ", "), p.Content)
		return nil
	},
}

var likePostCmd = &cobra.Command{
	Use:   "like [post-id]",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %w", err)
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := client.NewHTTPClient(apiURL).LikePost(ctx, id); err != nil {
			return err
		}
		fmt.Println("✓ Liked")
		return nil
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Show posts grouped by year",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := requestContext(cmd)
		defer cancel()

		archive, err := client.NewHTTPClient(apiURL).Archive(ctx)
		if err != nil {
			return err
		}
		for _, year := range archive.Archive {
			fmt.Printf("%d\n", year.Year)
			for _, p := range year.Posts {
				fmt.Printf("  %s  [%d] %s\n", p.Date, p.ID, p.Title)
			}
		}
		return nil
	},
}

func init() {
	postCmd.AddCommand(listPostsCmd, showPostCmd, likePostCmd, archiveCmd)

	listPostsCmd.Flags().Int("page", 1, "page number")
	listPostsCmd.Flags().Int("size", 10, "posts per page (max 100)")
	listPostsCmd.Flags().StringP("search", "s", "", "search title, summary and content")
	listPostsCmd.Flags().StringP("category", "c", "", "category name")
	listPostsCmd.Flags().StringP("tag", "t", "", "tag name")
	listPostsCmd.Flags().StringP("date", "d", "", "exact date, YYYY-MM-DD")
}
