package command

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bloghub/internal/microservices/http-api/dto"
	"bloghub/internal/microservices/http-api/service"
)

var commentCmd = &cobra.Command{
	Use:     "comments",
	Aliases: []string{"comment"},
	Short:   "Comment commands",
	Long:    `Read a post's comment thread, reply to comments and delete your own.`,
}

var threadCmd = &cobra.Command{
	Use:   "thread [post-id]",
	Short: "Print a post's comment tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %w", err)
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		tree, err := optionalClient().PostComments(ctx, postID)
		if err != nil {
			return err
		}
		if len(tree.Comments) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}
		printThread(os.Stdout, tree.Comments, 0)
		fmt.Println(threadSummary(tree.Comments))
		return nil
	},
}

// printThread writes the forest depth first, two spaces per level.
func printThread(w io.Writer, nodes []*dto.CommentNode, depth int) {
	for _, n := range nodes {
		marker := ""
		if n.Orphan {
			marker = " (reply to a removed comment)"
		}
		fmt.Fprintf(w, "%s[%d] %s: %s%s\n", strings.Repeat("  ", depth), n.ID, n.AuthorName, n.Content, marker)
		printThread(w, n.Replies, depth+1)
	}
}

func threadSummary(forest []*dto.CommentNode) string {
	total := len(service.FlattenCommentTree(forest))
	return fmt.Sprintf("%d comments in %d threads", total, len(forest))
}

var createCommentCmd = &cobra.Command{
	Use:   "create [post-id] [content]",
	Short: "Comment on a post, or reply with --parent",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post ID: %w", err)
		}

		req := dto.CreateCommentDTO{PostID: postID, Content: strings.Join(args[1:], " ")}
		req.AuthorName, _ = cmd.Flags().GetString("name")
		if parent, _ := cmd.Flags().GetInt64("parent"); parent > 0 {
			req.ParentID = &parent
		}
		if email, _ := cmd.Flags().GetString("email"); email != "" {
			req.AuthorEmail = &email
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		comment, err := optionalClient().CreateComment(ctx, &req)
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		fmt.Println("✓ Comment created successfully!")
		fmt.Printf("Comment ID: %d\n", comment.ID)
		fmt.Printf("Created at: %s\n", comment.CreatedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "delete [comment-id]",
	Short: "Delete your comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment ID: %w", err)
		}
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		ctx, cancel := requestContext(cmd)
		defer cancel()

		if err := c.DeleteComment(ctx, commentID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		fmt.Println("✓ Comment deleted. Its replies are now top-level comments.")
		return nil
	},
}

func init() {
	commentCmd.AddCommand(threadCmd, createCommentCmd, deleteCommentCmd)

	createCommentCmd.Flags().StringP("name", "n", "", "display name")
	createCommentCmd.Flags().StringP("email", "e", "", "email (optional)")
	createCommentCmd.Flags().Int64P("parent", "p", 0, "comment to reply to")
	createCommentCmd.MarkFlagRequired("name")
}
