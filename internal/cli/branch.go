package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Section browsing commands",
	}

	cmd.AddCommand(newSectionListCmd())
	cmd.AddCommand(newSectionBranchesCmd())

	return cmd
}

func newSectionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List forum sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Section
			if err := client.Get("/api/v1/sections", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSectionBranchesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branches <section-id>",
		Short: "List the branches in a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Branch
			if err := client.Get("/api/v1/sections/"+args[0]+"/branches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Branch browsing commands",
	}

	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchGetCmd())
	cmd.AddCommand(newBranchTopicsCmd())

	return cmd
}

func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all branches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Branch
			if err := client.Get("/api/v1/branches", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBranchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <branch-id>",
		Short: "Show a branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Branch
			if err := client.Get("/api/v1/branches/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBranchTopicsCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "topics <branch-id>",
		Short: "List a branch's topics, newest activity first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/branches/%s/topics?page=%d", args[0], page)

			var result TopicPage
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")

	return cmd
}
