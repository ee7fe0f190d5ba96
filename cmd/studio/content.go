//go:build !js || !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecraft/studio/internal/api"
)

var articlesProjectID string

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "Manage articles",
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles, optionally for one project",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		articles, err := client.ListArticles(cmd.Context(), articlesProjectID)
		if err != nil {
			return err
		}
		return printJSON(articles)
	},
}

var articlesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		article, err := client.GetArticle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(article)
	},
}

var articlesPublishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		article, err := client.PublishArticle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(article)
	},
}

var contributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "Manage contributors",
}

var contributorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contributors",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		contributors, err := client.ListContributors(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(contributors)
	},
}

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Inspect forms and their submissions",
}

var formsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all forms",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		forms, err := client.ListForms(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(forms)
	},
}

var formsSubmissionsCmd = &cobra.Command{
	Use:   "submissions <form-id>",
	Short: "List submissions for a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		submissions, err := client.ListFormSubmissions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(submissions)
	},
}

var socialLinks api.SocialLinks

var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Manage the site-wide social link configuration",
}

var socialGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show social links",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		links, err := client.GetSocialLinks(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(links)
	},
}

var socialSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace social links with the given flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		links, err := client.SetSocialLinks(cmd.Context(), socialLinks)
		if err != nil {
			return err
		}
		fmt.Println("Updated.")
		return printJSON(links)
	},
}

func init() {
	articlesListCmd.Flags().StringVar(&articlesProjectID, "project", "", "limit to one project id")
	articlesCmd.AddCommand(articlesListCmd)
	articlesCmd.AddCommand(articlesGetCmd)
	articlesCmd.AddCommand(articlesPublishCmd)

	contributorsCmd.AddCommand(contributorsListCmd)

	formsCmd.AddCommand(formsListCmd)
	formsCmd.AddCommand(formsSubmissionsCmd)

	socialSetCmd.Flags().StringVar(&socialLinks.Twitter, "twitter", "", "twitter URL")
	socialSetCmd.Flags().StringVar(&socialLinks.Instagram, "instagram", "", "instagram URL")
	socialSetCmd.Flags().StringVar(&socialLinks.LinkedIn, "linkedin", "", "linkedin URL")
	socialSetCmd.Flags().StringVar(&socialLinks.YouTube, "youtube", "", "youtube URL")
	socialSetCmd.Flags().StringVar(&socialLinks.Facebook, "facebook", "", "facebook URL")
	socialCmd.AddCommand(socialGetCmd)
	socialCmd.AddCommand(socialSetCmd)
}
