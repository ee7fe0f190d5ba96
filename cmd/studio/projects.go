//go:build !js || !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecraft/studio/internal/api"
)

var projectInput api.ProjectInput

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(projects)
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		project, err := client.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(project)
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	RunE: func(cmd *cobra.Command, args []string) error {
		if projectInput.Name == "" {
			return fmt.Errorf("--name is required")
		}
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		project, err := client.CreateProject(cmd.Context(), projectInput)
		if err != nil {
			return err
		}
		return printJSON(project)
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if err := client.DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	projectsCreateCmd.Flags().StringVar(&projectInput.Name, "name", "", "project name")
	projectsCreateCmd.Flags().StringVar(&projectInput.Slug, "slug", "", "project slug")
	projectsCreateCmd.Flags().StringVar(&projectInput.Description, "description", "", "project description")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)
}
