package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and create research projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your projects",
	RunE:  runProjectsList,
}

var projectDescription string

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCreateCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "project description")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	if err := requireAuth(session); err != nil {
		return err
	}

	projects, err := newClient(cfg, session).Projects(context.Background())
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with `litscout projects create <name>`.")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%-24s %s\n", p.Name, p.Path)
	}
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	if err := requireAuth(session); err != nil {
		return err
	}

	name := args[0]
	if err := newClient(cfg, session).CreateProject(context.Background(), name, projectDescription); err != nil {
		return err
	}

	newNotifier().Success("project %s created", name)
	return nil
}
