package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// coolifyTokenEnv supplies the Coolify API token when --api-token is not given.
const coolifyTokenEnv = "COOLIFY_API_TOKEN"

func deploymentsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "Deploy applications through Coolify",
	}
	cmd.AddCommand(deploymentsListCmd(flags), deploymentsCreateCmd(flags))
	return cmd
}

func deploymentsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				deployments, err := a.api.ListDeployments(ctx)
				if err != nil {
					return err
				}
				return a.output(cmd, deployments, func(w io.Writer) error {
					t := newTable(w, "ID", "NAME", "REPO", "STATUS", "CONFIG", "URL")
					for _, d := range deployments {
						config, url := "-", "-"
						if d.CoolifyConfig != nil {
							config = d.CoolifyConfig.Name
						}
						if d.DeploymentURL != nil {
							url = *d.DeploymentURL
						}
						t.row(
							itoa(d.ID),
							a.sanitizer.Text(d.Name),
							view.RepoName(d.GithubURL),
							view.DeploymentBadge(d.Status).Label,
							config,
							url,
						)
					}
					return t.flush()
				})
			})
		},
	}
}

func deploymentsCreateCmd(flags *globalFlags) *cobra.Command {
	var in types.DeploymentCreate

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Deploy a GitHub repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.GithubURL) == "" || in.CoolifyConfigID <= 0 {
				return errors.New("--name, --github-url and --config are required")
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				created, err := a.api.CreateDeployment(ctx, in)
				if err != nil {
					return err
				}
				return a.output(cmd, created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Deployment %d (%s) is %s\n",
						created.ID, created.Name, view.DeploymentBadge(created.Status).Label)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Application name")
	cmd.Flags().StringVar(&in.GithubURL, "github-url", "", "Repository URL")
	cmd.Flags().Int64Var(&in.CoolifyConfigID, "config", 0, "Coolify config ID")
	cmd.Flags().StringVar(&in.EnvironmentVariables, "env", "", "Environment variables, KEY=value per line")

	return cmd
}

func coolifyCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coolify",
		Short: "Manage Coolify endpoints",
	}
	cmd.AddCommand(coolifyListCmd(flags), coolifyAddCmd(flags))
	return cmd
}

func coolifyListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Coolify endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				configs, err := a.api.ListCoolifyConfigs(ctx)
				if err != nil {
					return err
				}
				return a.output(cmd, configs, func(w io.Writer) error {
					t := newTable(w, "ID", "NAME", "API URL", "TEAM")
					for _, c := range configs {
						t.row(itoa(c.ID), c.Name, c.APIURL, orDash(c.TeamID))
					}
					return t.flush()
				})
			})
		},
	}
}

func coolifyAddCmd(flags *globalFlags) *cobra.Command {
	var in types.CoolifyConfigCreate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a Coolify endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.APIToken == "" {
				in.APIToken = os.Getenv(coolifyTokenEnv)
			}
			if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.APIURL) == "" || in.APIToken == "" {
				return errors.New("--name, --api-url and --api-token are required")
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				created, err := a.api.CreateCoolifyConfig(ctx, in)
				if err != nil {
					return err
				}
				return a.output(cmd, created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Added Coolify endpoint %d (%s)\n", created.ID, created.Name)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&in.APIURL, "api-url", "", "Coolify API URL")
	cmd.Flags().StringVar(&in.APIToken, "api-token", "", "Coolify API token (env "+coolifyTokenEnv+")")
	cmd.Flags().StringVar(&in.TeamID, "team-id", "", "Coolify team ID")

	return cmd
}
