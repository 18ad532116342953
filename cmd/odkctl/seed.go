package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/incatools/odkctl/internal/config"
	"github.com/incatools/odkctl/internal/seeding"
)

type seedFlags struct {
	configPath     string
	outDir         string
	dependencies   []string
	title          string
	user           string
	update         bool
	skipGit        bool
	skipFirstBuild bool
	gitName        string
	gitEmail       string
}

func newSeedCommand() *cobra.Command {
	var flags seedFlags

	cmd := &cobra.Command{
		Use:   "seed [REPO]",
		Short: "Seed a new ontology project repository, or re-apply templates to an existing one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "C", "", "path to a project configuration file")
	cmd.Flags().StringVarP(&flags.outDir, "outdir", "D", "", "target directory (default target/<id>)")
	cmd.Flags().StringArrayVarP(&flags.dependencies, "dependency", "d", nil, "import term source, repeatable")
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "project title")
	cmd.Flags().StringVarP(&flags.user, "user", "u", "", "github organization or user")
	cmd.Flags().BoolVar(&flags.update, "update", false, "update an existing checkout instead of creating a fresh tree")
	cmd.Flags().BoolVarP(&flags.skipGit, "skipgit", "g", false, "skip git initialization and commits")
	cmd.Flags().BoolVar(&flags.skipFirstBuild, "skip-first-build", false, "skip running the generated workflow after seeding")
	cmd.Flags().StringVarP(&flags.gitName, "gitname", "n", "", "git author name for the initial commit")
	cmd.Flags().StringVarP(&flags.gitEmail, "gitemail", "e", "", "git author email for the initial commit")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string, flags seedFlags) error {
	ov := config.Overrides{
		Title:   flags.title,
		Org:     flags.user,
		OutDir:  flags.outDir,
		Imports: flags.dependencies,
	}
	if len(args) == 1 {
		ov.ID = args[0]
		ov.Repo = args[0]
	}

	cfg, err := config.Load(flags.configPath, ov)
	if err != nil {
		return err
	}

	mode := seeding.ModeCreate
	if flags.update {
		mode = seeding.ModeUpdate
	}
	ctl := seeding.NewController()
	result, err := ctl.Seed(cmd.Context(), cfg, seeding.Options{
		Mode:           mode,
		ConfigPath:     flags.configPath,
		SkipGit:        flags.skipGit,
		SkipFirstBuild: flags.skipFirstBuild,
		GitName:        flags.gitName,
		GitEmail:       flags.gitEmail,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s (%d files)\n", result.TargetRoot, len(result.Rendered.Files))
	if flags.skipGit {
		fmt.Fprintln(cmd.OutOrStdout(), "Repository files have been written, but no git commands have been run.")
	} else if mode == seeding.ModeCreate {
		printNextSteps(cmd, cfg, result.TargetRoot)
	}
	return nil
}

func printNextSteps(cmd *cobra.Command, cfg *config.ProjectConfig, root string) {
	out := cmd.OutOrStdout()
	org := cfg.GithubOrg
	if org == "" {
		org = "OWNER"
	}
	fmt.Fprintln(out, "\nNEXT STEPS:")
	fmt.Fprintf(out, " 0. Examine %s and check it meets your expectations.\n", root)
	fmt.Fprintln(out, " 1. Go to: https://github.com/new")
	fmt.Fprintf(out, " 2. Create the repository %s/%s (no README, you already have one).\n", org, cfg.Repo)
	fmt.Fprintf(out, " 3. cd %s\n", root)
	fmt.Fprintf(out, "    git remote add origin git@github.com:%s/%s.git\n", org, cfg.Repo)
	fmt.Fprintf(out, "    git push -u origin %s\n", cfg.GitMainBranch)
}
