package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/purposeful/purposeful-backend/internal/domain"
	"github.com/purposeful/purposeful-backend/internal/service"
	"github.com/spf13/cobra"
)

var (
	defaultDomains = []string{"Education", "Healthcare", "Finance", "Environment", "Entertainment", "Social Impact"}
	defaultTechs   = []string{"Go", "Java", "Python", "TypeScript", "React", "PostgreSQL", "Machine Learning", "Mobile"}
	defaultTopics  = []string{"Accessibility", "Climate", "Community", "Productivity", "Open Source", "Startups"}
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default domains, technologies and topics",
	Long: `Insert the default tag set. Names that already exist are skipped, so
the command can be run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, repos, err := openRepositories()
		if err != nil {
			return err
		}
		tags := service.NewTagService(repos.Domain, repos.Technology, repos.Topic)
		ctx := cmd.Context()

		created, err := seedTags(ctx, domain.TagKindDomain, defaultDomains, func(ctx context.Context, name string) error {
			_, err := tags.CreateDomain(ctx, name)
			return err
		})
		if err != nil {
			return err
		}
		total := created

		created, err = seedTags(ctx, domain.TagKindTechnology, defaultTechs, func(ctx context.Context, name string) error {
			_, err := tags.CreateTech(ctx, name)
			return err
		})
		if err != nil {
			return err
		}
		total += created

		created, err = seedTags(ctx, domain.TagKindTopic, defaultTopics, func(ctx context.Context, name string) error {
			_, err := tags.CreateTopic(ctx, name)
			return err
		})
		if err != nil {
			return err
		}
		total += created

		fmt.Printf("Seeded %d tags\n", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedTags creates each name, treating a duplicate as already seeded
func seedTags(ctx context.Context, kind domain.TagKind, names []string, create func(context.Context, string) error) (int, error) {
	created := 0
	for _, name := range names {
		err := create(ctx, name)
		if err == nil {
			created++
			fmt.Printf("  + %s %s\n", kind, name)
			continue
		}
		if domainErr, ok := domain.AsError(err); ok && domainErr.Status == http.StatusBadRequest {
			continue
		}
		return created, fmt.Errorf("seeding %s %q: %w", kind, name, err)
	}
	return created, nil
}
