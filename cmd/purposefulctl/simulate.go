package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagAPIURL      string
	flagSimUsers    int
	flagSimIdeas    int
	flagSimApproved bool
)

type simUser struct {
	user  *User
	token string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Fill a running server with fake users, ideas, reactions and requests",
	Long: `Drive a running server over its HTTP API. Each fake user creates
--ideas ideas, then every user high-fives and asks to join every idea they
do not own. Owners answer the requests when --answer is set.

Requires the tags to exist, run "purposefulctl seed" first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagSimUsers < 1 || flagSimUsers > 50 {
			return fmt.Errorf("--users must be between 1 and 50")
		}
		if flagSimIdeas < 0 || flagSimIdeas > 20 {
			return fmt.Errorf("--ideas must be between 0 and 20")
		}
		return runSimulation(NewAPIClient(flagAPIURL))
	},
}

func init() {
	apiURL := "http://localhost:8080"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	simulateCmd.Flags().StringVar(&flagAPIURL, "url", apiURL, "Server base URL (env API_URL)")
	simulateCmd.Flags().IntVar(&flagSimUsers, "users", 3, "Number of fake users")
	simulateCmd.Flags().IntVar(&flagSimIdeas, "ideas", 2, "Ideas created per user")
	simulateCmd.Flags().BoolVar(&flagSimApproved, "answer", true, "Have owners approve incoming requests")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulation(client *APIClient) error {
	fmt.Println("=== Purposeful Simulator ===")
	fmt.Println()

	domains, err := client.ListTags("domain")
	if err != nil {
		return err
	}
	techs, err := client.ListTags("tech")
	if err != nil {
		return err
	}
	topics, err := client.ListTags("topic")
	if err != nil {
		return err
	}
	if len(domains) == 0 || len(topics) == 0 {
		return fmt.Errorf("no domains or topics found, run \"purposefulctl seed\" first")
	}

	// 1. Register users
	fmt.Printf("Registering %d users:\n", flagSimUsers)
	users := make([]simUser, 0, flagSimUsers)
	for i := 0; i < flagSimUsers; i++ {
		user, token, err := client.Register(fmt.Sprintf("maker%d", i+1))
		if err != nil {
			return fmt.Errorf("user %d: %w", i+1, err)
		}
		users = append(users, simUser{user: user, token: token})
		fmt.Printf("  [%d/%d] %s\n", i+1, flagSimUsers, user.Email)
	}

	// 2. Each user publishes ideas
	fmt.Println()
	fmt.Println("Creating ideas:")
	owners := make(map[string]int)
	var ideas []*Idea
	for ui, u := range users {
		for i := 0; i < flagSimIdeas; i++ {
			icon, err := client.CreateURL(u.token, fmt.Sprintf("https://picsum.photos/seed/%s-%d/200", u.user.ID, i))
			if err != nil {
				return err
			}

			idea, err := client.CreateIdea(u.token, NewIdea{
				Title:       fmt.Sprintf("Idea %d by %s", i+1, u.user.Email),
				Purpose:     "Generated by the simulator",
				Description: "A simulated idea for exercising the feed.",
				InProgress:  i%2 == 0,
				DomainIDs:   []string{pickTag(domains).ID},
				TechIDs:     pickTagIDs(techs),
				TopicIDs:    []string{pickTag(topics).ID},
				ImgURLIDs:   []string{icon.ID},
				IconURLID:   icon.ID,
			})
			if err != nil {
				return err
			}
			ideas = append(ideas, idea)
			owners[idea.ID] = ui
			fmt.Printf("  %s\n", idea.Title)
		}
	}

	// 3. Everyone reacts to and asks to join the ideas of others
	fmt.Println()
	fmt.Print("Reacting and requesting collaborations... ")
	reactions, requests := 0, 0
	pending := make(map[int][]string)
	for ui, u := range users {
		for _, idea := range ideas {
			owner := owners[idea.ID]
			if owner == ui {
				continue
			}
			if _, err := client.React(u.token, idea.ID); err != nil {
				fmt.Println("FAILED")
				return err
			}
			reactions++

			request, err := client.RequestCollaboration(u.token, idea.ID, "I would love to help build this")
			if err != nil {
				fmt.Println("FAILED")
				return err
			}
			requests++
			pending[owner] = append(pending[owner], request.ID)
		}
	}
	fmt.Printf("OK (%d reactions, %d requests)\n", reactions, requests)

	// 4. Owners answer
	if flagSimApproved {
		fmt.Print("Answering requests... ")
		answered := 0
		for owner, requestIDs := range pending {
			for i, id := range requestIDs {
				status := "Approved"
				if i%2 == 1 {
					status = "Declined"
				}
				if err := client.RespondToCollaboration(users[owner].token, id, status); err != nil {
					fmt.Println("FAILED")
					return err
				}
				answered++
			}
		}
		fmt.Printf("OK (%d answered)\n", answered)
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  SIMULATION COMPLETE")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Println("  Log in as any simulated user with password: simulatorpassword")
	for _, u := range users {
		fmt.Printf("    %s\n", u.user.Email)
	}
	fmt.Println()
	return nil
}

func pickTag(tags []Tag) Tag {
	return tags[rand.Intn(len(tags))]
}

// pickTagIDs returns up to two distinct random tag ids
func pickTagIDs(tags []Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	perm := rand.Perm(len(tags))
	n := 2
	if len(perm) < n {
		n = len(perm)
	}
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = tags[perm[i]].ID
	}
	return ids
}
