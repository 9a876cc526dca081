package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crecokenya/truthguard/internal/model"
)

var (
	claimsCategory  string
	claimsSearch    string
	claimsAIPending bool
)

// claimsCmd represents the claims command
var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "Browse stored claims",
}

var claimsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List claims, newest first",
	RunE:  runClaimsList,
}

var claimsShowCmd = &cobra.Command{
	Use:   "show <claim-id>",
	Short: "Show one claim in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaimsShow,
}

var claimsDeleteCmd = &cobra.Command{
	Use:   "delete <claim-id>",
	Short: "Delete a claim from the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runClaimsDelete,
}

func init() {
	rootCmd.AddCommand(claimsCmd)
	claimsCmd.AddCommand(claimsListCmd)
	claimsCmd.AddCommand(claimsShowCmd)
	claimsCmd.AddCommand(claimsDeleteCmd)

	claimsListCmd.Flags().StringVar(&claimsCategory, "category", "", "filter by category")
	claimsListCmd.Flags().StringVar(&claimsSearch, "search", "", "filter by content/verdict/tag substring")
	claimsListCmd.Flags().BoolVar(&claimsAIPending, "ai-pending", false, "only claims awaiting AI-analysis approval")
}

func runClaimsList(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	var claims []model.Claim
	switch {
	case claimsAIPending:
		claims, err = eng.AIPendingClaims()
	case claimsCategory != "":
		claims, err = eng.ClaimsByCategory(model.ClaimCategory(claimsCategory))
	case claimsSearch != "":
		claims, err = eng.SearchClaims(claimsSearch)
	default:
		claims, err = eng.Claims()
	}
	if err != nil {
		return err
	}

	if len(claims) == 0 {
		fmt.Println("No claims found")
		return nil
	}

	for _, c := range claims {
		marker := " "
		if c.Trending {
			marker = "*"
		}
		fmt.Printf("%s %-36s  %-13s  %-11s  x%d  %s\n",
			marker, c.ID, c.Status, c.Category, c.DuplicateCount, truncate(c.Content, 60))
	}
	return nil
}

func runClaimsShow(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	claim, err := eng.Claim(args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(claim)
	if err != nil {
		return fmt.Errorf("marshal claim: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runClaimsDelete(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	if err := eng.Delete(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted claim %s\n", args[0])
	return nil
}

// truncate shortens s to max runes for single-line listings
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
