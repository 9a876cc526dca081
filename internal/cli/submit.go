package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crecokenya/truthguard/internal/engine"
	"github.com/crecokenya/truthguard/internal/model"
)

var (
	submitUser     string
	submitCategory string
	submitPriority string
	submitTags     []string
	submitRefs     []string
	submitNoWait   bool
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit <content>",
	Short: "Submit a claim for fact-checking",
	Long: `Submit files a claim for review. The content is matched against
every existing claim; a close enough match merges the submission into the
existing record instead of creating a new one.

Genuinely new claims are scheduled for the simulated AI analysis step, which
flags them for admin approval after a short delay.

Example:
  truthguard submit "County X built 40 new schools this year" --user user1 --category education
  truthguard submit "..." --user user1 --ref "Budget 2024" --tag schools --no-wait`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&submitUser, "user", "", "submitting user id (required)")
	submitCmd.Flags().StringVar(&submitCategory, "category", string(model.CategoryOther), "claim category")
	submitCmd.Flags().StringVar(&submitPriority, "priority", string(model.PriorityMedium), "review priority (low, medium, high, urgent)")
	submitCmd.Flags().StringArrayVar(&submitTags, "tag", nil, "claim tag (repeatable)")
	submitCmd.Flags().StringArrayVar(&submitRefs, "ref", nil, "supporting reference (repeatable)")
	submitCmd.Flags().BoolVar(&submitNoWait, "no-wait", false, "exit without waiting for the scheduled analysis")

	_ = submitCmd.MarkFlagRequired("user")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	eng, sched, st, cfg, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	res, err := eng.Submit(engine.SubmitRequest{
		Content:     args[0],
		Category:    model.ClaimCategory(submitCategory),
		SubmittedBy: submitUser,
		Priority:    model.ClaimPriority(submitPriority),
		Tags:        submitTags,
		References:  submitRefs,
	})
	if err != nil {
		return err
	}

	if res.Merged {
		fmt.Printf("Merged into existing claim %s (%d submissions)\n", res.Claim.ID, res.Claim.DuplicateCount)
		sched.Shutdown()
		return nil
	}

	fmt.Printf("Submitted claim %s\n", res.Claim.ID)

	if submitNoWait {
		sched.Shutdown()
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Waiting %v for AI analysis...\n", cfg.Analysis.Delay)
	}
	sched.Wait()
	fmt.Println("AI analysis complete, claim awaiting admin approval")
	return nil
}
