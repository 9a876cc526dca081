package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crecokenya/truthguard/internal/model"
)

var (
	reviewStatus      string
	reviewVerdict     string
	reviewExplanation string
	reviewRefs        []string
	reviewApprove     bool
	reviewAdmin       string
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <claim-id>",
	Short: "Apply a fact-check update to a claim",
	Long: `Review writes an update onto the primary claim and cascades the
verdict fields (status, verdict, explanation, references, approved) to every
claim similar to it. Publishing the first verdict on a pending claim
notifies every submitter in the duplicate cluster.

Only flags you pass are part of the update; everything else keeps its
current value, on the primary and on cluster members alike.

Example:
  truthguard review 42 --status false --verdict "Debunked by KNBS data" --admin admin@crecokenya.org`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

// approveCmd represents the approve command
var approveCmd = &cobra.Command{
	Use:   "approve <claim-id>",
	Short: "Approve a claim's AI analysis and publish it",
	Long: `Approve signs off the simulated AI analysis on one claim: the
claim is published to the feed and its submitter notified. Approval never
cascades to duplicates.`,
	Args: cobra.ExactArgs(1),
	RunE: runApprove,
}

// rejectCmd represents the reject command
var rejectCmd = &cobra.Command{
	Use:   "reject <claim-id>",
	Short: "Reject a claim's AI analysis for manual re-review",
	Args:  cobra.ExactArgs(1),
	RunE:  runReject,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(rejectCmd)

	reviewCmd.Flags().StringVar(&reviewStatus, "status", "", "verdict status (true, false, misleading, satire, needs-context, pending)")
	reviewCmd.Flags().StringVar(&reviewVerdict, "verdict", "", "verdict summary")
	reviewCmd.Flags().StringVar(&reviewExplanation, "explanation", "", "detailed explanation")
	reviewCmd.Flags().StringArrayVar(&reviewRefs, "ref", nil, "supporting reference (repeatable)")
	reviewCmd.Flags().BoolVar(&reviewApprove, "approve", false, "mark the claim approved for public feeds")
	reviewCmd.Flags().StringVar(&reviewAdmin, "admin", "", "reviewing admin id")

	approveCmd.Flags().StringVar(&reviewAdmin, "admin", "", "approving admin id (required)")
	_ = approveCmd.MarkFlagRequired("admin")
}

func runReview(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	var upd model.ClaimUpdate
	if cmd.Flags().Changed("status") {
		status := model.ClaimStatus(reviewStatus)
		upd.Status = &status
	}
	if cmd.Flags().Changed("verdict") {
		upd.Verdict = &reviewVerdict
	}
	if cmd.Flags().Changed("explanation") {
		upd.Explanation = &reviewExplanation
	}
	if cmd.Flags().Changed("ref") {
		upd.References = reviewRefs
	}
	if cmd.Flags().Changed("approve") {
		upd.Approved = &reviewApprove
	}
	if cmd.Flags().Changed("admin") {
		upd.VerifiedBy = &reviewAdmin
	}

	claim, err := eng.ApplyUpdate(args[0], upd)
	if err != nil {
		return err
	}

	fmt.Printf("Updated claim %s: status=%s verdict=%q\n", claim.ID, claim.Status, claim.Verdict)
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	claim, err := eng.ApproveAIAnalysis(args[0], reviewAdmin)
	if err != nil {
		return err
	}

	fmt.Printf("Approved claim %s, published to feed\n", claim.ID)
	return nil
}

func runReject(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	claim, err := eng.RejectAIAnalysis(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Rejected AI analysis for claim %s, returned to manual review\n", claim.ID)
	return nil
}
