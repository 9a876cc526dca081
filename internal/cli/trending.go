package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// trendingCmd represents the trending command
var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Recompute trending claims from engagement",
	Long: `Trending refreshes the trending flag on every claim from its
weighted views, likes and shares. Submitters of newly trending claims are
notified once; claims that stay trending are not re-notified.`,
	RunE: runTrending,
}

func init() {
	rootCmd.AddCommand(trendingCmd)
}

func runTrending(cmd *cobra.Command, args []string) error {
	eng, sched, st, _, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	defer sched.Shutdown()

	rising, err := eng.RefreshTrending()
	if err != nil {
		return err
	}

	if len(rising) == 0 {
		fmt.Println("No newly trending claims")
		return nil
	}

	for _, c := range rising {
		fmt.Printf("Now trending: %s  %s\n", c.ID, truncate(c.Content, 60))
	}
	return nil
}
