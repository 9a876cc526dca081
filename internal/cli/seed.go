package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crecokenya/truthguard/internal/store"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install sample claims and user profiles into an empty store",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := store.Seed(st); err != nil {
		return err
	}

	claims, err := st.ListClaims()
	if err != nil {
		return err
	}

	fmt.Printf("Store ready with %d claims\n", len(claims))
	return nil
}
