package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clausetag/clausetag/internal/model"
	"github.com/clausetag/clausetag/internal/store"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <document> <clause>",
	Short: "Mark an auto-tagged mapping as reviewer-verified",
	Long: `Verify promotes an automatic mapping after human review. Verified
mappings survive re-tagging runs: the next automatic run will not delete or
replace them.

Example:
  clausetag verify evidence/assessment-policy.txt 1.8.1`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&storeDir, "store", "", "mapping store directory (default: $HOME/.clausetag/store)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	docID, clauseNumber := args[0], args[1]

	cfg := model.DefaultConfig()
	cfg.Store.Dir = storeDir

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	if err := st.Verify(docID, clauseNumber, time.Now().UTC()); err != nil {
		if err == store.ErrNotFound {
			return fmt.Errorf("no mapping for document %q clause %q", docID, clauseNumber)
		}
		return fmt.Errorf("verify mapping: %w", err)
	}

	fmt.Printf("Verified: %s -> clause %s\n", docID, clauseNumber)
	return nil
}
