package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devcatalyst07/fitplan/internal/config"
	"github.com/devcatalyst07/fitplan/internal/store"
)

var showHistory int

var showCmd = &cobra.Command{
	Use:   "show <project>",
	Short: "Display the stored schedule for a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showHistory, "history", 0, "also list up to N envelope history records")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	r := newRenderer(cfg)
	project := args[0]

	st, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	s, err := st.Load(cmd.Context(), project)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no stored schedule for %q; run `fitplan schedule` first", project)
		}
		return err
	}
	fmt.Print(r.StoredSchedule(s))

	if showHistory > 0 {
		envs, err := st.History(cmd.Context(), project, showHistory)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(r.History(envs))
	}

	return nil
}
