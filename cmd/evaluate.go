package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/berthwatch/app"
	"github.com/kilianp07/berthwatch/config"
	"github.com/kilianp07/berthwatch/core/analysis"
)

var (
	evalPort   string
	evalETA    string
	evalLength float64
	evalName   string
	evalType   string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate berthing feasibility and competition for one arrival",
	RunE:  evaluateArrival,
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalPort, "port", "p", "KEL", "port code")
	evaluateCmd.Flags().StringVar(&evalETA, "eta", "", "estimated time of arrival")
	evaluateCmd.Flags().Float64Var(&evalLength, "length", 0, "ship length overall in meters")
	evaluateCmd.Flags().StringVar(&evalName, "ship", "", "ship name")
	evaluateCmd.Flags().StringVar(&evalType, "type", "container", "ship type")
	_ = evaluateCmd.MarkFlagRequired("eta")
	_ = evaluateCmd.MarkFlagRequired("length")
	rootCmd.AddCommand(evaluateCmd)
}

func evaluateArrival(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Analyze(ctx, evalPort, analysis.ArrivalRequest{
		ShipName:   evalName,
		ShipType:   evalType,
		ShipLength: evalLength,
		ETA:        evalETA,
	})
	if err != nil {
		return err
	}

	fmt.Printf("analysis %s for %s (%.0fm)\n", res.AnalysisID, res.ShipName, res.ShipLength)
	fmt.Printf("can berth: %v\n", res.CanBerth)
	fmt.Printf("evaluation: %s\n", res.Evaluation.Recommendation)
	for i, c := range res.Evaluation.Candidates {
		fmt.Printf("  %d. %s (%s): score %.1f, %.1fm free, %.1f%% occupied\n",
			i+1, c.BerthName, c.BerthID, c.Suitability, c.RemainingLen, c.Occupancy)
	}
	fmt.Printf("competition: %s (%d vessel(s)): %s\n",
		res.Competition.Level, res.Competition.Count, res.Competition.Reason)
	if res.Competition.ShouldAccelerate {
		fmt.Printf("recommended ETA: %s\n", res.Competition.RecommendedETA.Format("2006-01-02 15:04"))
	}
	fmt.Printf("decision: %s (%s priority): %s\n", res.Final.Action, res.Final.Priority, res.Final.Message)
	return nil
}
