package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/berthwatch/app"
	"github.com/kilianp07/berthwatch/config"
	"github.com/kilianp07/berthwatch/core/normalize"
)

var (
	statusPort string
	statusAt   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the occupancy snapshot of a port",
	RunE:  showStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusPort, "port", "p", "KEL", "port code")
	statusCmd.Flags().StringVar(&statusAt, "at", "", "query instant (default: now)")
	rootCmd.AddCommand(statusCmd)
}

func showStatus(cmd *cobra.Command, args []string) error {
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

	var at time.Time
	if statusAt != "" {
		at = normalize.Time(statusAt, cfg.Timeline.Location())
		if at.IsZero() {
			return fmt.Errorf("cannot parse --at value %q", statusAt)
		}
	}

	res, err := svc.Snapshot(ctx, statusPort, at)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("snapshot failed: %s", res.Reason)
	}

	fmt.Printf("%s (%s) at %s, buffer %.0fm\n", res.PortName, res.PortCode,
		res.CheckTime.Format("2006-01-02 15:04"), res.SafetyBuffer)
	fmt.Printf("berths: %d total, %d available, %d occupied; %d vessels; avg occupancy %.1f%%\n",
		res.Summary.TotalBerths, res.Summary.AvailableBerths, res.Summary.OccupiedBerths,
		res.Summary.TotalVessels, res.Summary.AvgOccupancy)
	for _, b := range res.Berths {
		fmt.Printf("  %-8s %-20s %6.0fm total %6.1fm occupied %6.1fm free (%5.1f%%) %d vessel(s)\n",
			b.BerthID, b.BerthName, b.TotalLength, b.OccupiedLen, b.RemainingLen, b.Occupancy, b.VesselCount)
		for _, v := range b.Vessels {
			fmt.Printf("      %s (%.0fm) %s -> %s\n", v.VesselName, v.LOA,
				v.Start.Format("01/02 15:04"), v.End.Format("01/02 15:04"))
		}
	}
	return nil
}
