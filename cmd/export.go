package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/berthwatch/app"
	"github.com/kilianp07/berthwatch/config"
	"github.com/kilianp07/berthwatch/infra/export"
)

var (
	exportPort   string
	exportFormat string
	exportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current occupancy snapshot to CSV or XML",
	RunE:  exportSnapshot,
}

func init() {
	exportCmd.Flags().StringVarP(&exportPort, "port", "p", "KEL", "port code")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv or xml")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "output directory")
	rootCmd.AddCommand(exportCmd)
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
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

	res, err := svc.Snapshot(ctx, exportPort, time.Time{})
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("snapshot failed: %s", res.Reason)
	}

	stamp := time.Now().Format("20060102_150405")
	switch exportFormat {
	case "csv":
		berthPath := filepath.Join(exportDir, fmt.Sprintf("%s_berths_%s.csv", exportPort, stamp))
		vesselPath := filepath.Join(exportDir, fmt.Sprintf("%s_vessels_%s.csv", exportPort, stamp))
		if err := writeFile(berthPath, func(f *os.File) error {
			return export.WriteBerthCSV(f, res)
		}); err != nil {
			return err
		}
		if err := writeFile(vesselPath, func(f *os.File) error {
			return export.WriteVesselCSV(f, res)
		}); err != nil {
			return err
		}
		fmt.Printf("wrote %s and %s\n", berthPath, vesselPath)
	case "xml":
		path := filepath.Join(exportDir, fmt.Sprintf("%s_snapshot_%s.xml", exportPort, stamp))
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteSnapshotXML(f, res)
		}); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	default:
		return fmt.Errorf("unsupported format: %s", exportFormat)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
