package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/cachesim"
	"github.com/cachesim/cachesim/cachesim/trace"
)

var (
	runTraceFile string
	runOutFile   string
	runL1Size    int
	runL2Size    int
	runWays      int
	runSeed      int64
	runSeeded    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one trace against one cache geometry",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg := cachesim.HierarchyConfig{
			L1Size:        runL1Size,
			L2Size:        runL2Size,
			Associativity: runWays,
			RandomSeed:    runSeed,
			Seeded:        runSeeded,
		}

		f, err := os.Open(runTraceFile)
		if err != nil {
			logrus.Fatalf("Failed to open trace file: %v", err)
		}
		defer f.Close()

		records, err := trace.ParseDin(f)
		if err != nil {
			logrus.Fatalf("Failed to parse trace: %v", err)
		}
		logrus.Infof("Loaded %d accesses from %s", len(records), runTraceFile)

		h, err := cachesim.NewHierarchy(cfg)
		if err != nil {
			logrus.Fatalf("Invalid hierarchy configuration: %v", err)
		}

		perAccess := cachesim.Energies(h.Run(records))

		out := os.Stdout
		if runOutFile != "" {
			outF, err := os.Create(runOutFile)
			if err != nil {
				logrus.Fatalf("Failed to create output file: %v", err)
			}
			defer outF.Close()
			out = outF
		}

		if err := trace.WriteCumulativeEnergyCSV(out, perAccess); err != nil {
			logrus.Fatalf("Failed to write cumulative energy CSV: %v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

func init() {
	runCmd.Flags().StringVar(&runTraceFile, "trace", "", "Path to a .din trace file (required)")
	runCmd.Flags().StringVar(&runOutFile, "out", "", "Path to write the cumulative-energy CSV (defaults to stdout)")
	runCmd.Flags().IntVar(&runL1Size, "l1-size", 32*1024, "L1 (I and D) cache size in bytes")
	runCmd.Flags().IntVar(&runL2Size, "l2-size", 256*1024, "L2 cache size in bytes")
	runCmd.Flags().IntVar(&runWays, "ways", 4, "L2 set associativity")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "L2 replacement RNG seed")
	runCmd.Flags().BoolVar(&runSeeded, "seeded", false, "Use --seed for reproducible L2 replacement decisions")

	runCmd.MarkFlagRequired("trace")
}
