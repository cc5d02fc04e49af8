package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/cachesim"
	"github.com/cachesim/cachesim/cachesim/trace"
)

var (
	sweepManifest string
	sweepOutDir   string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every (trace, geometry) pair in a manifest across a worker pool",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfg, err := LoadSweepConfig(sweepManifest)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		outDir := cfg.OutDir
		if sweepOutDir != "" {
			outDir = sweepOutDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			logrus.Fatalf("Failed to create output directory: %v", err)
		}

		jobs := make(chan sweepJob, cfg.Jobs)
		var wg sync.WaitGroup
		var failuresMu sync.Mutex
		var failures []error

		for w := 0; w < cfg.Jobs; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for job := range jobs {
					if err := runSweepJob(job, outDir); err != nil {
						failuresMu.Lock()
						failures = append(failures, err)
						failuresMu.Unlock()
					}
				}
			}()
		}

		total := 0
		for _, tracePath := range cfg.Traces {
			for _, geom := range cfg.Geometries {
				jobs <- sweepJob{
					tracePath: tracePath,
					geometry:  geom,
					hcfg: cachesim.HierarchyConfig{
						L1Size:        geom.L1Size,
						L2Size:        geom.L2Size,
						Associativity: geom.Associativity,
						RandomSeed:    cfg.Seed,
						Seeded:        cfg.Seeded,
					},
				}
				total++
			}
		}
		close(jobs)
		wg.Wait()

		if len(failures) > 0 {
			for _, err := range failures {
				logrus.Errorf("%v", err)
			}
			logrus.Fatalf("%d of %d sweep jobs failed", len(failures), total)
		}
		logrus.Infof("Completed %d sweep jobs", total)
	},
}

type sweepJob struct {
	tracePath string
	geometry  GeometrySpec
	hcfg      cachesim.HierarchyConfig
}

// runSweepJob owns its own Hierarchy and trace read start to finish: no
// state is shared with any other worker goroutine.
func runSweepJob(job sweepJob, outDir string) error {
	f, err := os.Open(job.tracePath)
	if err != nil {
		return fmt.Errorf("cmd: opening trace %s: %w", job.tracePath, err)
	}
	defer f.Close()

	records, err := trace.ParseDin(f)
	if err != nil {
		return fmt.Errorf("cmd: parsing trace %s: %w", job.tracePath, err)
	}

	h, err := cachesim.NewHierarchy(job.hcfg)
	if err != nil {
		return fmt.Errorf("cmd: geometry %s: %w", job.geometry.Name, err)
	}

	perAccess := cachesim.Energies(h.Run(records))

	base := strings.TrimSuffix(filepath.Base(job.tracePath), filepath.Ext(job.tracePath))
	outPath := filepath.Join(outDir, fmt.Sprintf("%s_%s.csv", base, job.geometry.Name))
	outF, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cmd: creating output %s: %w", outPath, err)
	}
	defer outF.Close()

	if err := trace.WriteCumulativeEnergyCSV(outF, perAccess); err != nil {
		return fmt.Errorf("cmd: writing output %s: %w", outPath, err)
	}
	return nil
}

func init() {
	sweepCmd.Flags().StringVar(&sweepManifest, "manifest", "", "Path to a sweep manifest YAML file (required)")
	sweepCmd.Flags().StringVar(&sweepOutDir, "out-dir", "", "Output directory (overrides the manifest's out_dir)")
	sweepCmd.MarkFlagRequired("manifest")
}
