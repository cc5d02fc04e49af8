package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cachesim/cachesim/cachesim"
	"github.com/cachesim/cachesim/cachesim/trace"
	"github.com/cachesim/cachesim/cachesim/workload"
)

var (
	genCorpusDir  string
	genOutDir     string
	genCount      int
	genLength     int
	genSpliceProb float64
	genMutProb    float64
	genSeed       int64
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate synthetic Monte Carlo traces by splicing and mutating a trace corpus",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		corpus, err := loadCorpus(genCorpusDir)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if len(corpus) == 0 {
			logrus.Fatalf("No .din traces found under %s", genCorpusDir)
		}
		if err := os.MkdirAll(genOutDir, 0o755); err != nil {
			logrus.Fatalf("Failed to create output directory: %v", err)
		}

		cfg := workload.MonteCarloConfig{
			WorkloadLen: genLength,
			SpliceProb:  genSpliceProb,
			MutProb:     genMutProb,
		}
		master := cachesim.NewPartitionedRNG(genSeed, true)

		for i := 0; i < genCount; i++ {
			rng := rand.New(rand.NewSource(master.Seed() ^ int64(i)))
			generated := workload.Generate(cfg, corpus, rng)

			outPath := filepath.Join(genOutDir, fmt.Sprintf("gen_%04d.din", i))
			outF, err := os.Create(outPath)
			if err != nil {
				logrus.Fatalf("Failed to create %s: %v", outPath, err)
			}
			if err := trace.WriteDin(outF, generated); err != nil {
				outF.Close()
				logrus.Fatalf("Failed to write %s: %v", outPath, err)
			}
			outF.Close()
		}
		logrus.Infof("Generated %d traces under %s", genCount, genOutDir)
	},
}

func loadCorpus(dir string) ([][]cachesim.AccessRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cmd: reading corpus directory: %w", err)
	}

	var corpus [][]cachesim.AccessRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".din" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("cmd: opening corpus trace %s: %w", path, err)
		}
		records, err := trace.ParseDin(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cmd: parsing corpus trace %s: %w", path, err)
		}
		corpus = append(corpus, records)
	}
	return corpus, nil
}

func init() {
	genCmd.Flags().StringVar(&genCorpusDir, "corpus-dir", "", "Directory of .din traces to splice from (required)")
	genCmd.Flags().StringVar(&genOutDir, "out-dir", "", "Directory to write generated .din traces to (required)")
	genCmd.Flags().IntVar(&genCount, "count", 1, "Number of synthetic traces to generate")
	genCmd.Flags().IntVar(&genLength, "length", 4096, "Target number of accesses per generated trace")
	genCmd.Flags().Float64Var(&genSpliceProb, "splice-prob", 1.0/128, "Per-access probability of ending the current splice")
	genCmd.Flags().Float64Var(&genMutProb, "mut-prob", 1.0/32, "Per-access mutation probability")
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Master RNG seed")

	genCmd.MarkFlagRequired("corpus-dir")
	genCmd.MarkFlagRequired("out-dir")
}
