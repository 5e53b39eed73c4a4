// Command condorcet resolves closed ranked polls from YAML election
// files using the Schulze method.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/debnet/condorcet/infrastructure/middleware"
	"github.com/debnet/condorcet/infrastructure/schulze"
	"github.com/debnet/condorcet/internal/application"
	"github.com/debnet/condorcet/internal/domain"
	"github.com/debnet/condorcet/internal/ports"
)

var (
	// Global flags
	verbose     bool
	concurrency int

	// Resolve flags
	winnersOverride  int
	tieBreakOverride string
	showMatrices     bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "condorcet",
	Short: "Schulze-method resolution for ranked polls",
	Long: `condorcet computes winners for closed ranked polls.

Ballots rank candidates with ties allowed; the engine aggregates them
into a pairwise preference matrix, derives strongest paths, and selects
the Schulze winner. With winners above one it runs the committee search
over all candidate subsets of that size.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [election-file...]",
	Short: "Resolve one or more election files",
	Long: `Loads each YAML election file, resolves it, and prints the winner
set, the tied winner sets when the outcome is a tie, and optionally the
preference and strength matrices.

Example:
  condorcet resolve examples/election.yaml --matrices`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

var validateCmd = &cobra.Command{
	Use:   "validate [election-file...]",
	Short: "Check election files without resolving them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", application.DefaultBatchConcurrency,
		"maximum elections resolved in parallel")

	resolveCmd.Flags().IntVar(&winnersOverride, "winners", 0,
		"override the winner count from the election file")
	resolveCmd.Flags().StringVar(&tieBreakOverride, "tie-break", "",
		"override the tie-break policy (lexicographic, surface, error)")
	resolveCmd.Flags().BoolVar(&showMatrices, "matrices", false,
		"print the preference and strength matrices")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadElections(paths []string) ([]*application.Election, error) {
	elections := make([]*application.Election, 0, len(paths))
	for _, path := range paths {
		election, err := application.LoadElection(path)
		if err != nil {
			return nil, err
		}
		elections = append(elections, election)
	}
	return elections, nil
}

// instrumentedFactory wraps each election's resolver with metrics and
// trace instrumentation. The registry is process-local; it exists so
// the decorators run the same way they would behind a scrape endpoint.
func instrumentedFactory(name string, cfg schulze.Config) (ports.Resolver, error) {
	resolver, err := schulze.NewResolver(name, cfg)
	if err != nil {
		return nil, err
	}
	metrics := middleware.NewPrometheusMetrics(prometheus.NewRegistry())
	observer := middleware.NewOTelResolutionObserver()
	return middleware.NewInstrumentedResolver(resolver, metrics, observer), nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	elections, err := loadElections(args)
	if err != nil {
		return err
	}

	for _, election := range elections {
		if winnersOverride > 0 {
			election.Winners = winnersOverride
		}
		if tieBreakOverride != "" {
			election.ResolverConfig.TieBreak = schulze.TieBreak(tieBreakOverride)
		}
	}

	logger.Info("resolving elections",
		zap.Int("count", len(elections)),
		zap.Int("concurrency", concurrency))

	start := time.Now()
	batch := application.NewBatchResolver(instrumentedFactory, concurrency)
	results, err := batch.ResolveAll(cmd.Context(), elections)
	if err != nil {
		return err
	}

	logger.Info("resolution complete",
		zap.Int("count", len(results)),
		zap.Duration("elapsed", time.Since(start)))

	for i, result := range results {
		printResult(elections[i], result)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		election, err := application.LoadElection(path)
		if err != nil {
			return err
		}
		logger.Info("election file valid",
			zap.String("path", path),
			zap.String("name", election.Name),
			zap.Int("candidates", len(election.Candidates)),
			zap.Int("ballots", len(election.Ballots)))
		fmt.Printf("%s: ok (%d candidates, %d ballots)\n",
			path, len(election.Candidates), len(election.Ballots))
	}
	return nil
}

func printResult(election *application.Election, result *domain.Result) {
	fmt.Printf("\n== %s ==\n", election.Name)
	fmt.Printf("Ballots: %d (%d distinct orderings)\n",
		result.BallotCount, result.DistinctOrderings)

	if len(result.Winners) > 0 {
		fmt.Printf("Winners: %s\n", formatIndices(election, result.Winners))
	} else {
		fmt.Println("Winners: none selected (tie surfaced)")
	}

	if result.IsTied() {
		fmt.Printf("Tied winner sets (%d):\n", len(result.Tied))
		for _, committee := range result.Tied {
			fmt.Printf("  %s\n", formatIndices(election, committee))
		}
	}

	if showMatrices {
		fmt.Println("Pairwise preferences:")
		printMatrix(result.Preferences)
		fmt.Println("Strongest paths:")
		printMatrix(result.Strengths)
	}
}

func formatIndices(election *application.Election, indices []domain.CandidateIndex) string {
	parts := make([]string, len(indices))
	for i, index := range indices {
		label := election.Labels[index]
		if label == "" || label == string(index) {
			parts[i] = string(index)
		} else {
			parts[i] = fmt.Sprintf("%s (%s)", index, label)
		}
	}
	return strings.Join(parts, ", ")
}

func printMatrix(m *domain.Matrix) {
	if m == nil {
		return
	}
	indices := m.Indices
	width := 4
	for _, index := range indices {
		if len(index)+1 > width {
			width = len(index) + 1
		}
	}

	header := make([]string, 0, len(indices)+1)
	header = append(header, fmt.Sprintf("%*s", width, ""))
	for _, index := range indices {
		header = append(header, fmt.Sprintf("%*s", width, index))
	}
	fmt.Println(strings.Join(header, ""))

	for _, row := range indices {
		line := []string{fmt.Sprintf("%*s", width, row)}
		for _, col := range indices {
			if row == col {
				line = append(line, fmt.Sprintf("%*s", width, "-"))
				continue
			}
			line = append(line, fmt.Sprintf("%*d", width, m.At(row, col)))
		}
		fmt.Println(strings.Join(line, ""))
	}
}
