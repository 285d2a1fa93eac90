// Package main provides a performance benchmarking tool for the spacecap CLI.
// It scales the bundled dataset to several sizes and measures execution times
// per command, running each test multiple times, treating the first successful
// run as cold and averaging the rest as warm, and writes CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - spacecap binary installed and available in PATH
//
// Usage: go run benchmark/main.go [seed-dataset]
//
//	seed-dataset: Dataset replicated to build the larger inputs (default testdata/countries.yaml)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/spacecap/internal/dataset"
	"gopkg.in/yaml.v3"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	SeedPath    string
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Scales      []int // Copies of the seed dataset per generated input
}

func main() {
	seedPath := "testdata/countries.yaml"
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [seed-dataset]\n", os.Args[0])
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		seedPath = os.Args[1]
	}

	workDir, err := os.MkdirTemp("", "spacecap-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		SeedPath:    seedPath,
		WorkDir:     workDir,
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Scales:      []int{1, 100, 1000},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the spacecap binary and seed dataset exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("spacecap"); err != nil {
		return fmt.Errorf("spacecap binary not found in PATH")
	}
	if _, err := os.Stat(config.SeedPath); os.IsNotExist(err) {
		return fmt.Errorf("seed dataset not found at %s", config.SeedPath)
	}
	return nil
}

// scaleDataset writes a dataset holding copies of every seed country with unique ids.
func scaleDataset(seed *dataset.Dataset, copies int, path string) error {
	scaled := dataset.Dataset{
		Version:     seed.Version,
		Description: fmt.Sprintf("%s (x%d)", seed.Description, copies),
		Countries:   make([]dataset.Country, 0, len(seed.Countries)*copies),
	}
	for i := range copies {
		for _, c := range seed.Countries {
			if i > 0 {
				c.ID = fmt.Sprintf("%s-%d", c.ID, i)
				c.Name = fmt.Sprintf("%s %d", c.Name, i)
			}
			scaled.Countries = append(scaled.Countries, c)
		}
	}

	data, err := yaml.Marshal(scaled)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across the generated datasets
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	seed, err := dataset.Load(config.SeedPath)
	if err != nil {
		return nil, err
	}
	if len(seed.Countries) < 2 {
		return nil, fmt.Errorf("seed dataset needs at least two countries")
	}
	first, second := seed.Countries[0].ID, seed.Countries[1].ID

	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Scales), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, scale := range config.Scales {
		name := fmt.Sprintf("%d-countries", len(seed.Countries)*scale)
		dataPath := filepath.Join(config.WorkDir, name+".yaml")
		if err := scaleDataset(seed, scale, dataPath); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dataPath, err)
		}
		fmt.Printf("Benchmarking %s\n", name)

		results = append(results,
			runBenchmarkSuite(config, name, dataPath, "rank", "--limit 0"),
			runBenchmarkSuite(config, name, dataPath, "breakdown", first),
			runBenchmarkSuite(config, name, dataPath, "compare", first+" "+second),
		)
	}

	return results, nil
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, name, dataPath, command, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, name)

	// Each suite starts from a fresh cache file
	cachePath := filepath.Join(config.WorkDir, fmt.Sprintf("%s-%s.db", name, command))

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, cachePath, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a spacecap command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataPath, cachePath, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		command,
		"--data", dataPath,
		"--workers", fmt.Sprint(config.Workers),
		"--cache-backend", cacheBackend,
		"--color", "no",
	}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", cachePath)
	}
	args = append(args, strings.Fields(extraArgs)...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("spacecap", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)
	switch command {
	case "compare":
		return strings.Contains(outputStr, "Composite leader:")
	case "rank":
		return strings.Contains(outputStr, "Scored in") && strings.Contains(outputStr, "workers")
	default:
		return strings.Contains(outputStr, "Scored in")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("spacecap_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "rank", "Rankings:")
	printCommandSummary(results, "breakdown", "Breakdown:")
	printCommandSummary(results, "compare", "Comparison:")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-16s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
