package dict

import (
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/dictd/cmd/util"
	"github.com/ValentinKolb/dictd/rpc/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for dictd servers",
		Long:    "Runs set, get, all and mixed benchmarks against a running server. Every thread uses its own connection. Words are prefixed with __perf; pass --clear to empty the dictionary afterwards.",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfWordPrefix        = "__perf"
	perfNumThreads        = 10
	perfWordSpread        = 100
	perfDescriptionTokens = 4
	perfClear             = false
	perfSkip              = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,all)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads (connections) to use for the benchmark"))
	key = "words"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different words to use for the tests"))
	key = "description-tokens"
	perfTestCmd.Flags().Int(key, 4, util.WrapString("How many whitespace separated tokens every description has"))
	key = "clear"
	perfTestCmd.Flags().Bool(key, false, util.WrapString("Clear the dictionary after the benchmarks"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = viper.GetInt("threads")
	perfWordSpread = viper.GetInt("words")
	perfDescriptionTokens = viper.GetInt("description-tokens")
	perfClear = viper.GetBool("clear")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	if perfNumThreads < 1 || perfWordSpread < 1 || perfDescriptionTokens < 1 {
		return fmt.Errorf("threads, words and description-tokens must be positive")
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for dictd servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(clientConfig.String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	words := getWords()
	description := strings.TrimSpace(strings.Repeat("lorem ", perfDescriptionTokens))

	// prepare all words once so get and all have something to read
	if err := withClient(func(c *client.Client) error {
		for _, w := range words {
			if err := c.Set(w, description); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to prepare words: %w", err)
	}

	benchmarks := []struct {
		name string
		op   func(c *client.Client, counter int) error
	}{
		{"set", func(c *client.Client, counter int) error {
			return c.Set(words[counter%len(words)], description)
		}},
		{"get", func(c *client.Client, counter int) error {
			_, _, err := c.Get(words[counter%len(words)])
			return err
		}},
		{"get-missing", func(c *client.Client, counter int) error {
			_, _, err := c.Get(fmt.Sprintf("%s-missing-%d", perfWordPrefix, counter%perfWordSpread))
			return err
		}},
		{"all", func(c *client.Client, _ int) error {
			_, err := c.All()
			return err
		}},
		{"mixed", func(c *client.Client, counter int) error {
			word := words[counter%len(words)]
			var err error
			switch counter % 3 {
			case 0:
				err = c.Set(word, description)
			case 1:
				_, _, err = c.Get(word)
			case 2:
				_, err = c.All()
			}
			return err
		}},
	}

	// Create results map
	results := make(map[string]testing.BenchmarkResult)
	for _, bm := range benchmarks {
		result := testing.Benchmark(func(b *testing.B) {
			if shouldSkip(bm.name) {
				return
			}

			b.SetParallelism(perfNumThreads)
			b.ResetTimer()

			b.RunParallel(func(pb *testing.PB) {
				c, err := client.Dial(*clientConfig, clientConnector)
				if err != nil {
					log.Printf("(%s) - error connecting: %v\n", bm.name, err)
					for pb.Next() {
					}
					return
				}
				defer c.Close()

				counter := 0
				for pb.Next() {
					if err := bm.op(c, counter); err != nil {
						log.Printf("(%s) - error: %v\n", bm.name, err)
					}
					counter++
				}
			})
		})

		results[bm.name] = result
		printResult(bm.name, result)
	}

	if perfClear {
		if err := withClient(func(c *client.Client) error { return c.Clear() }); err != nil {
			return fmt.Errorf("failed to clear the dictionary: %w", err)
		}
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

// getWords creates the words used by all benchmarks
func getWords() []string {
	words := make([]string, perfWordSpread)
	for i := range words {
		words[i] = fmt.Sprintf("%s-%d", perfWordPrefix, i)
	}
	return words
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoint", "Transport", "TimeoutSec",
		"Threads", "Words", "DescriptionTokens",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			clientConfig.Endpoint,
			string(clientConfig.Transport),
			strconv.Itoa(clientConfig.TimeoutSecond),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfWordSpread),
			strconv.Itoa(perfDescriptionTokens),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
