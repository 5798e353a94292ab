package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cloud-bulldozer/shbench/pkg/archive"
	"github.com/cloud-bulldozer/shbench/pkg/config"
	"github.com/cloud-bulldozer/shbench/pkg/driver"
	log "github.com/cloud-bulldozer/shbench/pkg/logging"
	"github.com/cloud-bulldozer/shbench/pkg/results"
	"github.com/cloud-bulldozer/shbench/pkg/runlog"
	"github.com/cloud-bulldozer/shbench/pkg/runner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	cfgfile     string
	scripts     [4]string
	warmups     [4]string
	randomOrder bool
	ignoreFirst bool
	iterations  int
	mem         bool
	debug       bool
	id          string
)

var rootCmd = &cobra.Command{
	Use:   "shbench",
	Short: "A tool to compare the performance of two to four shell scripts",
	Run: func(cmd *cobra.Command, args []string) {

		if debug {
			log.SetDebug()
		}

		uid := id
		if len(uid) == 0 {
			uid = uuid.New().String()
		}

		cfg, err := buildConfig()
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		config.Show(cfg)

		rl, err := runlog.Open()
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		defer rl.Close()
		log.Tee(rl)

		variants := driver.FromConfig(cfg)
		con := results.NewConsole(rl)
		run := runner.NewShellRunner(
			io.MultiWriter(os.Stdout, rl),
			io.MultiWriter(os.Stderr, rl),
		)

		d := driver.New(variants, driver.Config{
			RandomOrder: cfg.RandomOrder,
			IgnoreFirst: cfg.IgnoreFirst,
			Iterations:  cfg.Iterations,
			Mem:         cfg.Mem,
		}, run, con)
		d.Run()

		// Only reached when an iteration count was set; an unbounded
		// run ends with an interrupt instead.
		con.Summary(variants, cfg.Mem)
		if err := archive.WriteCSVResult(rl.Dir(), variants); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		if err := archive.WriteJSONResult(rl.Dir(), variants, uid); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		log.Infof("Run data written to %s/", rl.Dir())
	},
}

// buildConfig assembles the benchmark configuration from either the
// YAML config file or the per-variant flags, never both.
func buildConfig() (config.Config, error) {
	fromFlags := false
	for _, s := range scripts {
		if s != "" {
			fromFlags = true
		}
	}

	if cfgfile != "" {
		if fromFlags {
			return config.Config{}, fmt.Errorf("pass either --config or the -a/-b/-c/-d flags, not both")
		}
		cfg, err := config.ParseConf(cfgfile)
		if err != nil {
			return config.Config{}, err
		}
		// command line toggles still apply on top of the file
		cfg.RandomOrder = cfg.RandomOrder || randomOrder
		cfg.IgnoreFirst = cfg.IgnoreFirst || ignoreFirst
		cfg.Mem = cfg.Mem || mem
		if iterations > 0 {
			cfg.Iterations = iterations
		}
		return cfg, nil
	}

	if scripts[0] == "" {
		return config.Config{}, fmt.Errorf("variant A script is required (-a)")
	}
	cfg := config.Config{
		RandomOrder: randomOrder,
		IgnoreFirst: ignoreFirst,
		Iterations:  iterations,
		Mem:         mem,
	}
	for i, s := range scripts {
		if s == "" {
			if warmups[i] != "" {
				return config.Config{}, fmt.Errorf("warmup for variant %c given without its run script", 'A'+i)
			}
			continue
		}
		cfg.Tests = append(cfg.Tests, config.Test{Run: s, Warmup: warmups[i]})
	}
	return cfg, nil
}

func main() {
	rootCmd.Flags().StringVarP(&scripts[0], "a", "a", "", "A variant shell script")
	rootCmd.Flags().StringVarP(&scripts[1], "b", "b", "", "B variant shell script")
	rootCmd.Flags().StringVarP(&scripts[2], "c", "c", "", "C variant shell script")
	rootCmd.Flags().StringVarP(&scripts[3], "d", "d", "", "D variant shell script")
	rootCmd.Flags().StringVarP(&warmups[0], "a-warmup", "A", "", "A variant warmup shell script")
	rootCmd.Flags().StringVarP(&warmups[1], "b-warmup", "B", "", "B variant warmup shell script")
	rootCmd.Flags().StringVarP(&warmups[2], "c-warmup", "C", "", "C variant warmup shell script")
	rootCmd.Flags().StringVarP(&warmups[3], "d-warmup", "D", "", "D variant warmup shell script")
	rootCmd.Flags().BoolVarP(&randomOrder, "random-order", "r", false, "Randomise test execution order within each round")
	rootCmd.Flags().BoolVarP(&ignoreFirst, "ignore-first", "i", false, "Ignore the results of the first round")
	rootCmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Stop after n successful rounds (run forever if not specified)")
	rootCmd.Flags().BoolVarP(&mem, "mem", "m", false, "Also measure max resident set size")
	rootCmd.Flags().StringVar(&cfgfile, "config", "", "Benchmark configuration file (instead of the per-variant flags)")
	rootCmd.Flags().StringVar(&id, "uuid", "", "User provided UUID for the archived results")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug log")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
