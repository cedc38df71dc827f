// Command leveler runs a leveling plan and prints the report as YAML.
//
//	leveler -plan shipyard.yaml [-config leveling.yaml] [-trace spans.json]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/viant/leveling"
	"github.com/viant/leveling/progress"
	"gopkg.in/yaml.v3"
)

const (
	exitOK = iota
	exitUsage
	exitFailure
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("leveler", flag.ContinueOnError)
	flags.SetOutput(stderr)
	planURL := flags.String("plan", "", "plan URL (file path or any afs URL)")
	configURL := flags.String("config", "", "configuration URL")
	traceFile := flags.String("trace", "", "write OpenTelemetry spans to this file")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if *planURL == "" {
		fmt.Fprintln(stderr, "leveler: -plan is required")
		flags.Usage()
		return exitUsage
	}

	cfg := leveling.DefaultConfig()
	if *configURL != "" {
		var err error
		if cfg, err = leveling.LoadConfig(ctx, *configURL); err != nil {
			fmt.Fprintf(stderr, "leveler: %v\n", err)
			return exitFailure
		}
	}
	if *traceFile != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.OutputFile = *traceFile
	}
	srv, err := leveling.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "leveler: %v\n", err)
		return exitFailure
	}

	aPlan, err := srv.LoadPlan(ctx, *planURL)
	if err != nil {
		fmt.Fprintf(stderr, "leveler: %v\n", err)
		return exitFailure
	}
	ctx, tracker := progress.WithNewTracker(ctx, aPlan.Name, nil)
	report, err := srv.RunPlan(ctx, aPlan)
	if err != nil {
		fmt.Fprintf(stderr, "leveler: %v\n", err)
		return exitFailure
	}

	encoder := yaml.NewEncoder(stdout)
	encoder.SetIndent(2)
	if err = encoder.Encode(report); err != nil {
		fmt.Fprintf(stderr, "leveler: %v\n", err)
		return exitFailure
	}
	if err = encoder.Close(); err != nil {
		fmt.Fprintf(stderr, "leveler: %v\n", err)
		return exitFailure
	}
	if tracker.Snapshot().FailedTasks > 0 {
		return exitFailure
	}
	return exitOK
}
