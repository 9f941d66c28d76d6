// Command mkboot builds boot.dat containers for Nintendo
// Switch payload loaders. It wraps a single stage-2
// payload, or a batch of payloads described by a YAML
// manifest, and can emit .digest sidecars and a JSON
// build report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/bootdat/mkboot"
)

// sliceFlag implements flag.Value for multi-value string
// flags (repeated --flag=val usage).
type sliceFlag []string

// String returns the flag value as a comma-separated
// string representation.
func (s *sliceFlag) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *sliceFlag) Set(val string) error {
	*s = append(*s, val)

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // CLI flag setup is inherently long
func run() error {
	const errCtx = "running mkboot"

	// Input flags.
	manifestPath := flag.String(
		"manifest", "",
		"YAML manifest describing a batch of builds",
	)
	payloadPath := flag.String(
		"payload", "",
		"Stage-2 payload file for a single build",
	)

	// Output flags.
	outputPath := flag.String(
		"output", "boot.dat",
		"Output file for a single build",
	)
	variantName := flag.String(
		"variant", "insane",
		"Loader variant: insane or ctcaer",
	)
	reportPath := flag.String(
		"report", "",
		"JSON build report destination",
	)
	sidecar := flag.Bool(
		"digest", false,
		"Write .digest sidecars next to outputs",
	)

	// Run flags.
	parallelism := flag.Int(
		"parallelism", 4,
		"Number of concurrent build workers",
	)
	dryRun := flag.Bool(
		"dry_run", false,
		"Build and log without writing files",
	)

	var vars sliceFlag

	flag.Var(
		&vars,
		"var",
		"Extra NAME=VALUE output variable (repeatable)",
	)

	flag.Parse()

	extra, err := parseVars(vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg := mkboot.Config{
		ManifestPath: *manifestPath,
		PayloadPath:  *payloadPath,
		OutputPath:   *outputPath,
		VariantName:  *variantName,
		ReportPath:   *reportPath,
		Sidecar:      *sidecar,
		Parallelism:  *parallelism,
		DryRun:       *dryRun,
		Vars:         extra,
	}

	if err := mkboot.Run(
		context.Background(), cfg,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// parseVars splits NAME=VALUE pairs into a map.
func parseVars(pairs []string) (map[string]string, error) {
	const errCtx = "parsing variables"

	vars := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf(
				"%s: malformed pair %q, want NAME=VALUE",
				errCtx, pair,
			)
		}

		vars[parts[0]] = parts[1]
	}

	return vars, nil
}
