package mkboot

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/byte4ever/bootdat/boot"
	"github.com/byte4ever/bootdat/digest"
	"github.com/byte4ever/bootdat/manifest"
	"github.com/byte4ever/bootdat/report"
)

// Config holds all settings for a container build run.
// Use a Config struct instead of many arguments.
type Config struct {
	// ManifestPath is a YAML manifest describing a batch
	// of builds. Mutually exclusive with PayloadPath.
	ManifestPath string

	// PayloadPath is the stage-2 image for a single
	// build. Mutually exclusive with ManifestPath.
	PayloadPath string

	// OutputPath is the output file for a single build
	// (default "boot.dat").
	OutputPath string

	// VariantName selects the loader variant for a
	// single build (default "insane").
	VariantName string

	// ReportPath is an optional JSON report destination.
	ReportPath string

	// Sidecar writes a .digest file next to each written
	// output.
	Sidecar bool

	// Parallelism is the number of concurrent build
	// workers for manifest runs.
	Parallelism int

	// DryRun builds and logs without writing any file.
	DryRun bool

	// Vars holds extra output pattern variables.
	Vars map[string]string
}

// Run executes a container build run: single payload or
// manifest batch, skip-if-unchanged outputs, optional
// sidecar digests and JSON report.
func Run(ctx context.Context, cfg Config) error {
	const errCtx = "running container builds"

	// Step 1: Normalize inputs into build entries.
	entries, err := planEntries(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 2: Build every entry.
	rows, err := buildAll(ctx, cfg, entries)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	// Step 3: Emit the run report.
	if cfg.ReportPath == "" {
		return nil
	}

	if err := writeReport(cfg, rows); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// planEntries normalizes the two input modes into a list
// of manifest entries.
func planEntries(cfg Config) ([]manifest.Entry, error) {
	const errCtx = "planning builds"

	switch {
	case cfg.ManifestPath != "" && cfg.PayloadPath != "":
		return nil, fmt.Errorf(
			"%s: manifest and payload are mutually exclusive",
			errCtx,
		)

	case cfg.ManifestPath != "":
		man, err := manifest.Load(cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return man.Builds, nil

	case cfg.PayloadPath != "":
		return []manifest.Entry{singleEntry(cfg)}, nil

	default:
		return nil, fmt.Errorf(
			"%s: neither manifest nor payload given",
			errCtx,
		)
	}
}

// singleEntry builds the one-entry plan for direct
// payload mode.
func singleEntry(cfg Config) manifest.Entry {
	en := manifest.Entry{
		Name:    trimExt(filepath.Base(cfg.PayloadPath)),
		Payload: cfg.PayloadPath,
		Variant: cfg.VariantName,
		Output:  cfg.OutputPath,
	}

	if en.Variant == "" {
		en.Variant = manifest.DefaultVariant
	}

	if en.Output == "" {
		en.Output = "boot.dat"
	}

	return en
}

// buildAll runs every entry on a worker pool bounded by
// cfg.Parallelism and returns report rows in entry order.
func buildAll(
	ctx context.Context,
	cfg Config,
	entries []manifest.Entry,
) ([]report.Build, error) {
	const errCtx = "building containers"

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	slog.Info(
		"building containers",
		"count", len(entries),
		"parallelism", parallelism,
		"dry_run", cfg.DryRun,
	)

	rows := make([]report.Build, len(entries))

	// Worker pool with bounded concurrency.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	sem := make(chan struct{}, parallelism)

	for i, en := range entries {
		// Check for context cancellation.
		if ctx.Err() != nil {
			mu.Lock()
			errs = append(errs, ctx.Err())
			mu.Unlock()

			break
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, entry manifest.Entry) {
			defer wg.Done()
			defer func() { <-sem }()

			row, buildErr := buildEntry(cfg, entry)
			if buildErr != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf(
					"build %s: %w", entry.Name, buildErr,
				))
				mu.Unlock()

				return
			}

			rows[idx] = row
		}(i, en)
	}

	wg.Wait()

	if len(errs) > 0 {
		return nil, fmt.Errorf(
			"%s: %d errors, first: %w",
			errCtx, len(errs), errs[0],
		)
	}

	return rows, nil
}

// buildEntry builds one container and returns its report
// row. An output whose content already matches the fresh
// container is not rewritten.
func buildEntry(
	cfg Config,
	en manifest.Entry,
) (report.Build, error) {
	const errCtx = "building container"

	payload, err := os.ReadFile(en.Payload) //nolint:gosec // paths from CLI flags
	if err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: read payload: %w", errCtx, err,
		)
	}

	vr, err := boot.VariantByName(en.Variant)
	if err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	by, err := boot.Build(payload, vr)
	if err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	out, err := en.OutputPath(cfg.Vars)
	if err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	fresh := digest.Hex(by)

	row := report.Build{
		Name:          en.Name,
		Variant:       en.Variant,
		Output:        out,
		PayloadSize:   len(payload),
		Size:          len(by),
		PayloadSHA256: digest.Hex(payload),
		BootDatSHA256: fresh,
	}

	existing, err := digest.File(out)
	if err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: digest existing output: %w", errCtx, err,
		)
	}

	if existing == fresh {
		slog.Info(
			"output unchanged, skipping",
			"name", en.Name,
			"output", out,
		)

		return row, nil
	}

	if cfg.DryRun {
		slog.Info(
			"dry run: skipping write",
			"name", en.Name,
			"output", out,
			"size", len(by),
		)

		return row, nil
	}

	if err := writeOutput(out, by); err != nil {
		return report.Build{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	slog.Info(
		"container written",
		"name", en.Name,
		"variant", vr.String(),
		"output", out,
		"size", len(by),
	)

	if cfg.Sidecar {
		if err := digest.SaveSidecar(out); err != nil {
			return report.Build{}, fmt.Errorf(
				"%s: save sidecar: %w", errCtx, err,
			)
		}
	}

	return row, nil
}

// writeOutput writes the container bytes, creating parent
// directories as needed.
func writeOutput(path string, data []byte) error {
	const errCtx = "writing output"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	//nolint:gosec // permissions match distributable artifacts
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// writeReport renders the JSON run report.
func writeReport(
	cfg Config,
	rows []report.Build,
) error {
	const errCtx = "writing report"

	if cfg.DryRun {
		slog.Info(
			"dry run: skipping report",
			"report", cfg.ReportPath,
		)

		return nil
	}

	fi, err := os.Create(cfg.ReportPath) //nolint:gosec // paths from CLI flags
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil {
			slog.Error(
				"failed to close report",
				"error", closeErr,
			)
		}
	}()

	if err := report.Write(
		fi, report.New(rows),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"report written",
		"report", cfg.ReportPath,
		"builds", len(rows),
	)

	return nil
}

// trimExt strips the file extension from name.
func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
