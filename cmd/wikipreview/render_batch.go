package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alnah/go-wikipreview"
	"github.com/alnah/go-wikipreview/internal/fileutil"
	"github.com/alnah/go-wikipreview/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
	ErrUsage       = errors.New("invalid usage")
)

// Renderer is the rendering service used by the CLI.
type Renderer interface {
	RenderResult(wikitext string) wikipreview.Result
	Preview(wikitext string) string
	Document(wikitext, title string) (string, error)
}

// Compile-time interface implementation check.
var _ Renderer = (*wikipreview.Renderer)(nil)

// renderParams groups parameters shared across batch/file rendering.
type renderParams struct {
	renderer   Renderer
	standalone bool   // Wrap output in a full HTML document
	title      string // Document title override
	now        func() time.Time
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Degraded   bool
	Reason     error
	Warnings   []string // Conversion warnings from .json payloads
	Duration   time.Duration
}

// renderBatch processes files concurrently with a fixed number of workers.
// The Renderer is shared: it is safe for concurrent use.
func renderBatch(ctx context.Context, files []FileToRender, params *renderParams, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       context.Cause(ctx),
					}
					continue
				}
				results[idx] = renderFile(files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(f FileToRender, params *renderParams) RenderResult {
	start := params.now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	wikitext := string(content)
	if f.isConversionPayload() {
		payload, err := wikipreview.DecodeConversionResult(bytes.NewReader(content))
		if err != nil {
			return finish(err)
		}
		wikitext = payload.MediaWikiText
		result.Warnings = payload.Warnings
	}

	out, res, err := renderOutput(params, wikitext)
	if err != nil {
		return finish(err)
	}
	result.Degraded = res.Degraded
	result.Reason = res.Reason

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(out), filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	return finish(nil)
}

// renderOutput renders wikitext as a document or a sanitized fragment.
// The Result carries the degradation status of the render.
func renderOutput(params *renderParams, wikitext string) (string, wikipreview.Result, error) {
	res := params.renderer.RenderResult(wikitext)

	if params.standalone {
		doc, err := params.renderer.Document(wikitext, params.title)
		if err != nil {
			return "", res, err
		}
		return doc, res, nil
	}

	// Preview hides empty input; a written fragment keeps the placeholder.
	fragment := params.renderer.Preview(wikitext)
	if fragment == "" {
		fragment = res.HTML
	}
	return fragment, res, nil
}

// ResultSummary holds the count of succeeded, degraded and failed renders.
type ResultSummary struct {
	Succeeded int
	Degraded  int
	Failed    int
}

// countResults tallies render outcomes. Degraded renders count as succeeded.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		if r.Degraded {
			summary.Degraded++
		}
	}
	return summary
}

// printResults outputs render results using the environment writers.
// Returns the number of failed renders.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if r.Degraded {
			printDegraded(env, r.InputPath, r.Reason)
		}
		if verbose {
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, w)
			}
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		if summary.Degraded > 0 {
			fmt.Fprintf(env.Stdout, "\n%d succeeded (%d as plain text), %d failed\n", summary.Succeeded, summary.Degraded, summary.Failed)
		} else {
			fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		}
	}

	return summary.Failed
}

// printDegraded warns that an input fell back to escaped plain text.
func printDegraded(env *Environment, name string, reason error) {
	fmt.Fprintf(env.Stderr, "warning: %s rendered as plain text: %v%s\n", name, reason, hintForReason(reason))
}

// hintForReason returns a hint for a degradation reason, or "".
func hintForReason(reason error) string {
	switch {
	case errors.Is(reason, wikipreview.ErrNestingTooDeep):
		return hints.ForNestingTooDeep()
	case errors.Is(reason, wikipreview.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	default:
		return ""
	}
}
