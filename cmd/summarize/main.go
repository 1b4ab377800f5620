// Package main provides a CLI for summarizing a document from a file or stdin.
// Usage: doc-digest-summarize [--file PATH] [--max-words N] [--min-words N] [--output json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"doc-digest/internal/infra/summarizer"
	"doc-digest/internal/infra/tokenizer"
	"doc-digest/internal/observability/logging"
	"doc-digest/internal/usecase/summary"
)

// SummaryOutput is the JSON output format for summarization results.
type SummaryOutput struct {
	Outcome        string `json:"outcome"`
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
	ChunkCount     int    `json:"chunk_count"`
	FailedChunks   int    `json:"failed_chunks"`
}

func main() {
	var (
		filePath     string
		maxWords     int
		minWords     int
		outputFormat string
		timeout      time.Duration
	)

	flag.StringVar(&filePath, "file", "-", "Path to the document to summarize, or '-' for stdin")
	flag.IntVar(&maxWords, "max-words", 0, "Maximum summary length in words (0 = derive from document size)")
	flag.IntVar(&minWords, "min-words", 0, "Minimum summary length in words (0 = derive from document size)")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall timeout for the pipeline")
	flag.Parse()

	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(os.Stderr, "Error: Invalid output format '%s' (must be 'text' or 'json')\n", outputFormat)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: doc-digest-summarize [--file PATH] [--max-words N] [--min-words N] [--output json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  doc-digest-summarize --file report.txt")
		fmt.Fprintln(os.Stderr, "  cat report.txt | doc-digest-summarize")
		fmt.Fprintln(os.Stderr, "  doc-digest-summarize --file report.txt --max-words 200 --output json")
		os.Exit(1)
	}

	logger := logging.NewTextLogger()
	slog.SetDefault(logger)

	text, err := readInput(filePath)
	if err != nil {
		logger.Error("failed to read input", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to read input: %v\n", err)
		os.Exit(1)
	}

	policy, err := summary.LoadPolicy()
	if err != nil {
		logger.Error("failed to load summarization policy", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid summarization configuration: %v\n", err)
		os.Exit(1)
	}

	tok, err := tokenizer.New(tokenizer.DefaultEncoding)
	if err != nil {
		logger.Error("failed to load tokenizer encoding", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to load tokenizer: %v\n", err)
		os.Exit(1)
	}

	summarizerCfg, err := summarizer.LoadConfig()
	if err != nil {
		logger.Error("failed to load summarizer configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid summarizer configuration: %v\n", err)
		os.Exit(1)
	}
	model, err := summarizer.New(summarizerCfg)
	if err != nil {
		logger.Error("failed to initialize summarization model", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize model: %v\n", err)
		os.Exit(1)
	}

	svc := summary.NewService(tok, model, policy, nil)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("summarizing document",
		slog.String("provider", string(summarizerCfg.Provider)),
		slog.Int("max_words", maxWords),
		slog.Int("min_words", minWords))

	result, err := svc.Summarize(ctx, summary.Request{
		Text:     text,
		MaxWords: maxWords,
		MinWords: minWords,
	})
	if err != nil {
		logger.Error("summarization failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Summarization failed: %v\n", err)
		os.Exit(1)
	}

	if outputFormat == "json" {
		outputJSON(result)
	} else {
		outputText(result)
	}
}

// readInput reads the document from the given path, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// outputText prints the result in human-readable form.
func outputText(result summary.Result) {
	fmt.Printf("%s\n\n", result.Summary)
	fmt.Printf("Outcome: %s\n", result.Outcome)
	fmt.Printf("Original length: %d words\n", result.OriginalWordCount)
	fmt.Printf("Summary length: %d words\n", result.SummaryWordCount)
	if result.ChunkCount > 0 {
		fmt.Printf("Chunks: %d (%d failed)\n", result.ChunkCount, result.FailedChunks)
	}
}

// outputJSON prints the result as indented JSON.
func outputJSON(result summary.Result) {
	output := SummaryOutput{
		Outcome:        string(result.Outcome),
		Summary:        result.Summary,
		OriginalLength: result.OriginalWordCount,
		SummaryLength:  result.SummaryWordCount,
		ChunkCount:     result.ChunkCount,
		FailedChunks:   result.FailedChunks,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}
