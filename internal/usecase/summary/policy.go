package summary

import (
	"fmt"

	"doc-digest/pkg/config"
)

// Policy holds the tuning constants of the summarization pipeline.
//
// The ratios were inherited from the original service and work well in
// practice, but none of them is load-bearing for correctness: every value can
// be overridden through SUMMARY_* environment variables without touching the
// pipeline code.
type Policy struct {
	// MinDocumentWords is the minimum document size worth summarizing.
	// Shorter documents get the too-short sentinel result.
	MinDocumentWords int

	// MaxSummaryWordsCap caps the derived max_words default for very long documents.
	MaxSummaryWordsCap int

	// MinSummaryWordsFloor is the lowest derived min_words default.
	MinSummaryWordsFloor int

	// DefaultMaxRatio derives max_words from the document word count when the
	// caller supplies no override (max_words = ratio × word_count, capped).
	DefaultMaxRatio float64

	// DefaultMinRatio derives min_words from the document word count when the
	// caller supplies no override (min_words = ratio × word_count, floored).
	DefaultMinRatio float64

	// MinToMaxClampRatio bounds min_words relative to max_words so the target
	// envelope never collapses (min_words ≤ ratio × max_words).
	MinToMaxClampRatio float64

	// TokensPerWord converts word budgets into model token budgets.
	TokensPerWord float64

	// ChunkTokenLimit is the token window size used to split the document.
	ChunkTokenLimit int

	// ChunkMaxTokensFloor is the minimum per-chunk max_tokens budget.
	ChunkMaxTokensFloor int

	// ChunkMaxTokensBuffer is added to each chunk's share of the global
	// max_tokens budget to leave room for the combination pass.
	ChunkMaxTokensBuffer int

	// ChunkMinTokensFloor is the minimum per-chunk min_tokens budget.
	ChunkMinTokensFloor int

	// ChunkMinToMaxRatio bounds a chunk's min_tokens relative to its max_tokens.
	ChunkMinToMaxRatio float64

	// MinChunkWords is the smallest chunk worth sending to the model.
	// Smaller chunks are skipped and contribute no partial summary.
	MinChunkWords int

	// ShortSummaryRatio triggers the single-summary regeneration pass when the
	// only partial is shorter than ratio × min_words.
	ShortSummaryRatio float64

	// RegenerationSourceRatio requires the document to be at least
	// ratio × min_words before a regeneration pass is attempted.
	RegenerationSourceRatio float64

	// RegenerationWindowRunes limits how much of the original document is fed
	// to the regeneration pass.
	RegenerationWindowRunes int

	// RefineThresholdRatio triggers the joined-summary refinement pass when
	// the joined text exceeds ratio × max_words.
	RefineThresholdRatio float64

	// ChunkConcurrency is the number of chunk summarization calls allowed in
	// flight at once. 1 preserves strictly sequential dispatch; higher values
	// parallelize the calls while keeping partials in chunk order.
	ChunkConcurrency int
}

// DefaultPolicy returns the pipeline policy with the inherited tuning values.
func DefaultPolicy() Policy {
	return Policy{
		MinDocumentWords:        50,
		MaxSummaryWordsCap:      1500,
		MinSummaryWordsFloor:    50,
		DefaultMaxRatio:         0.5,
		DefaultMinRatio:         0.25,
		MinToMaxClampRatio:      0.9,
		TokensPerWord:           1.3,
		ChunkTokenLimit:         1024,
		ChunkMaxTokensFloor:     150,
		ChunkMaxTokensBuffer:    50,
		ChunkMinTokensFloor:     80,
		ChunkMinToMaxRatio:      0.7,
		MinChunkWords:           30,
		ShortSummaryRatio:       0.8,
		RegenerationSourceRatio: 2.0,
		RegenerationWindowRunes: 10000,
		RefineThresholdRatio:    1.2,
		ChunkConcurrency:        1,
	}
}

// LoadPolicy loads the pipeline policy from SUMMARY_* environment variables,
// falling back to the defaults for unset or invalid values.
func LoadPolicy() (Policy, error) {
	def := DefaultPolicy()

	p := Policy{
		MinDocumentWords:        config.GetEnvInt("SUMMARY_MIN_DOCUMENT_WORDS", def.MinDocumentWords),
		MaxSummaryWordsCap:      config.GetEnvInt("SUMMARY_MAX_WORDS_CAP", def.MaxSummaryWordsCap),
		MinSummaryWordsFloor:    config.GetEnvInt("SUMMARY_MIN_WORDS_FLOOR", def.MinSummaryWordsFloor),
		DefaultMaxRatio:         config.GetEnvFloat("SUMMARY_DEFAULT_MAX_RATIO", def.DefaultMaxRatio),
		DefaultMinRatio:         config.GetEnvFloat("SUMMARY_DEFAULT_MIN_RATIO", def.DefaultMinRatio),
		MinToMaxClampRatio:      config.GetEnvFloat("SUMMARY_MIN_TO_MAX_CLAMP_RATIO", def.MinToMaxClampRatio),
		TokensPerWord:           config.GetEnvFloat("SUMMARY_TOKENS_PER_WORD", def.TokensPerWord),
		ChunkTokenLimit:         config.GetEnvInt("SUMMARY_CHUNK_TOKEN_LIMIT", def.ChunkTokenLimit),
		ChunkMaxTokensFloor:     config.GetEnvInt("SUMMARY_CHUNK_MAX_TOKENS_FLOOR", def.ChunkMaxTokensFloor),
		ChunkMaxTokensBuffer:    config.GetEnvInt("SUMMARY_CHUNK_MAX_TOKENS_BUFFER", def.ChunkMaxTokensBuffer),
		ChunkMinTokensFloor:     config.GetEnvInt("SUMMARY_CHUNK_MIN_TOKENS_FLOOR", def.ChunkMinTokensFloor),
		ChunkMinToMaxRatio:      config.GetEnvFloat("SUMMARY_CHUNK_MIN_TO_MAX_RATIO", def.ChunkMinToMaxRatio),
		MinChunkWords:           config.GetEnvInt("SUMMARY_MIN_CHUNK_WORDS", def.MinChunkWords),
		ShortSummaryRatio:       config.GetEnvFloat("SUMMARY_SHORT_SUMMARY_RATIO", def.ShortSummaryRatio),
		RegenerationSourceRatio: config.GetEnvFloat("SUMMARY_REGENERATION_SOURCE_RATIO", def.RegenerationSourceRatio),
		RegenerationWindowRunes: config.GetEnvInt("SUMMARY_REGENERATION_WINDOW_RUNES", def.RegenerationWindowRunes),
		RefineThresholdRatio:    config.GetEnvFloat("SUMMARY_REFINE_THRESHOLD_RATIO", def.RefineThresholdRatio),
		ChunkConcurrency:        config.GetEnvInt("SUMMARY_CHUNK_CONCURRENCY", def.ChunkConcurrency),
	}

	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("invalid summary policy: %w", err)
	}

	return p, nil
}

// Validate checks the policy for values that would break the pipeline.
func (p Policy) Validate() error {
	if p.MinDocumentWords <= 0 {
		return fmt.Errorf("min document words must be positive, got %d", p.MinDocumentWords)
	}
	if p.MaxSummaryWordsCap <= 0 {
		return fmt.Errorf("max summary words cap must be positive, got %d", p.MaxSummaryWordsCap)
	}
	if p.DefaultMaxRatio <= 0 || p.DefaultMaxRatio > 1 {
		return fmt.Errorf("default max ratio must be in (0, 1], got %v", p.DefaultMaxRatio)
	}
	if p.DefaultMinRatio <= 0 || p.DefaultMinRatio > p.DefaultMaxRatio {
		return fmt.Errorf("default min ratio must be in (0, %v], got %v", p.DefaultMaxRatio, p.DefaultMinRatio)
	}
	if p.MinToMaxClampRatio <= 0 || p.MinToMaxClampRatio > 1 {
		return fmt.Errorf("min-to-max clamp ratio must be in (0, 1], got %v", p.MinToMaxClampRatio)
	}
	if p.TokensPerWord <= 0 {
		return fmt.Errorf("tokens per word must be positive, got %v", p.TokensPerWord)
	}
	if p.ChunkTokenLimit <= 0 {
		return fmt.Errorf("chunk token limit must be positive, got %d", p.ChunkTokenLimit)
	}
	if p.ChunkMinToMaxRatio <= 0 || p.ChunkMinToMaxRatio > 1 {
		return fmt.Errorf("chunk min-to-max ratio must be in (0, 1], got %v", p.ChunkMinToMaxRatio)
	}
	if p.ShortSummaryRatio <= 0 || p.ShortSummaryRatio >= 1 {
		return fmt.Errorf("short summary ratio must be in (0, 1), got %v", p.ShortSummaryRatio)
	}
	if p.RegenerationSourceRatio < 1 {
		return fmt.Errorf("regeneration source ratio must be >= 1, got %v", p.RegenerationSourceRatio)
	}
	if p.RegenerationWindowRunes <= 0 {
		return fmt.Errorf("regeneration window must be positive, got %d", p.RegenerationWindowRunes)
	}
	if p.RefineThresholdRatio < 1 {
		return fmt.Errorf("refine threshold ratio must be >= 1, got %v", p.RefineThresholdRatio)
	}
	if p.ChunkConcurrency <= 0 {
		return fmt.Errorf("chunk concurrency must be positive, got %d", p.ChunkConcurrency)
	}
	return nil
}
