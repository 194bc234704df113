package evo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gocarina/gocsv"
)

// GenerationEvent is delivered to reporters once per completed generation advance.
type GenerationEvent struct {
	Generation int                 // Index of the generation that now starts evaluating
	Stats      GenerationStats     // Summary of the generation that was just replaced
	Candidates []CandidateSnapshot // The new population, in ranked-survivors-then-offspring order
}

// Reporter observes a Population. Callbacks run synchronously on the caller's goroutine
// and must not call back into the Population.
type Reporter interface {
	GenerationAdvanced(event GenerationEvent)
	CandidateDied(candidate CandidateSnapshot)
}

// GenerationFunc adapts a plain callback into a Reporter that ignores deaths.
type GenerationFunc func(event GenerationEvent)

func (f GenerationFunc) GenerationAdvanced(event GenerationEvent) { f(event) }
func (f GenerationFunc) CandidateDied(CandidateSnapshot)          {}

// ReporterSet fans every notification out to its reporters in registration order.
type ReporterSet struct {
	reporters []Reporter
}

// Add registers a reporter. Nil reporters are ignored.
func (rs *ReporterSet) Add(r Reporter) {
	if r != nil {
		rs.reporters = append(rs.reporters, r)
	}
}

// Len returns the number of registered reporters.
func (rs *ReporterSet) Len() int {
	return len(rs.reporters)
}

func (rs *ReporterSet) GenerationAdvanced(event GenerationEvent) {
	for _, r := range rs.reporters {
		r.GenerationAdvanced(event)
	}
}

func (rs *ReporterSet) CandidateDied(candidate CandidateSnapshot) {
	for _, r := range rs.reporters {
		r.CandidateDied(candidate)
	}
}

// LogReporter writes generation summaries at info level and deaths at debug level.
type LogReporter struct {
	Logger *slog.Logger
}

// NewLogReporter returns a LogReporter using logger, or slog.Default() when nil.
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{Logger: logger}
}

func (r *LogReporter) GenerationAdvanced(event GenerationEvent) {
	r.Logger.Info("generation advanced",
		slog.Int("generation", event.Generation),
		slog.Any("previous", event.Stats),
	)
}

func (r *LogReporter) CandidateDied(candidate CandidateSnapshot) {
	r.Logger.Debug("candidate died",
		slog.String("id", candidate.ID.String()),
		slog.Float64("fitness", candidate.Fitness),
	)
}

// CSVReporter appends one GenerationStats row per generation to a writer.
// The header is written with the first row only.
type CSVReporter struct {
	out           io.Writer
	headerWritten bool
	err           error
}

// NewCSVReporter creates a CSVReporter writing to out.
func NewCSVReporter(out io.Writer) *CSVReporter {
	return &CSVReporter{out: out}
}

func (r *CSVReporter) GenerationAdvanced(event GenerationEvent) {
	if r.err != nil {
		return
	}

	records := []GenerationStats{event.Stats}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			r.err = fmt.Errorf("writing generation stats: %w", err)
			return
		}
		r.headerWritten = true
		return
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		r.err = fmt.Errorf("writing generation stats: %w", err)
	}
}

func (r *CSVReporter) CandidateDied(CandidateSnapshot) {}

// Err returns the first write error. Once set, further rows are dropped.
func (r *CSVReporter) Err() error {
	return r.err
}
