package text

import "log/slog"

// Observer receives intermediate parsing decisions: which strategy matched
// a field, how segments were drawn, how many item lines were scanned.
// It exists so diagnostics can be asserted on in tests instead of being
// written unconditionally to process output.
type Observer interface {
	SegmentsDetected(markers, segments int)
	StrategyMatched(field, strategy, value string)
	ItemsScanned(segment, scanned, matched int)
	SegmentDropped(segment int, reason string)
}

// NopObserver discards all events. It is the default.
type NopObserver struct{}

func (NopObserver) SegmentsDetected(int, int)           {}
func (NopObserver) StrategyMatched(string, string, string) {}
func (NopObserver) ItemsScanned(int, int, int)          {}
func (NopObserver) SegmentDropped(int, string)          {}

// LogObserver writes parsing events to a structured logger.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates an observer backed by the given logger.
func NewLogObserver(l *slog.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) SegmentsDetected(markers, segments int) {
	o.log.Debug("segments detected", "markers", markers, "segments", segments)
}

func (o *LogObserver) StrategyMatched(field, strategy, value string) {
	o.log.Debug("strategy matched", "field", field, "strategy", strategy, "value", value)
}

func (o *LogObserver) ItemsScanned(segment, scanned, matched int) {
	o.log.Debug("items scanned", "segment", segment, "scanned", scanned, "matched", matched)
}

func (o *LogObserver) SegmentDropped(segment int, reason string) {
	o.log.Debug("segment dropped", "segment", segment, "reason", reason)
}
