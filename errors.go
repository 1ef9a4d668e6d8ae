package chunkmd

import "fmt"

// ErrConfig reports an invalid ChunkConfig value. It is raised at
// construction and never silently recovered.
type ErrConfig struct {
	Field   string
	Message string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// ErrInput reports input the engine cannot process at all, such as text that
// is not valid UTF-8.
type ErrInput struct {
	Reason string
}

func (e *ErrInput) Error() string {
	return "input: " + e.Reason
}

// ErrSelection reports that no strategy applies to a document and fallback
// is disabled.
type ErrSelection struct {
	Reason string
}

func (e *ErrSelection) Error() string {
	return "strategy selection: " + e.Reason
}

// ErrStrategy reports a failure inside one strategy. Strategies return it
// wrapped in an Outcome; the fallback chain recovers it. It only crosses the
// public API when the terminal no-precondition strategy itself fails, which
// indicates a bug.
type ErrStrategy struct {
	Strategy string
	Message  string
}

func (e *ErrStrategy) Error() string {
	return fmt.Sprintf("%s: %s", e.Strategy, e.Message)
}
