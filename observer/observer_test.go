package observer

import (
	"context"
	"testing"

	chunkmd "github.com/nevindra/chunkmd"
	"github.com/nevindra/chunkmd/analyze"
)

// NewInstruments against the default (no-op) global providers must still
// return working instruments.
func TestNewInstruments(t *testing.T) {
	inst, err := NewInstruments()
	if err != nil {
		t.Fatalf("NewInstruments: %v", err)
	}
	if inst.Tracer == nil || inst.Meter == nil || inst.Logger == nil {
		t.Fatal("missing tracer, meter, or logger")
	}
	if inst.Documents == nil || inst.ChunkDuration == nil {
		t.Fatal("missing instruments")
	}
}

func TestWrapDelegates(t *testing.T) {
	inst, err := NewInstruments()
	if err != nil {
		t.Fatalf("NewInstruments: %v", err)
	}
	chunker, err := chunkmd.New(analyze.New())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	observed := Wrap(chunker, inst)

	result, err := observed.Chunk(context.Background(), "# Title\n\nSome text.\n")
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if !result.Success || len(result.Chunks) == 0 {
		t.Fatalf("result = %+v, want success with chunks", result)
	}
	if observed.Config().MaxChunkSize != chunker.Config().MaxChunkSize {
		t.Error("Config does not delegate")
	}
}
