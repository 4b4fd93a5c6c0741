package progress

import "github.com/batchlab/batchctl/internal/usecase"

// NewNopSink returns a sink that swallows all progress events, for JSON
// output and tests.
func NewNopSink() usecase.ProgressSink {
	return usecase.NopProgress{}
}
