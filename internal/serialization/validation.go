package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// entry is one tensor's byte range in the data section.
type entry struct {
	name       string
	begin, end int64
}

// validateEntries checks for out-of-bounds and overlapping byte ranges.
func validateEntries(entries []entry, dataSize int64) error {
	if len(entries) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(entries), MaxTensorCount),
		}
	}

	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].begin < sorted[j].begin
	})

	for i, e := range sorted {
		if e.begin < 0 || e.end < e.begin || e.end > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  e.name,
				Details: fmt.Sprintf("range [%d-%d] outside data size %d", e.begin, e.end, dataSize),
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if e.end > next.begin {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Tensor:  e.name,
					Tensor2: next.name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap", e.begin, e.end, next.begin, next.end),
				}
			}
		}
	}
	return nil
}

// validateName rejects empty, oversized and control-character names.
func validateName(name string) error {
	if name == "" || len(name) > MaxTensorNameLen {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: fmt.Sprintf("length %d not in [1, %d]", len(name), MaxTensorNameLen),
		}
	}
	if strings.ContainsAny(name, "\x00\n") {
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: "contains a control character",
		}
	}
	return nil
}
