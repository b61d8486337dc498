package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForVisitsEachIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 7, 16} {
		n := 1001
		hits := make([]int32, n)
		For(n, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		}, Workers(workers))

		for i, h := range hits {
			if h != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestForRangeChunks(t *testing.T) {
	cfg := Workers(4)
	var chunks, total int64
	ForRange(10, func(start, end int) {
		atomic.AddInt64(&chunks, 1)
		atomic.AddInt64(&total, int64(end-start))
	}, cfg)

	if total != 10 {
		t.Errorf("chunks cover %d items, want 10", total)
	}
	if chunks != int64(cfg.Partitions(10)) {
		t.Errorf("ran %d chunks, Partitions says %d", chunks, cfg.Partitions(10))
	}
	if cfg.Partitions(10) != 4 {
		t.Errorf("Partitions(10) = %d, want 4", cfg.Partitions(10))
	}
}

func TestFor2D(t *testing.T) {
	rows, cols := 4, 8
	results := make([][]int32, rows)
	for r := range results {
		results[r] = make([]int32, cols)
	}

	For2D(rows, cols, func(r, c int) {
		atomic.AddInt32(&results[r][c], 1)
	}, Workers(3))

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if results[r][c] != 1 {
				t.Errorf("cell [%d][%d] visited %d times", r, c, results[r][c])
			}
		}
	}
}

func TestForBatch(t *testing.T) {
	cfg := DefaultConfig()

	batch, channels := 4, 8
	results := make([][]bool, batch)
	for b := range results {
		results[b] = make([]bool, channels)
	}

	ForBatch(batch, channels, func(b, c int) {
		results[b][c] = true
	}, cfg)

	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if !results[b][c] {
				t.Errorf("Missing result at [%d][%d]", b, c)
			}
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
	if cfg.Partitions(100) != 1 {
		t.Errorf("disabled config should use one partition, got %d", cfg.Partitions(100))
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Test that small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	For(0, func(_ int) { called = true }, DefaultConfig())
	For2D(0, 5, func(_, _ int) { called = true }, DefaultConfig())
	if called {
		t.Error("empty ranges must not invoke the body")
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, Sequential())
		}
	})
}
