package helpers

import "testing"

func TestChunkStrings(t *testing.T) {
	ids := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = string(rune('a' + i))
		}
		return out
	}

	tests := []struct {
		name     string
		ids      []string
		size     int
		wantLens []int
	}{
		{name: "empty", ids: nil, size: 10, wantLens: nil},
		{name: "under limit", ids: ids(3), size: 10, wantLens: []int{3}},
		{name: "exact limit", ids: ids(10), size: 10, wantLens: []int{10}},
		{name: "one over", ids: ids(11), size: 10, wantLens: []int{10, 1}},
		{name: "multiple chunks", ids: ids(25), size: 10, wantLens: []int{10, 10, 5}},
		{name: "zero size", ids: ids(3), size: 0, wantLens: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkStrings(tt.ids, tt.size)
			if len(chunks) != len(tt.wantLens) {
				t.Fatalf("ChunkStrings() chunks = %d, want %d", len(chunks), len(tt.wantLens))
			}
			total := 0
			for i, c := range chunks {
				if len(c) != tt.wantLens[i] {
					t.Errorf("chunk %d length = %d, want %d", i, len(c), tt.wantLens[i])
				}
				total += len(c)
			}
			// A non-positive size yields no chunks, so there is nothing
			// to cover.
			if tt.size > 0 && total != len(tt.ids) {
				t.Errorf("chunks cover %d ids, want %d", total, len(tt.ids))
			}
		})
	}
}
