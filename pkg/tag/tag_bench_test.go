//go:build bench
// +build bench

package tag

import "testing"

// Run with: go test -tags bench -bench=. ./pkg/tag

func BenchmarkParseMarkers2(b *testing.B) {
	input := markers2Bytes(markers2MultiLineBody, 0x00, 0x00)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseMarkers2(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarkers2_Encode(b *testing.B) {
	m, err := ParseMarkers2(markers2Bytes(markers2MultiLineBody, 0x00, 0x00))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Encode()
	}
}

func BenchmarkParseBeatgrid(b *testing.B) {
	grid := make([]NonTerminalMarker, 256)
	for i := range grid {
		grid[i] = NonTerminalMarker{PositionSecs: float32(i), BeatsTillNext: 4}
	}
	input := NewBeatgrid(grid, TerminalMarker{PositionSecs: 256, BPM: 128}).Encode()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseBeatgrid(input); err != nil {
			b.Fatal(err)
		}
	}
}
