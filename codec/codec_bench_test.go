package codec

import (
	"testing"
)

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func benchmarkCodecUnmarshal[T any](b *testing.B, c Codec, data []byte, dst *T) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	var v T
	b.ResetTimer()
	for b.Loop() {
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
	if dst != nil {
		*dst = v
	}
}

func BenchmarkCodec_Marshal_Row(b *testing.B) {
	r := row{RowNumber: 123456, NumberA: 0.12345, NumberB: 98765.4321}

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, r) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, r) })
}

func BenchmarkCodec_Unmarshal_Row(b *testing.B) {
	jsonData := MustMarshal(JSON{}, row{RowNumber: 123456, NumberA: 0.12345, NumberB: 98765.4321})

	b.Run("stdlib", func(b *testing.B) {
		var sink row
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink row
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}

func BenchmarkCodec_Unmarshal_Map(b *testing.B) {
	jsonData := []byte(`{"row_number":"42","number_a":"4.75","number_b":"-1","tenant":"acme"}`)

	b.Run("stdlib", func(b *testing.B) {
		var sink map[string]any
		benchmarkCodecUnmarshal(b, JSON{}, jsonData, &sink)
		_ = sink
	})
	b.Run("go-json", func(b *testing.B) {
		var sink map[string]any
		benchmarkCodecUnmarshal(b, GoJSON{}, jsonData, &sink)
		_ = sink
	})
}
