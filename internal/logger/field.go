package logger

import (
	"time"

	"github.com/leandrodaf/miditime/sdk/contracts"
)

// field implements contracts.Field for every backend in this package.
type field struct {
	key   string
	value interface{}
}

func (f *field) Bool(key string, val bool) contracts.Field {
	return &field{key, val}
}

func (f *field) Int(key string, val int) contracts.Field {
	return &field{key, val}
}

func (f *field) Float64(key string, val float64) contracts.Field {
	return &field{key, val}
}

func (f *field) String(key string, val string) contracts.Field {
	return &field{key, val}
}

func (f *field) Time(key string, val time.Time) contracts.Field {
	return &field{key, val}
}

func (f *field) Int64(key string, val int64) contracts.Field {
	return &field{key, val}
}

func (f *field) Error(key string, val error) contracts.Field {
	return &field{key, val}
}

func (f *field) Uint64(key string, val uint64) contracts.Field {
	return &field{key, val}
}

func (f *field) Uint8(key string, val uint8) contracts.Field {
	return &field{key, val}
}

// collect flattens fields built by this package, skipping foreign implementations.
func collect(fields []contracts.Field, fn func(key string, value interface{})) {
	for _, f := range fields {
		if v, ok := f.(*field); ok && v != nil && v.key != "" {
			fn(v.key, v.value)
		}
	}
}
