package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrator_MissingInputs(t *testing.T) {
	cases := [][3]string{
		{"", "Title", "quick"},
		{"summary", "", "quick"},
		{"summary", "Title", ""},
	}
	for _, c := range cases {
		gen := &fakeGen{resp: `{"response":{"summary":"spoken"}}`}
		n := NewNarrator(gen, Config{}.WithDefaults())
		text, ok := n.Adapt(context.Background(), c[0], c[1], c[2])
		assert.False(t, ok, "%v", c)
		assert.Empty(t, text)
		assert.Zero(t, gen.calls, "missing input must not call the model")
	}
}

func TestNarrator_Success(t *testing.T) {
	gen := &fakeGen{resp: `{"response":{"summary":"Here are the main points."}}`}
	n := NewNarrator(gen, Config{}.WithDefaults())

	text, ok := n.Adapt(context.Background(), "- point one", "Go Tips", "key_principles")
	assert.True(t, ok)
	assert.Equal(t, "Here are the main points.", text)
	assert.Equal(t, 1.0, gen.temp)
	assert.Contains(t, gen.user, "Summary Type : Key Principles")
	assert.Contains(t, gen.user, "Content: - point one")
}

func TestNarrator_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGen
	}{
		{"call error", &fakeGen{err: errors.New("boom")}},
		{"bad json", &fakeGen{resp: "nope"}},
		{"empty summary", &fakeGen{resp: `{"response":{"summary":""}}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNarrator(tt.gen, Config{}.WithDefaults())
			text, ok := n.Adapt(context.Background(), "original summary", "T", "quick")
			assert.False(t, ok)
			assert.Empty(t, text)
			assert.Equal(t, 1, tt.gen.calls)
		})
	}
}
