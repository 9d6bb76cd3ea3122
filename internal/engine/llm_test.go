package engine

import (
	"context"
	"testing"
)

// fakeGen records calls and returns a canned completion.
type fakeGen struct {
	calls  int
	system string
	user   string
	temp   float64
	resp   string
	err    error
}

func (f *fakeGen) Generate(_ context.Context, system, user string, temperature float64) (string, error) {
	f.calls++
	f.system, f.user, f.temp = system, user, temperature
	return f.resp, f.err
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.in); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		summary  string
		date     string // "" = nil
		wantErr  bool
	}{
		{
			name:    "summary and date",
			raw:     `{"response":{"summary":"- point","published_date":"2024-03-01"}}`,
			summary: "- point",
			date:    "2024-03-01",
		},
		{
			name:    "null date",
			raw:     `{"response":{"summary":"s","published_date":null}}`,
			summary: "s",
		},
		{
			name:    "string null date",
			raw:     `{"response":{"summary":"s","published_date":"null"}}`,
			summary: "s",
		},
		{
			name:    "missing date",
			raw:     `{"response":{"summary":"s"}}`,
			summary: "s",
		},
		{
			name:    "numeric date is ignored",
			raw:     `{"response":{"summary":"s","published_date":20240301}}`,
			summary: "s",
		},
		{name: "no response", raw: `{"summary":"s"}`, wantErr: true},
		{name: "no summary", raw: `{"response":{"published_date":"2024-01-01"}}`, wantErr: true},
		{name: "not json", raw: `Here is your summary`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, date, err := decodeEnvelope(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if summary != tt.summary {
				t.Errorf("summary = %q, want %q", summary, tt.summary)
			}
			switch {
			case tt.date == "" && date != nil:
				t.Errorf("date = %q, want nil", *date)
			case tt.date != "" && (date == nil || *date != tt.date):
				t.Errorf("date = %v, want %q", date, tt.date)
			}
		})
	}
}

func TestCallLLMCountsErrors(t *testing.T) {
	before := GetMetrics()
	gen := &fakeGen{resp: "```json\n{}\n```"}
	out, err := callLLM(context.Background(), gen, "sys", "user", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if out != "{}" {
		t.Errorf("out = %q, want fences stripped", out)
	}
	after := GetMetrics()
	if after["llm_calls"]-before["llm_calls"] != 1 {
		t.Error("llm_calls not incremented")
	}
}
