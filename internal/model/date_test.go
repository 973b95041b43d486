package model

import (
	"encoding/json"
	"testing"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"iso date", `"1866-01-01"`, "1866-01-01", false},
		{"slash date", `"1866/01/01"`, "1866-01-01", false},
		{"rfc3339", `"1866-01-01T00:00:00Z"`, "1866-01-01", false},
		{"empty string", `""`, "", false},
		{"garbage", `"yesterday"`, "", true},
		{"number", `1866`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want == "" {
				if !d.IsZero() {
					t.Errorf("expected zero time, got %v", d.Time)
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	var zero Date
	b, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero returned error: %v", err)
	}
	if string(b) != "null" {
		t.Errorf("expected null for zero date, got %s", b)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"1866-01-01"`), &d); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	b, err = json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(b) != `"1866-01-01"` {
		t.Errorf("expected quoted iso date, got %s", b)
	}
}
