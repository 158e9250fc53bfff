package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewPingResult(t *testing.T) {
	before := time.Now()
	result := NewPingResult()
	after := time.Now()

	if result.Message != "Pong!" {
		t.Errorf("expected message %q, got %q", "Pong!", result.Message)
	}
	if result.Timestamp.Before(before) || result.Timestamp.After(after) {
		t.Error("expected timestamp to be between before and after")
	}
}

func TestNewEchoResult(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "single word", args: []string{"hello"}, want: "hello"},
		{name: "several words", args: []string{"hello", "there", "world"}, want: "hello there world"},
		{name: "no args", args: nil, wantErr: ErrNothingToEcho},
		{name: "blank args", args: []string{" ", ""}, wantErr: ErrNothingToEcho},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEchoResult(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Text != tt.want {
				t.Errorf("expected %q, got %q", tt.want, result.Text)
			}
		})
	}
}
