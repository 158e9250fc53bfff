package bot

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind(t *testing.T) {
	custom := NewKindError("not_seekable", "not seekable")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid arguments", err: ErrInvalidArguments, want: "invalid_arguments"},
		{name: "detailed invalid arguments", err: InvalidArguments("need a url"), want: "invalid_arguments"},
		{name: "guild only", err: ErrGuildOnly, want: "invalid_arguments"},
		{name: "unknown", err: ErrUnknown, want: "unknown"},
		{name: "kind error", err: custom, want: "not_seekable"},
		{name: "wrapped kind error", err: fmt.Errorf("seek: %w", custom), want: "not_seekable"},
		{name: "foreign error", err: errors.New("boom"), want: "wrapped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorKind(tt.err); got != tt.want {
				t.Errorf("ErrorKind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvalidArguments_KeepsDetail(t *testing.T) {
	err := InvalidArguments("need a url")

	if !errors.Is(err, ErrInvalidArguments) {
		t.Error("expected error to wrap ErrInvalidArguments")
	}
	if err.Error() != "invalid arguments: need a url" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
