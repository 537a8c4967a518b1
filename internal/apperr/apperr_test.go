package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain", err: New(Logic, "no update URL provided"), want: "no update URL provided"},
		{name: "formatted", err: Newf(Network, "download failed with status: %d", 503), want: "download failed with status: 503"},
		{name: "wrapped", err: Wrap(IO, "copy binary", errors.New("disk full")), want: "copy binary: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(New(Archive, "bad zip")); got != Archive {
		t.Errorf("KindOf = %q, want %q", got, Archive)
	}
	if got := KindOf(errors.New("anonymous")); got != "" {
		t.Errorf("KindOf(unclassified) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Wrap(ExternalTool, "spawn fetch tool", fs.ErrNotExist)
	outer := fmt.Errorf("job 1: %w", inner)

	if !Is(outer, ExternalTool) {
		t.Fatalf("Is(%v, ExternalTool) = false", outer)
	}
	if !errors.Is(outer, fs.ErrNotExist) {
		t.Fatalf("cause lost through Wrap: %v", outer)
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(IO, "noop", nil); err != nil {
		t.Fatalf("Wrap(nil) = %v, want nil", err)
	}
}
