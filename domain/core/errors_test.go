package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestEmptySampleError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("welch: %w", NewEmptySampleError(SecondSample))

	if !errors.Is(err, ErrEmptySample) {
		t.Fatalf("expected errors.Is(err, ErrEmptySample), got %v", err)
	}
	if !IsEmptySampleError(err) {
		t.Error("IsEmptySampleError should report true")
	}
	if IsDegenerateError(err) || IsComputationError(err) {
		t.Error("empty sample error must not match other kinds")
	}

	pos, ok := EmptySamplePosition(err)
	if !ok || pos != SecondSample {
		t.Errorf("expected second sample position, got %v (ok=%v)", pos, ok)
	}
	if got := err.Error(); got != "welch: empty sample: second sample has no elements" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestComputationErrors(t *testing.T) {
	err := NewComputationError("continued fraction did not converge after %d iterations", 500)
	if !IsComputationError(err) {
		t.Fatalf("expected computation error, got %v", err)
	}

	invalid := NewInvalidArgumentError("x", 1.5)
	if !IsComputationError(invalid) || !errors.Is(invalid, ErrInvalidArgument) {
		t.Errorf("invalid argument error should match both sentinels: %v", invalid)
	}

	if _, ok := EmptySamplePosition(err); ok {
		t.Error("computation error carries no sample position")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("run", "abc")
	if !IsNotFoundError(err) {
		t.Errorf("expected not found, got %v", err)
	}
	if !IsNotFoundError(ErrRunNotFound) {
		t.Error("ErrRunNotFound should wrap ErrNotFound")
	}
}

func TestSamplePositionString(t *testing.T) {
	if FirstSample.String() != "first" || SecondSample.String() != "second" {
		t.Errorf("unexpected names %q %q", FirstSample, SecondSample)
	}
	if SamplePosition(0).String() != "unknown" {
		t.Error("zero position should be unknown")
	}
}
