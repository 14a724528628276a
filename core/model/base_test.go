package model

import (
	"testing"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

func TestBaseEstimatorState(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Fatal("zero value should not be fitted")
	}

	err := e.RequireFitted("MaxScaler", "Transform")
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}

	e.SetFitted()
	if err := e.RequireFitted("MaxScaler", "Transform"); err != nil {
		t.Errorf("unexpected error after SetFitted: %v", err)
	}

	e.Reset()
	if e.IsFitted() {
		t.Error("Reset should clear the fitted state")
	}
}
