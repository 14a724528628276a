package errors

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "carprice: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "carprice: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewLoadError(t *testing.T) {
	t.Run("missing keys", func(t *testing.T) {
		err := NewMissingKeysError("model.json", []string{"max_prices"})

		want := `carprice: failed to load parameter record "model.json": missing keys: max_prices`
		if err.Error() != want {
			t.Errorf("Error() = %v, want %v", err.Error(), want)
		}

		var loadErr *LoadError
		if !As(err, &loadErr) {
			t.Fatal("Error should be castable to *LoadError")
		}
		if len(loadErr.Missing) != 1 || loadErr.Missing[0] != "max_prices" {
			t.Errorf("Missing = %v, want [max_prices]", loadErr.Missing)
		}
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := New("unexpected end of JSON input")
		err := NewLoadError("model.json", cause)

		if !Is(err, cause) {
			t.Error("Expected LoadError to unwrap to its cause")
		}
		if !strings.Contains(err.Error(), "unexpected end of JSON input") {
			t.Errorf("Error() = %v, want cause in message", err.Error())
		}
	})
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("data.csv", []string{"price"})

	want := "carprice: data.csv: CSV must contain 'km' and 'price' columns (missing: price)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var schemaErr *SchemaError
	if !As(err, &schemaErr) {
		t.Error("Error should be castable to *SchemaError")
	}
}

func TestNewParseError(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := NewParseError("abc", cause)

	want := `carprice: cannot parse "abc" as a number`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	if !Is(err, strconv.ErrSyntax) {
		t.Error("Expected ParseError to unwrap to strconv.ErrSyntax")
	}
}

func TestNewDegenerateInputError(t *testing.T) {
	err := NewDegenerateInputError("R2Score", "total sum of squares is zero")

	want := "carprice: R2Score: degenerate input: total sum of squares is zero"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var degErr *DegenerateInputError
	if !As(err, &degErr) {
		t.Error("Error should be castable to *DegenerateInputError")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Cost", 10, 9)

	want := "carprice: Cost: length mismatch. Expected 10, got 9"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("GradientDescent", "Predict")

	want := "carprice: GradientDescent: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("learning_rate", "must be positive", -0.5)

	want := "carprice: validation failed for parameter 'learning_rate': must be positive (got: -0.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWarn(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(func(w error) {})

	Warn(NewExtrapolationWarning(300000, 240000))

	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "exceeds the training maximum") {
		t.Errorf("unexpected warning: %v", got[0])
	}

	// zerolog関数が設定されている場合はそちらが優先される
	var viaZerolog int
	SetZerologWarnFunc(func(w error) { viaZerolog++ })
	defer SetZerologWarnFunc(nil)

	Warn(NewRecordMismatchWarning("max_mileage", 240000, 230000))
	if viaZerolog != 1 || len(got) != 1 {
		t.Errorf("expected zerolog func to receive the warning, got zerolog=%d handler=%d", viaZerolog, len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in MaxScaler.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in MaxScaler.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "failed to load data from file %s", "data.csv")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "failed to load data from file data.csv"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}
