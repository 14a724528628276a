package prediction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/YuminosukeSato/carprice/chart"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// Feature selects the bonus features run after the estimate.
type Feature int

const (
	FeaturePlot Feature = 1 << iota
	FeaturePrecision

	FeatureBoth = FeaturePlot | FeaturePrecision
)

const (
	promptMileage = "Enter the mileage (km) to estimate price: "
	promptBonus   = "\nDo you want to execute bonus features? (y/n): "
	promptFeature = "Which bonus feature? (1: plot, 2: precision, 3: both): "
)

// ParseMileage parses one line of user input. Non-numeric or non-finite
// input is a ParseError, a negative value a ValidationError.
func ParseMileage(input string) (float64, error) {
	s := strings.TrimSpace(input)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.NewParseError(s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.NewParseError(s, errors.Newf("%v is not a finite number", v))
	}
	if v < 0 {
		return 0, errors.NewValidationError("mileage", "must not be negative", v)
	}
	return v, nil
}

// Session is one interactive estimate over a line oriented reader.
type Session struct {
	predictor *Predictor
	in        *bufio.Reader
	out       io.Writer
	printer   *message.Printer
	logger    log.Logger

	plotPath string
	plotOpts chart.Options
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPlot sets the output file and figure options of the plot feature.
func WithPlot(path string, opts chart.Options) SessionOption {
	return func(s *Session) {
		s.plotPath = path
		s.plotOpts = opts
	}
}

// WithSessionLogger sets the logger used for feature failures.
func WithSessionLogger(logger log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session reading answers from in and writing prompts to out.
func NewSession(p *Predictor, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		predictor: p,
		in:        bufio.NewReader(in),
		out:       out,
		printer:   message.NewPrinter(language.English),
		plotPath:  chart.DefaultFile,
		plotOpts:  chart.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = p.logger
	}
	return s
}

// Run asks for a mileage, prints the estimate and optionally runs the bonus
// features. Closing the input early ends the session with io.ErrUnexpectedEOF.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n=== PRICE PREDICTION ===")

	mileage, err := s.askMileage(ctx)
	if err != nil {
		return err
	}

	price := s.predictor.Predict(mileage)
	if s.predictor.Extrapolates(mileage) {
		fmt.Fprintf(s.out, "Note: %s\n", errors.NewExtrapolationWarning(mileage, s.predictor.Params().MaxMileage))
	}
	s.printer.Fprintf(s.out, "\nEstimated price for %.0f km: %.2f€\n", mileage, price)

	fmt.Fprintln(s.out, "\nBonus features available:")
	fmt.Fprintln(s.out, "1. Plot regression graph")
	fmt.Fprintln(s.out, "2. Calculate precision (R² score)")

	yes, err := s.askYesNo(ctx)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(s.out, "Skipping bonus features.")
		fmt.Fprintln(s.out, "Program completed.")
		return nil
	}

	fmt.Fprintln(s.out, "\nExecuting bonus features...")
	feature, err := s.askFeature(ctx)
	if err != nil {
		return err
	}
	s.runFeatures(ctx, feature)

	fmt.Fprintln(s.out, "Program completed.")
	return nil
}

func (s *Session) askMileage(ctx context.Context) (float64, error) {
	for {
		line, err := s.ask(ctx, promptMileage)
		if err != nil {
			return 0, err
		}

		mileage, err := ParseMileage(line)
		if err == nil {
			return mileage, nil
		}

		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintln(s.out, "Please enter a valid number for mileage.")
		} else {
			fmt.Fprintln(s.out, "Please enter a positive mileage value.")
		}
	}
}

func (s *Session) askYesNo(ctx context.Context) (bool, error) {
	for {
		line, err := s.ask(ctx, promptBonus)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.out, "Please enter 'y' for yes or 'n' for no.")
	}
}

func (s *Session) askFeature(ctx context.Context) (Feature, error) {
	for {
		line, err := s.ask(ctx, promptFeature)
		if err != nil {
			return 0, err
		}

		switch strings.TrimSpace(line) {
		case "1":
			return FeaturePlot, nil
		case "2":
			return FeaturePrecision, nil
		case "3":
			return FeatureBoth, nil
		}
		fmt.Fprintln(s.out, "Please enter 1, 2, or 3.")
	}
}

// ask prints prompt and reads one line. A final line without newline is accepted.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "carprice: session cancelled")
	}

	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		if err == io.EOF {
			fmt.Fprintln(s.out)
			return "", errors.Wrap(io.ErrUnexpectedEOF, "carprice: input closed before an answer was given")
		}
		return "", errors.Wrap(err, "carprice: read input")
	}
	return line, nil
}

// runFeatures runs each selected feature under panic recovery. A failing
// feature is reported and the session continues.
func (s *Session) runFeatures(ctx context.Context, feature Feature) {
	if feature&FeaturePlot != 0 {
		err := errors.SafeExecute("plot regression", func() error {
			return s.predictor.Plot(ctx, s.plotPath, s.plotOpts)
		})
		if err != nil {
			s.logger.Error("Plot failed", err, log.OperationKey, log.OperationPlot)
			fmt.Fprintf(s.out, "Error while plotting: %v\n", err)
		} else {
			fmt.Fprintf(s.out, "Plot saved as '%s'.\n", s.plotPath)
		}
	}

	if feature&FeaturePrecision != 0 {
		var report PrecisionReport
		err := errors.SafeExecute("calculate precision", func() error {
			var err error
			report, err = s.predictor.Precision()
			return err
		})
		if err != nil {
			s.logger.Error("Precision failed", err, log.OperationKey, log.OperationScore)
			fmt.Fprintf(s.out, "Error calculating R² score: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "R² score: %.4f\n", report.R2)
		fmt.Fprintf(s.out, "Precision: %s\n", report.Quality)
		s.printer.Fprintf(s.out, "RMSE: %.2f€, MAE: %.2f€\n", report.RMSE, report.MAE)
	}
}
