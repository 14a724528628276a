// Package errors はcarprice全体のエラーハンドリングと警告システムを提供します。
// cockroachdb/errors をベースに、スタックトレース付きの構造化されたエラー型を定義します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("carprice-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ExtrapolationWarning は学習データの範囲外の走行距離で予測した場合の警告です。
type ExtrapolationWarning struct {
	Mileage    float64
	MaxMileage float64
}

func (w *ExtrapolationWarning) Error() string {
	return fmt.Sprintf("mileage %.0f km exceeds the training maximum %.0f km; the estimate is extrapolated", w.Mileage, w.MaxMileage)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ExtrapolationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("mileage", w.Mileage).
		Float64("max_mileage", w.MaxMileage).
		Str("type", "ExtrapolationWarning")
}

// NewExtrapolationWarning は新しいExtrapolationWarningを作成します。
func NewExtrapolationWarning(mileage, maxMileage float64) *ExtrapolationWarning {
	return &ExtrapolationWarning{Mileage: mileage, MaxMileage: maxMileage}
}

// RecordMismatchWarning は保存されたパラメータの正規化係数とデータから再計算した値が一致しない場合の警告です。
type RecordMismatchWarning struct {
	Field    string
	Recorded float64
	Computed float64
}

func (w *RecordMismatchWarning) Error() string {
	return fmt.Sprintf("parameter record %s=%g differs from the value %g derived from the training data", w.Field, w.Recorded, w.Computed)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *RecordMismatchWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("field", w.Field).
		Float64("recorded", w.Recorded).
		Float64("computed", w.Computed).
		Str("type", "RecordMismatchWarning")
}

// NewRecordMismatchWarning は新しいRecordMismatchWarningを作成します。
func NewRecordMismatchWarning(field string, recorded, computed float64) *RecordMismatchWarning {
	return &RecordMismatchWarning{Field: field, Recorded: recorded, Computed: computed}
}

// ===========================================================================
//
//	ドメイン固有のエラー型
//
// ===========================================================================

// LoadError はパラメータレコードが存在しない、壊れている、またはキーが欠けている場合のエラーです。
// 予測処理はこのエラーで中断されます。
type LoadError struct {
	Path    string
	Missing []string // 欠けているキー
	Err     error
}

func (e *LoadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("carprice: failed to load parameter record %q: missing keys: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("carprice: failed to load parameter record %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("carprice: failed to load parameter record %q", e.Path)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *LoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Strs("missing", e.Missing).
		Str("type", "LoadError")
}

// NewLoadError は新しいLoadErrorを作成し、スタックトレースを付与します。
func NewLoadError(path string, err error) error {
	return errors.WithStack(&LoadError{Path: path, Err: err})
}

// NewMissingKeysError はキーが欠けている場合のLoadErrorを作成します。
func NewMissingKeysError(path string, missing []string) error {
	return errors.WithStack(&LoadError{Path: path, Missing: missing})
}

// SchemaError は学習データに必須の列が存在しない場合のエラーです。
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("carprice: %s: CSV must contain %s columns (missing: %s)",
		e.Source, quoteJoin(RequiredColumns), strings.Join(e.Missing, ", "))
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SchemaError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("source", e.Source).
		Strs("missing", e.Missing).
		Str("type", "SchemaError")
}

// NewSchemaError は新しいSchemaErrorを作成し、スタックトレースを付与します。
func NewSchemaError(source string, missing []string) error {
	return errors.WithStack(&SchemaError{Source: source, Missing: missing})
}

// RequiredColumns は学習データに必須の列名です。
var RequiredColumns = []string{"km", "price"}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, " and ")
}

// ParseError は対話入力が数値として解釈できない場合のエラーです。
// 回復可能であり、呼び出し側は再入力を促します。
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("carprice: cannot parse %q as a number", e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(input string, err error) error {
	return errors.WithStack(&ParseError{Input: input, Err: err})
}

// DegenerateInputError は入力が退化していて計算が定義できない場合のエラーです。
// 例えば、最大値が0の正規化や、全ての価格が同じ値の場合のR²など。
type DegenerateInputError struct {
	Op     string
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("carprice: %s: degenerate input: %s", e.Op, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DegenerateInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "DegenerateInputError")
}

// NewDegenerateInputError は新しいDegenerateInputErrorを作成し、スタックトレースを付与します。
func NewDegenerateInputError(op, reason string) error {
	return errors.WithStack(&DegenerateInputError{Op: op, Reason: reason})
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("carprice: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は入力データの長さが期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("carprice: %s: length mismatch. Expected %d, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("carprice: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("carprice: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError はモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("carprice: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("carprice: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
