package model

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// record はキーの有無を判定するための読み込み用の型
type record struct {
	Theta0     *float64 `json:"theta0"`
	Theta1     *float64 `json:"theta1"`
	MaxMileage *float64 `json:"max_mileage"`
	MaxPrices  *float64 `json:"max_prices"`
}

// Save はパラメータをJSONファイルに保存する
// 既存のファイルは上書きされる
//
// 使用例:
//
//	err := model.Save(params, "model.json")
func Save(p Params, filename string) error {
	// エンコードに成功した場合のみファイルを書き込む
	var buf bytes.Buffer
	if err := SaveToWriter(p, &buf); err != nil {
		return err
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write parameter record %s", filename)
	}
	return nil
}

// SaveToWriter はパラメータをio.Writerに書き込む
func SaveToWriter(p Params, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&p); err != nil {
		return errors.Wrap(err, "failed to encode parameter record")
	}
	return nil
}

// Load はJSONファイルからパラメータを読み込む
// ファイルが存在しない、壊れている、またはキーが欠けている場合はLoadErrorを返す
//
// 使用例:
//
//	params, err := model.Load("model.json")
func Load(filename string) (Params, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Params{}, errors.NewLoadError(filename, err)
	}
	defer file.Close()

	return LoadFromReader(file, filename)
}

// LoadFromReader はio.Readerからパラメータを読み込む
// source はエラーメッセージに使われる
func LoadFromReader(r io.Reader, source string) (Params, error) {
	var rec record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Params{}, errors.NewLoadError(source, err)
	}

	// 必須キーの確認
	var missing []string
	fields := []*float64{rec.Theta0, rec.Theta1, rec.MaxMileage, rec.MaxPrices}
	for i, f := range fields {
		if f == nil {
			missing = append(missing, RecordKeys[i])
		}
	}
	if len(missing) > 0 {
		return Params{}, errors.NewMissingKeysError(source, missing)
	}

	return Params{
		Theta0:     *rec.Theta0,
		Theta1:     *rec.Theta1,
		MaxMileage: *rec.MaxMileage,
		MaxPrices:  *rec.MaxPrices,
	}, nil
}
