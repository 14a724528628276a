package model

import "fmt"

// Params は学習済みパラメータのレコード
// 学習の終わりに一度だけ書き込まれ、予測時には読み取り専用で使われる
type Params struct {
	// Theta0 は正規化空間での切片
	Theta0 float64 `json:"theta0"`
	// Theta1 は正規化空間での傾き
	Theta1 float64 `json:"theta1"`
	// MaxMileage は学習データの走行距離の最大値
	MaxMileage float64 `json:"max_mileage"`
	// MaxPrices は学習データの価格の最大値
	MaxPrices float64 `json:"max_prices"`
}

// RecordKeys はパラメータレコードの必須キー
var RecordKeys = []string{"theta0", "theta1", "max_mileage", "max_prices"}

// String はパラメータの文字列表現を返す
func (p Params) String() string {
	return fmt.Sprintf("Params(theta0=%.6f, theta1=%.6f, max_mileage=%g, max_prices=%g)",
		p.Theta0, p.Theta1, p.MaxMileage, p.MaxPrices)
}
