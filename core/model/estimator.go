package model

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit は正規化済みの走行距離 x と価格 y でモデルを学習させる
	Fit(x, y []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は正規化空間での予測値を返す
	Predict(x []float64) ([]float64, error)
}

// Transformer はスケーラーのインターフェース
type Transformer interface {
	Fit(values []float64) error
	Transform(values []float64) ([]float64, error)
	InverseTransform(values []float64) ([]float64, error)
}
