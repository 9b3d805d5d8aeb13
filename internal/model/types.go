package model

import "github.com/Brownie44l1/agricare-api/internal/imaging"

// Options describes the ONNX artifact and the tensors it expects.
type Options struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	ImageSize   int
	NumClasses  int
}

type Prediction struct {
	Index         int       `json:"index"`
	Confidence    float32   `json:"confidence"`
	Probabilities []float32 `json:"probabilities"`
}

// Predictor is satisfied by Classifier and by test doubles.
type Predictor interface {
	Predict(t imaging.Tensor) (*Prediction, error)
}
