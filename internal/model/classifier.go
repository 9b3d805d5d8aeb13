package model

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/Brownie44l1/agricare-api/internal/imaging"
	ort "github.com/yalue/onnxruntime_go"
)

type Classifier struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
	opts         Options
}

// Load initialises ONNX Runtime and opens the model at opts.ModelPath.
func Load(opts Options) (*Classifier, error) {
	if opts.ImageSize <= 0 {
		opts.ImageSize = imaging.DefaultSize
	}
	if opts.InputName == "" {
		opts.InputName = "input"
	}
	if opts.OutputName == "" {
		opts.OutputName = "output"
	}
	if opts.NumClasses <= 0 {
		return nil, errors.New("number of classes must be positive")
	}
	if _, err := os.Stat(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}

	if opts.LibraryPath != "" {
		ort.SetSharedLibraryPath(opts.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	size := int64(opts.ImageSize)
	inputShape := ort.NewShape(1, size, size, imaging.Channels)
	outputShape := ort.NewShape(1, int64(opts.NumClasses))

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(opts.ModelPath,
		[]string{opts.InputName}, []string{opts.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Classifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
		opts:         opts,
	}, nil
}

// Predict runs one inference. Runs are serialised because the session's
// input and output tensors are shared.
func (c *Classifier) Predict(t imaging.Tensor) (*Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	input := c.inputTensor.GetData()
	if len(t.Data) != len(input) {
		return nil, fmt.Errorf("expected %d input values, got %d", len(input), len(t.Data))
	}
	copy(input, t.Data)

	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	output := c.outputTensor.GetData()
	probs := make([]float32, len(output))
	copy(probs, output)

	idx, conf, err := Argmax(probs)
	if err != nil {
		return nil, err
	}
	return &Prediction{Index: idx, Confidence: conf, Probabilities: probs}, nil
}

func (c *Classifier) ImageSize() int {
	return c.opts.ImageSize
}

func (c *Classifier) Close() {
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

// Argmax returns the index and value of the largest element. Ties resolve to
// the lowest index.
func Argmax(values []float32) (int, float32, error) {
	if len(values) == 0 {
		return 0, 0, errors.New("empty model output")
	}
	maxIdx := 0
	maxVal := values[0]
	for i, v := range values[1:] {
		if v > maxVal {
			maxVal = v
			maxIdx = i + 1
		}
	}
	return maxIdx, maxVal, nil
}
