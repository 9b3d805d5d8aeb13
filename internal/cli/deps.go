package cli

import (
	"log"
	"os"
	"path/filepath"

	"github.com/Brownie44l1/agricare-api/internal/advisory"
	"github.com/Brownie44l1/agricare-api/internal/config"
	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/llm"
	"github.com/Brownie44l1/agricare-api/internal/model"
)

// runtime holds the long-lived collaborators built once at startup.
type runtime struct {
	labels     *labels.Map
	classifier *model.Classifier
	advisor    *advisory.Generator
}

func (r *runtime) Close() {
	if r.classifier != nil {
		r.classifier.Close()
	}
}

// loadRuntime builds the label map, classifier and advisory generator. A model
// or credential that cannot be loaded is logged and left nil so the caller can
// degrade instead of exiting.
func loadRuntime(cfg *config.Config) (*runtime, error) {
	labelMap, err := cfg.LabelMap()
	if err != nil {
		return nil, err
	}
	rt := &runtime{labels: labelMap}

	modelPath := resolveModelPath(cfg.ModelPath)
	log.Printf("Loading model from: %s", modelPath)
	classifier, err := model.Load(model.Options{
		ModelPath:   modelPath,
		LibraryPath: cfg.ONNXLibrary,
		InputName:   cfg.ModelInputName,
		OutputName:  cfg.ModelOutputName,
		ImageSize:   cfg.ImageSize,
		NumClasses:  cfg.OutputClasses(labelMap),
	})
	if err != nil {
		log.Printf("Error loading model: %v", err)
	} else {
		rt.classifier = classifier
		log.Printf("Model loaded successfully from %s", modelPath)
	}

	var client llm.LLM
	provider, err := llm.ParseProvider(cfg.LLMProvider)
	if err == nil {
		apiKey, modelName := cfg.LLMCredentials()
		client, err = llm.New(provider, llm.Settings{APIKey: apiKey, Model: modelName, Timeout: cfg.LLMTimeout})
	}
	if err != nil {
		log.Printf("Error configuring text generation: %v", err)
	} else {
		log.Printf("Text generation configured: %s", client.Name())
	}
	rt.advisor = advisory.New(client)

	return rt, nil
}

// resolveModelPath also tries the project root when running from cmd/agricare.
func resolveModelPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if filepath.Base(wd) == "agricare" {
		candidate := filepath.Join(wd, "..", "..", path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}
