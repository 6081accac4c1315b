package classify

import (
	"context"
	"errors"
	"fmt"

	ort "github.com/shota3506/onnxruntime-purego/onnxruntime"
)

// RunnerConfig selects the runtime library and the classifier graph.
type RunnerConfig struct {
	LibraryPath string
	APIVersion  uint32
	ModelPath   string
	// InputName is the graph input fed with a [1, n] float32 feature tensor.
	InputName string
	// OutputName selects the score output. Empty uses the only output.
	OutputName string
}

// Runner scores feature vectors with an ONNX classifier graph.
type Runner struct {
	runtime    *ort.Runtime
	env        *ort.Env
	session    *ort.Session
	inputName  string
	outputName string
}

// NewRunner loads the ONNX Runtime library and opens a session for the model.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is required")
	}
	if cfg.APIVersion == 0 {
		cfg.APIVersion = 23
	}
	if cfg.InputName == "" {
		cfg.InputName = "input"
	}

	runtime, err := ort.NewRuntime(cfg.LibraryPath, cfg.APIVersion)
	if err != nil {
		return nil, fmt.Errorf("ort runtime: %w", err)
	}

	env, err := runtime.NewEnv("ova-classifier", ort.LoggingLevelWarning)
	if err != nil {
		_ = runtime.Close()
		return nil, fmt.Errorf("ort env: %w", err)
	}

	session, err := runtime.NewSession(env, cfg.ModelPath, nil)
	if err != nil {
		env.Close()
		_ = runtime.Close()

		return nil, fmt.Errorf("ort session (%s): %w", cfg.ModelPath, err)
	}

	return &Runner{
		runtime:    runtime,
		env:        env,
		session:    session,
		inputName:  cfg.InputName,
		outputName: cfg.OutputName,
	}, nil
}

// Score runs the graph on a single feature vector.
func (r *Runner) Score(ctx context.Context, features []float32) ([]float32, error) {
	if r.session == nil {
		return nil, errors.New("runner is closed")
	}

	in, err := ort.NewTensorValue(r.runtime, features, []int64{1, int64(len(features))})
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", r.inputName, err)
	}
	defer in.Close()

	outputs, err := r.session.Run(ctx, map[string]*ort.Value{r.inputName: in})
	if err != nil {
		return nil, fmt.Errorf("run classifier: %w", err)
	}
	defer closeValues(outputs)

	out, err := pickOutput(outputs, r.outputName)
	if err != nil {
		return nil, err
	}

	scores, _, err := ort.GetTensorData[float32](out)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	return append([]float32(nil), scores...), nil
}

// Close releases all ORT resources. Safe to call multiple times.
func (r *Runner) Close() {
	if r.session != nil {
		r.session.Close()
		r.session = nil
	}

	if r.env != nil {
		r.env.Close()
		r.env = nil
	}

	if r.runtime != nil {
		_ = r.runtime.Close()
		r.runtime = nil
	}
}

func pickOutput[V any](outputs map[string]V, name string) (V, error) {
	var zero V
	if name != "" {
		v, ok := outputs[name]
		if !ok {
			return zero, fmt.Errorf("classifier has no output %q", name)
		}
		return v, nil
	}

	if len(outputs) != 1 {
		return zero, fmt.Errorf("classifier has %d outputs; set the output name", len(outputs))
	}
	for _, v := range outputs {
		return v, nil
	}

	return zero, nil
}

func closeValues(vals map[string]*ort.Value) {
	for _, v := range vals {
		if v != nil {
			v.Close()
		}
	}
}
