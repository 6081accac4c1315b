package classify

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-ova-encode/internal/config"
)

// libraryCandidates are checked in order when no library path is configured.
var libraryCandidates = []string{
	"/usr/lib/libonnxruntime.so",
	"/usr/local/lib/libonnxruntime.so",
	"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
	"/opt/homebrew/lib/libonnxruntime.dylib",
	"C:/onnxruntime/lib/onnxruntime.dll",
}

// DetectLibrary resolves the ONNX Runtime shared library path from cfg,
// falling back to common install locations.
func DetectLibrary(cfg config.RuntimeConfig) (string, error) {
	return detectLibrary(cfg.ORTLibraryPath, libraryCandidates)
}

func detectLibrary(path string, candidates []string) (string, error) {
	if path == "" {
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	if path == "" {
		return "", errors.New("unable to detect ONNX Runtime library path; set --ort-lib or ORT_LIBRARY_PATH")
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("onnx runtime library path check failed: %w", err)
	}

	return path, nil
}
