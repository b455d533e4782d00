package uci

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// resolveEnginePath looks for the engine as given, next to the running
// executable, and finally on PATH.
func resolveEnginePath(enginePath string) (string, error) {
	if enginePath == "" {
		return "", fmt.Errorf("uci: empty engine path")
	}

	candidates := make([]string, 0, 3)
	candidates = append(candidates, enginePath)

	if !filepath.IsAbs(enginePath) {
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			candidates = append(candidates, filepath.Join(exeDir, enginePath))
			candidates = append(candidates, filepath.Join(exeDir, filepath.Base(enginePath)))
		}
	}

	checked := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		checked = append(checked, abs)
		info, err := os.Stat(abs)
		if err == nil && !info.IsDir() {
			return abs, nil
		}
	}

	if !strings.ContainsRune(enginePath, filepath.Separator) {
		if p, err := exec.LookPath(enginePath); err == nil {
			return p, nil
		}
		checked = append(checked, "$PATH")
	}
	return "", fmt.Errorf("uci: engine not found, checked: %s", strings.Join(checked, ", "))
}
