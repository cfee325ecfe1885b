package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/schedgrid/internal/app"
	"github.com/specialistvlad/schedgrid/internal/document"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Dir is the temporary root the definition files were written to.
	Dir       string
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files below a temporary directory, points a
// generation run at it and returns the outcome. configure may adjust the
// configuration before the app is created; paths in it are relative to the
// temporary directory.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(*app.Config), opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, configure, opts...)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller-provided
// context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, configure func(*app.Config), opts ...app.Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		DefinitionPath: ".",
		Format:         document.FormatXML,
		LogLevel:       "debug",
		LogFormat:      "text",
	}
	if configure != nil {
		configure(&cfg)
	}
	cfg.DefinitionPath = filepath.Join(tmpDir, cfg.DefinitionPath)
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Join(tmpDir, cfg.OutputPath) + trailingSeparator(cfg.OutputPath)
	}

	result := &HarnessResult{Dir: tmpDir}
	validated, err := app.NewConfig(cfg)
	if err != nil {
		result.Err = err
		return result
	}

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	result.App, result.Err = app.NewApp(out, logs, validated, opts...)
	if result.Err == nil {
		result.Err = result.App.Run(ctx)
	}
	result.Output = out.String()
	result.LogOutput = logs.String()

	if os.Getenv("SCHEDGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}

// ReadOutput reads a file written below the harness directory.
func (r *HarnessResult) ReadOutput(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(r.Dir, name))
	require.NoError(t, err, fmt.Sprintf("output %s was not written", name))
	return string(b)
}

func trailingSeparator(p string) string {
	if len(p) > 0 && (p[len(p)-1] == '/' || p[len(p)-1] == filepath.Separator) {
		return string(filepath.Separator)
	}
	return ""
}
