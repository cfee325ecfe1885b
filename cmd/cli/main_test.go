package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/schedgrid/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinition = `
schedule "MAIN" {
  trigger "start" {}

  job "hello" {
    path       = "/bin/echo"
    args       = ["hello"]
    depends_on = [start]
  }
}
`

func TestRun_WritesDocument(t *testing.T) {
	t.Parallel()

	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(validDefinition), 0o600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"-log-level", "error", filePath})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<NodeName>MAIN</NodeName>")
	assert.Contains(t, out.String(), "<Arg>hello</Arg>")
	assert.Empty(t, errOut.String())
}

func TestRun_DefinitionError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		schedule "BROKEN" {
			job "a" {
		// Missing closing brace here
	`
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600))

	out := &bytes.Buffer{}
	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{filePath})

	require.Error(t, runErr, "run() should return the parse error")
	assert.Contains(t, runErr.Error(), "failed to parse")
	var exitErr *cli.ExitError
	assert.False(t, errors.As(runErr, &exitErr), "definition errors are not usage errors")
	assert.Empty(t, out.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	errOut := &bytes.Buffer{}
	err := run(context.Background(), &bytes.Buffer{}, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed to the error output")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
