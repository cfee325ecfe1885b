package model

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func parse(t *testing.T, src string) (*Schedule, error) {
	t.Helper()
	return NewLoader(nil).Parse(testContext(), []byte(src), "test.hcl")
}

const fanOutHCL = `
variable "bin" {
  default = "/bin"
}

schedule "TEST03" {
  user = "test"

  resource "counting" "cpu" {
    amount = 4
  }

  trigger "start" {}

  compound "spam_and_foo" {
    output_ports = ["spam", "foo"]

    job "spam" {
      path = "${var.bin}/ls"
      args = ["spam"]
      consumption "counting" "cpu" {
        amount = 1
      }
    }
    job "foo" {
      path = "${var.bin}/ls"
      args = ["foo"]
    }

    dependency {
      successor   = ".spam"
      predecessor = "spam"
    }
    dependency {
      successor   = ".foo"
      predecessor = "foo"
    }
    depends_on = [start]
  }

  terminator "end" {
    depends_on = ["spam_and_foo.spam", spam_and_foo.foo]
  }
}
`

func TestParse_FullSchedule(t *testing.T) {
	sched, err := parse(t, fanOutHCL)
	require.NoError(t, err)

	assert.Equal(t, "TEST03", sched.Name)
	assert.Equal(t, KindSchedule, sched.Kind)
	assert.Equal(t, "test", sched.User)
	assert.Equal(t, "test.hcl", sched.FSInformation.FilePath)
	require.Len(t, sched.Resources, 1)
	assert.Equal(t, Resource{Kind: "counting", Name: "cpu", Amount: 4, DeclRange: sched.Resources[0].DeclRange}, sched.Resources[0])

	require.Len(t, sched.Nodes, 3)
	assert.Equal(t, KindTrigger, sched.Nodes[0].Kind)
	assert.Equal(t, "start", sched.Nodes[0].Name)

	compound := sched.Nodes[1]
	assert.Equal(t, KindCompound, compound.Kind)
	assert.Equal(t, []string{"spam", "foo"}, compound.OutputPorts)
	require.Len(t, compound.Nodes, 2)
	assert.Equal(t, "/bin/ls", compound.Nodes[0].Path)
	assert.Equal(t, []string{"spam"}, compound.Nodes[0].Args)
	require.Len(t, compound.Nodes[0].Consumptions, 1)
	assert.Equal(t, 1, compound.Nodes[0].Consumptions[0].Amount)
	require.Len(t, compound.Dependencies, 2)
	assert.Equal(t, ".spam", compound.Dependencies[0].Successor)
	assert.Equal(t, "spam", compound.Dependencies[0].Predecessor)
	require.Len(t, compound.DependsOn, 1)
	assert.Equal(t, "start", compound.DependsOn[0].Ref)

	end := sched.Nodes[2]
	assert.Equal(t, KindTerminator, end.Kind)
	var refs []string
	for _, r := range end.DependsOn {
		refs = append(refs, r.Ref)
	}
	assert.Equal(t, []string{"spam_and_foo.spam", "spam_and_foo.foo"}, refs)

	assert.Equal(t, 5, sched.Count())
}

func TestParse_Variables(t *testing.T) {
	src := `
variable "cpus" {
  type    = number
  default = 2
}
variable "name" {
  type = string
}
schedule "S" {
  resource "counting" "cpu" {
    amount = var.cpus
  }
  job "a" {
    path = "/bin/echo"
    args = [upper(var.name), format("%s-%d", var.name, var.cpus)]
  }
}
`
	t.Run("missing required variable", func(t *testing.T) {
		_, err := parse(t, src)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No value for required variable")
	})

	t.Run("overrides are converted to the declared type", func(t *testing.T) {
		sched, err := NewLoader(map[string]string{"name": "nightly", "cpus": "8"}).Parse(testContext(), []byte(src), "vars.hcl")
		require.NoError(t, err)
		assert.Equal(t, 8, sched.Resources[0].Amount)
		assert.Equal(t, []string{"NIGHTLY", "nightly-8"}, sched.Nodes[0].Args)
	})

	t.Run("override of the wrong type", func(t *testing.T) {
		_, err := NewLoader(map[string]string{"name": "x", "cpus": "many"}).Parse(testContext(), []byte(src), "vars.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid value for variable")
	})
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `schedule "S" {`,
			wantErr: "failed to parse",
		},
		{
			name:    "no schedule block",
			src:     `variable "x" { default = 1 }`,
			wantErr: "Missing \"schedule\" block",
		},
		{
			name:    "two schedule blocks",
			src:     "schedule \"a\" {}\nschedule \"b\" {}\n",
			wantErr: "Duplicate \"schedule\" block",
		},
		{
			name:    "job without path",
			src:     "schedule \"S\" {\n  job \"a\" {}\n}\n",
			wantErr: "Missing required argument",
		},
		{
			name:    "trigger cannot depend on anything",
			src:     "schedule \"S\" {\n  trigger \"t\" {\n    depends_on = []\n  }\n}\n",
			wantErr: "Unsupported argument",
		},
		{
			name:    "depends_on must be a list",
			src:     "schedule \"S\" {\n  terminator \"end\" {\n    depends_on = \"a\"\n  }\n}\n",
			wantErr: "Invalid depends_on value",
		},
		{
			name:    "args must be strings",
			src:     "schedule \"S\" {\n  job \"a\" {\n    path = \"/bin/a\"\n    args = [{}]\n  }\n}\n",
			wantErr: "Incorrect attribute value type",
		},
		{
			name:    "unknown top-level block",
			src:     "schedule \"S\" {}\nstep \"a\" \"b\" {}\n",
			wantErr: "Unsupported block type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFile_CachesUnchangedFiles(t *testing.T) {
	ctx := testContext()
	path := filepath.Join(t.TempDir(), "main.hcl")
	writeFile(t, path, "schedule \"S\" {\n  trigger \"start\" {}\n}\n")

	loader := NewLoader(nil)
	first, err := loader.LoadFile(ctx, path)
	require.NoError(t, err)
	second, err := loader.LoadFile(ctx, path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	writeFile(t, path, "schedule \"S\" {\n  trigger \"begin\" {}\n}\n")
	third, err := loader.LoadFile(ctx, path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, "begin", third.Nodes[0].Name)
}

func TestLoad_Directory(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.hcl"), `schedule "B" {}`)
	writeFile(t, filepath.Join(dir, "sub", "a.hcl"), `schedule "A" {}`)
	writeFile(t, filepath.Join(dir, "README.md"), `not hcl`)

	schedules, err := NewLoader(nil).Load(ctx, dir)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "B", schedules[0].Name)
	assert.Equal(t, "A", schedules[1].Name)

	writeFile(t, filepath.Join(dir, "c.hcl"), `schedule "A" {}`)
	_, err = NewLoader(nil).Load(ctx, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `schedule "A" is defined in both`)

	_, err = NewLoader(nil).Load(ctx, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
