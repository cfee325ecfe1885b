// internal/portref/parser_test.go
package portref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Ref
	}{
		{name: "child node", raw: "spam", expected: Ref{Node: "spam"}},
		{name: "child port", raw: "spam.out", expected: Ref{Node: "spam", Port: "out"}},
		{name: "self", raw: ".", expected: Ref{Node: "."}},
		{name: "self port", raw: ".eggs", expected: Ref{Node: ".", Port: "eggs"}},
		{name: "all nodes", raw: "*", expected: Ref{Node: "*"}},
		{name: "surrounding whitespace", raw: "  ls ", expected: Ref{Node: "ls"}},
		{name: "hyphen inside name", raw: "load-data.rows", expected: Ref{Node: "load-data", Port: "rows"}},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - double dot", raw: "..", expectErr: true},
		{name: "error - empty port", raw: "spam.", expectErr: true},
		{name: "error - nested path", raw: "a.b.c", expectErr: true},
		{name: "error - port on all nodes", raw: "*.out", expectErr: true},
		{name: "error - leading hyphen", raw: "-x", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ref)
		})
	}
}
