package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
- id: 1
  title: later
  due_date: 2025-04-09
  importance: 3
  estimated_hours: 8
- id: "2"
  title: urgent
  due_date: "2025-03-10"
  importance: 9
  estimated_hours: 2
`

const cyclicYAML = `
- {id: 1, title: a, dependencies: [2]}
- {id: 2, title: b, dependencies: ["1"]}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeTable(t *testing.T) {
	path := writeFile(t, "tasks.yaml", sampleYAML)

	out, _, err := runCmd(t, "", "analyze", "--file", path, "--today", "2025-03-10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "strategy: smart_balance, tasks: 2", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "RANK"))
	assert.Contains(t, lines[2], "urgent")
	assert.Contains(t, lines[2], "0.8750")
	assert.Contains(t, lines[3], "later")
	assert.Contains(t, lines[3], "0.3700")
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeFile(t, "tasks.json", `[
		{"id": 1, "title": "later", "due_date": "2025-04-09", "importance": 3, "estimated_hours": 8},
		{"id": 2, "title": "urgent", "due_date": "2025-03-10", "importance": 9, "estimated_hours": 2}
	]`)

	out, _, err := runCmd(t, "", "analyze", "-f", path, "--today", "2025-03-10",
		"--strategy", "deadline_driven", "--output", "json")
	require.NoError(t, err)

	var got analysisJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "deadline_driven", got.Strategy)
	assert.Equal(t, 2, got.TotalTasks)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "2", got.Tasks[0].ID)
	require.NotNil(t, got.Tasks[0].DueDate)
	assert.Equal(t, "2025-03-10", *got.Tasks[0].DueDate)
	assert.Equal(t, []string{}, got.Tasks[0].Dependencies)
}

func TestAnalyzeStdin(t *testing.T) {
	out, _, err := runCmd(t, sampleYAML, "analyze", "--file", "-", "--today", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "urgent")
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeFile(t, "tasks.yaml", sampleYAML)

	t.Run("missing file flag", func(t *testing.T) {
		_, _, err := runCmd(t, "", "analyze")
		assert.Error(t, err)
	})

	t.Run("bad output format", func(t *testing.T) {
		_, _, err := runCmd(t, "", "analyze", "--file", path, "--output", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})

	t.Run("bad today", func(t *testing.T) {
		_, _, err := runCmd(t, "", "analyze", "--file", path, "--today", "10/03/2025")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid --today")
	})

	t.Run("empty list", func(t *testing.T) {
		empty := writeFile(t, "empty.yaml", "[]\n")
		_, _, err := runCmd(t, "", "analyze", "--file", empty)
		assert.ErrorIs(t, err, priority.ErrEmptyBatch)
	})

	t.Run("cyclic tasks", func(t *testing.T) {
		cyclic := writeFile(t, "cyclic.yaml", cyclicYAML)
		_, stderr, err := runCmd(t, "", "analyze", "--file", cyclic)

		var cycleErr *priority.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Contains(t, stderr, "1 -> 2 -> 1")
	})
}

func TestCyclesCommand(t *testing.T) {
	t.Run("reports cycles", func(t *testing.T) {
		path := writeFile(t, "cyclic.yaml", cyclicYAML)
		out, _, err := runCmd(t, "", "cycles", "--file", path)

		assert.ErrorIs(t, err, ErrCyclesFound)
		assert.Equal(t, "1 -> 2 -> 1\n", out)
	})

	t.Run("clean graph", func(t *testing.T) {
		path := writeFile(t, "tasks.yaml", sampleYAML)
		out, _, err := runCmd(t, "", "cycles", "--file", path)

		require.NoError(t, err)
		assert.Equal(t, "no circular dependencies\n", out)
	})
}

func TestStrategiesCommand(t *testing.T) {
	out, _, err := runCmd(t, "", "strategies")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "STRATEGY"))

	var defaultLine string
	for _, line := range lines[1:] {
		if strings.HasSuffix(line, "*") {
			defaultLine = line
		}
	}
	assert.True(t, strings.HasPrefix(defaultLine, "smart_balance"))
	assert.Contains(t, defaultLine, "0.35")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	out, _, err := runCmd(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "taskrank 1.2.3\n", out)
}

func TestUnnumberedTasksAgreeAcrossCommands(t *testing.T) {
	t.Run("cycle by position", func(t *testing.T) {
		path := writeFile(t, "ring.yaml", `
- {title: a, dependencies: [2]}
- {title: b, dependencies: [3]}
- {title: c, dependencies: [1]}
`)

		out, _, err := runCmd(t, "", "cycles", "--file", path)
		assert.ErrorIs(t, err, ErrCyclesFound)
		assert.Equal(t, "1 -> 2 -> 3 -> 1\n", out)

		_, stderr, err := runCmd(t, "", "analyze", "--file", path)
		assert.ErrorIs(t, err, priority.ErrCircularDependency)
		assert.Contains(t, stderr, "1 -> 2 -> 3 -> 1")
	})

	t.Run("chain by position", func(t *testing.T) {
		path := writeFile(t, "chain.yaml", `
- {title: a}
- {title: b, dependencies: [1]}
`)

		out, _, err := runCmd(t, "", "cycles", "--file", path)
		require.NoError(t, err)
		assert.Equal(t, "no circular dependencies\n", out)

		_, _, err = runCmd(t, "", "analyze", "--file", path)
		assert.NoError(t, err)
	})
}
