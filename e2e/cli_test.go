package e2e_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	env        []string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "matchthree-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/matchthree")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{binaryPath: binaryPath}
}

// withEnv returns a runner that adds the given KEY=value pairs to the environment
func (r *cliRunner) withEnv(env ...string) *cliRunner {
	return &cliRunner{
		binaryPath: r.binaryPath,
		env:        append(append([]string(nil), r.env...), env...),
	}
}

// run executes the binary and returns stdout and stderr separately
func (r *cliRunner) run(args ...string) (string, string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Env = append(cleanEnv(), r.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// cleanEnv drops any MATCHTHREE_ settings inherited from the caller
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "MATCHTHREE_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// Response types for JSON parsing
type summaryResponse struct {
	ID          string         `json:"id"`
	Strategy    string         `json:"strategy"`
	Height      int            `json:"height"`
	Width       int            `json:"width"`
	Score       float64        `json:"score"`
	Turns       int            `json:"turns"`
	Rejected    int            `json:"rejected"`
	Cascades    int            `json:"cascades"`
	GemsCleared map[string]int `json:"gems_cleared"`
}

type autoplayResponse struct {
	Games      []summaryResponse `json:"games"`
	Best       *summaryResponse  `json:"best"`
	GemRanking []struct {
		Gem   string `json:"gem"`
		Count int    `json:"count"`
	} `json:"gem_ranking"`
}

// Tests

func TestCLI_Autoplay(t *testing.T) {
	cli := newCLIRunner(t)

	stdout, stderr, err := cli.run("autoplay", "--seed", "99", "--games", "4", "--turns", "12", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp autoplayResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Games, 4)
	require.NotNil(t, resp.Best)

	ids := make(map[string]bool)
	for _, game := range resp.Games {
		assert.False(t, ids[game.ID], "duplicate session %s", game.ID)
		ids[game.ID] = true
		assert.Equal(t, 8, game.Height)
		assert.Equal(t, 6, game.Width)
		assert.LessOrEqual(t, game.Turns, 12)
		assert.Zero(t, game.Rejected)
		assert.GreaterOrEqual(t, game.Score, float64(game.Turns))
		assert.LessOrEqual(t, game.Score, resp.Best.Score)
	}
	assert.True(t, ids[resp.Best.ID])
}

func TestCLI_AutoplayReproducible(t *testing.T) {
	cli := newCLIRunner(t)

	first, stderr, err := cli.run("autoplay", "--seed", "3", "--strategy", "random", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)
	second, stderr, err := cli.run("autoplay", "--seed", "3", "--strategy", "random", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)

	var a, b autoplayResponse
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	require.Len(t, a.Games, 1)
	assert.Equal(t, a.Games[0].ID, b.Games[0].ID)
	assert.Equal(t, a.Games[0].Score, b.Games[0].Score)
	assert.Equal(t, a.Games[0].GemsCleared, b.Games[0].GemsCleared)
}

func TestCLI_EnvironmentConfig(t *testing.T) {
	cli := newCLIRunner(t).withEnv(
		"MATCHTHREE_HEIGHT=5",
		"MATCHTHREE_WIDTH=7",
		"MATCHTHREE_SEED=17",
	)

	stdout, stderr, err := cli.run("autoplay", "--turns", "3", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp autoplayResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Games, 1)
	assert.Equal(t, 5, resp.Games[0].Height)
	assert.Equal(t, 7, resp.Games[0].Width)

	// Flags win over the environment
	stdout, stderr, err = cli.run("autoplay", "--turns", "3", "--height", "4", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 4, resp.Games[0].Height)
}

func TestCLI_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "matchthree.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MATCHTHREE_HEIGHT=6\nMATCHTHREE_WIDTH=3\n"), 0o644))

	cli := newCLIRunner(t).withEnv("MATCHTHREE_ENV_FILE="+envFile, "MATCHTHREE_WIDTH=4")
	stdout, stderr, err := cli.run("autoplay", "--turns", "2", "--output", "json")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp autoplayResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Games, 1)
	assert.Equal(t, 6, resp.Games[0].Height)
	// The process environment wins over the file
	assert.Equal(t, 4, resp.Games[0].Width)
}

func TestCLI_LogFile(t *testing.T) {
	cli := newCLIRunner(t)
	logFile := filepath.Join(t.TempDir(), "matchthree.log")

	_, stderr, err := cli.run("autoplay", "--seed", "8", "--turns", "5", "--log-file", logFile, "--verbose")
	require.NoError(t, err, "stderr: %s", stderr)

	f, err := os.Open(logFile)
	require.NoError(t, err)
	defer f.Close()

	components := make(map[string]bool)
	messages := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "line: %s", scanner.Text())
		if c, ok := entry["component"].(string); ok {
			components[c] = true
		}
		messages[entry["msg"].(string)] = true
	}
	require.NoError(t, scanner.Err())

	assert.True(t, components["game-controller"])
	assert.True(t, components["factory"])
	assert.True(t, messages["game complete"])
	assert.True(t, messages["grid stabilized"])
}

func TestCLI_InvalidInput(t *testing.T) {
	cli := newCLIRunner(t)

	_, stderr, err := cli.run("autoplay", "--height", "1")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid grid dimensions")

	_, _, err = cli.run("autoplay", "--strategy", "clairvoyant")
	require.Error(t, err)

	_, stderr, err = cli.withEnv("MATCHTHREE_PAUSE=soon").run("autoplay")
	require.Error(t, err)
	assert.Contains(t, stderr, "MATCHTHREE_PAUSE")
	_, stderr, err = cli.run("autoplay", "--height", "1", "--output", "json")
	require.Error(t, err)
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &errResp), "stderr: %s", stderr)
	assert.Contains(t, errResp.Error.Message, "invalid grid dimensions")
}
