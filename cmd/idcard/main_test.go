package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolkit/idcard/pkg/config"
)

const studentYAML = `id: 42
matricule: STU042
family_name: Doe
given_name: Jane
school_id: 7
class_label: CM2
academic_year: 2024-2025
status: inscrit
`

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("IDCARD_SECRET", "cli-test-secret-long-enough")
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	return t.TempDir()
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeRecord(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "student.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command: frobnicate")

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "idcard keygen")
}

func TestKeygen(t *testing.T) {
	code, stdout, _ := runCLI(t, "keygen")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "base64:"))
}

func TestIssueAndVerify(t *testing.T) {
	dir := setup(t)
	record := writeRecord(t, dir, studentYAML)
	pngPath := filepath.Join(dir, "card.png")

	code, stdout, stderr := runCLI(t, "issue", "-record", record, "-png", pngPath)
	require.Equal(t, 0, code, stderr)
	token := strings.TrimSpace(stdout)
	require.NotEmpty(t, token)

	b, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(b))
	require.NoError(t, err)

	code, stdout, _ = runCLI(t, "verify", "-scanner", "gate-2", token)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "valid\n"))
	assert.Contains(t, stdout, "Jane Doe (STU042)")
	assert.Contains(t, stdout, "2024-2025")

	tampered := []byte(token)
	if tampered[50] == 'A' {
		tampered[50] = 'B'
	} else {
		tampered[50] = 'A'
	}
	code, stdout, stderr = runCLI(t, "verify", "-scanner", "gate-2", string(tampered))
	assert.Equal(t, 1, code)
	assert.Equal(t, "invalid card\n", stdout)
	assert.Contains(t, stderr, "scanner_id=gate-2")
	assert.NotContains(t, stdout, "hmac")
}

func TestIssue_InvalidRecord(t *testing.T) {
	dir := setup(t)
	record := writeRecord(t, dir, "id: 0\nmatricule: STU042\ngiven_name: Jane\nschool_id: 7\n")

	code, stdout, stderr := runCLI(t, "issue", "-record", record)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "id:")
	assert.Contains(t, stderr, "family_name:")
}

func TestIssue_BadArguments(t *testing.T) {
	dir := setup(t)

	code, _, _ := runCLI(t, "issue")
	assert.Equal(t, 2, code)

	code, _, stderr := runCLI(t, "issue", "-record", filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "read record")

	code, _, stderr = runCLI(t, "issue", "-record", writeRecord(t, dir, "id: [unclosed"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid yaml")
}

func TestVerify_BadArguments(t *testing.T) {
	setup(t)

	code, _, _ := runCLI(t, "verify")
	assert.Equal(t, 2, code)

	code, stdout, _ := runCLI(t, "verify", "not-a-token")
	assert.Equal(t, 1, code)
	assert.Equal(t, "invalid card\n", stdout)
}

func TestVerify_MissingSecret(t *testing.T) {
	t.Setenv("IDCARD_SECRET", "")
	os.Unsetenv("IDCARD_SECRET")
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	code, _, stderr := runCLI(t, "verify", "anything")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "config:")
}
