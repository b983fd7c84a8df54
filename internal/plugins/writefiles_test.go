package plugins

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipString(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecodeContent(t *testing.T) {
	t.Parallel()
	const want = "net.inet.ip.forwarding=1\n"
	b64 := base64.StdEncoding.EncodeToString([]byte(want))
	gz := string(gzipString(t, want))
	gzb64 := base64.StdEncoding.EncodeToString(gzipString(t, want))

	tests := []struct {
		encoding string
		content  string
	}{
		{"", want},
		{"text/plain", want},
		{"b64", b64},
		{"base64", b64},
		{"gz", gz},
		{"gzip", gz},
		{"gz+b64", gzb64},
		{"gz+base64", gzb64},
		{"gzip+b64", gzb64},
		{"GZIP+BASE64", gzb64},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			t.Parallel()
			got, err := decodeContent(tt.content, tt.encoding)
			require.NoError(t, err)
			assert.Equal(t, want, string(got))
		})
	}

	_, err := decodeContent("x", "zstd")
	assert.Error(t, err)
	_, err = decodeContent("!!!", "b64")
	assert.Error(t, err)
	_, err = decodeContent("not gzip", "gz")
	assert.Error(t, err)
}

func TestParsePermissions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      any
		want    os.FileMode
		wantErr bool
	}{
		{in: nil, want: 0o644},
		{in: "0600", want: 0o600},
		{in: "755", want: 0o755},
		{in: "0o640", want: 0o640},
		{in: 0o600, want: 0o600},
		{in: "0999", wantErr: true},
		{in: 0o17777, wantErr: true},
		{in: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		got, err := parsePermissions(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t)
	dir := t.TempDir()
	plain := filepath.Join(dir, "etc", "motd")
	secret := filepath.Join(dir, "usr", "local", "etc", "token")

	payload := []any{
		map[string]any{"path": plain, "content": "welcome\n"},
		map[string]any{
			"path":        secret,
			"content":     base64.StdEncoding.EncodeToString(gzipString(t, "s3cr3t")),
			"encoding":    "gz+b64",
			"permissions": "0600",
		},
	}
	require.NoError(t, writeFiles(ctx, payload))

	data, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, "welcome\n", string(data))
	info, err := os.Stat(plain)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	data, err = os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", string(data))
	info, err = os.Stat(secret)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Dir(secret))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestWriteFiles_FailuresAreIndependent(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good")

	payload := []any{
		map[string]any{"path": "relative/path", "content": "x"},
		map[string]any{"path": filepath.Join(dir, "bad"), "content": "x", "encoding": "rot13"},
		map[string]any{"path": good, "content": "ok"},
		"not a mapping",
	}
	err := writeFiles(ctx, payload)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "write_files[0]")
	assert.Contains(t, err.Error(), "write_files[1]")
	assert.Contains(t, err.Error(), "write_files[3]")
	assert.NotContains(t, err.Error(), "write_files[2]")

	data, readErr := os.ReadFile(good)
	require.NoError(t, readErr)
	assert.Equal(t, "ok", string(data))
}
