package plugins

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/cloudconfig"
)

const (
	defaultFilePermissions fs.FileMode = 0o644
	parentDirPermissions   fs.FileMode = 0o755
)

type fileEntry struct {
	Path        string `mapstructure:"path"`
	Content     string `mapstructure:"content"`
	Encoding    string `mapstructure:"encoding"`
	Permissions any    `mapstructure:"permissions"`
}

func writeFiles(ctx *cloudconfig.Context, payload any) error {
	items := asList(payload)
	var errs []error
	for i, item := range items {
		var entry fileEntry
		if err := decodePayload(item, &entry); err != nil {
			errs = append(errs, fmt.Errorf("write_files[%d]: %w", i, err))
			continue
		}
		if err := writeFile(entry); err != nil {
			errs = append(errs, fmt.Errorf("write_files[%d] %s: %w", i, entry.Path, err))
			continue
		}
		ctx.Log.Info("file written", "path", entry.Path)
	}
	return errors.Join(errs...)
}

func writeFile(entry fileEntry) error {
	if entry.Path == "" || !filepath.IsAbs(entry.Path) {
		return fmt.Errorf("path must be absolute, got %q", entry.Path)
	}
	mode, err := parsePermissions(entry.Permissions)
	if err != nil {
		return err
	}
	data, err := decodeContent(entry.Content, entry.Encoding)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(entry.Path), parentDirPermissions); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(entry.Path, data, mode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	// WriteFile keeps the mode of an existing file and is subject to umask.
	if err := os.Chmod(entry.Path, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	return nil
}

// parsePermissions accepts an octal string ("0644", "644", "0o644") or the
// integer YAML already parsed from an octal literal.
func parsePermissions(v any) (fs.FileMode, error) {
	switch p := v.(type) {
	case nil:
		return defaultFilePermissions, nil
	case int:
		if p < 0 || p > 0o7777 {
			return 0, fmt.Errorf("invalid permissions %d", p)
		}
		return fs.FileMode(p), nil
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(p), "0o")
		if s == "" {
			return defaultFilePermissions, nil
		}
		n, err := strconv.ParseUint(s, 8, 32)
		if err != nil || n > 0o7777 {
			return 0, fmt.Errorf("invalid permissions %q", p)
		}
		return fs.FileMode(n), nil
	default:
		return 0, fmt.Errorf("invalid permissions type %T", v)
	}
}

func decodeContent(content, encoding string) ([]byte, error) {
	var gz, b64 bool
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "text/plain":
	case "b64", "base64":
		b64 = true
	case "gz", "gzip":
		gz = true
	case "gz+b64", "gz+base64", "gzip+b64", "gzip+base64":
		gz, b64 = true, true
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	data := []byte(content)
	if b64 {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 content: %w", err)
		}
		data = decoded
	}
	if gz {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip content: %w", err)
		}
		defer func() { _ = zr.Close() }()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("failed to decompress content: %w", err)
		}
	}
	return data, nil
}
