package userdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/rrbarreto/bsd-cloudinit-pfsense/internal/util/retry"
)

// ErrNotFound is returned when the user data does not exist.
var ErrNotFound = errors.New("user data not found")

// Source yields the raw user data.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Provider is the metadata service side of user data.
type Provider interface {
	GetUserData(ctx context.Context) ([]byte, error)
}

// FileSource reads user data from a local file.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user data: %w", err)
	}
	return data, nil
}

// ServiceSource reads user data from a metadata service.
type ServiceSource struct {
	Provider Provider
	Retry    []retry.Option
}

// Fetch implements Source. A service without user data yields nil.
func (s ServiceSource) Fetch(ctx context.Context) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = s.Provider.GetUserData(ctx)
		return err
	}, s.Retry...)
	if err != nil {
		return nil, fmt.Errorf("failed to get user data from metadata: %w", err)
	}
	return data, nil
}

// Options configures Open.
type Options struct {
	// NewS3 creates the S3 client for s3:// URIs.
	NewS3 func(ctx context.Context) (S3API, error)
	Retry []retry.Option
}

// Open returns the source for uri: "s3://bucket/key", a file path, or the
// metadata provider when uri is empty.
func Open(ctx context.Context, uri string, provider Provider, opts Options) (Source, error) {
	switch {
	case uri == "":
		if provider == nil {
			return nil, errors.New("no user data location and no metadata service")
		}
		return ServiceSource{Provider: provider, Retry: opts.Retry}, nil
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := ParseS3URI(uri)
		if err != nil {
			return nil, err
		}
		if opts.NewS3 == nil {
			return nil, errors.New("s3 user data requires an S3 client")
		}
		client, err := opts.NewS3(ctx)
		if err != nil {
			return nil, err
		}
		return &S3Source{Client: client, Bucket: bucket, Key: key, Retry: opts.Retry}, nil
	default:
		return FileSource{Path: strings.TrimPrefix(uri, "file://")}, nil
	}
}

// Read fetches from src and decompresses gzip data.
func Read(ctx context.Context, src Source) ([]byte, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

var gzipMagic = []byte{0x1f, 0x8b}

// Decode returns data, decompressed when it starts with the gzip magic.
func Decode(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip user data: %w", err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress user data: %w", err)
	}
	return out, nil
}
