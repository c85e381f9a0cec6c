// Package storage keeps uploaded task photos on local disk and serves them
// under a public URL prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidPath = errors.New("invalid object path")

type Blobs interface {
	// Put stores r under key and returns the public URL of the object.
	Put(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

type Disk struct {
	root      string
	publicURL string
}

func NewDisk(root, publicURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Disk{root: root, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (d *Disk) Root() string { return d.root }

func (d *Disk) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidPath
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

func (d *Disk) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst, err := d.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return d.publicURL + path.Clean("/"+key), nil
}

func (d *Disk) Delete(ctx context.Context, key string) error {
	dst, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
