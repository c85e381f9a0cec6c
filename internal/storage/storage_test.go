package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	d, err := NewDisk(root, "https://cdn.example.com/photos/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := d.Put(ctx, "task-1/1700000000000_slab.jpg", strings.NewReader("jpeg"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/task-1/1700000000000_slab.jpg", url)
	data, err := os.ReadFile(filepath.Join(root, "task-1", "1700000000000_slab.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, d.Delete(ctx, "task-1/1700000000000_slab.jpg"))
	_, err = os.Stat(filepath.Join(root, "task-1", "1700000000000_slab.jpg"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, d.Delete(ctx, "task-1/1700000000000_slab.jpg"))
}

func TestDisk_RejectsTraversal(t *testing.T) {
	d, err := NewDisk(t.TempDir(), "/photos")
	require.NoError(t, err)

	_, err = d.Put(context.Background(), "../etc/passwd", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = d.Put(context.Background(), "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidPath)
}
