package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutGet(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")
	ctx := context.Background()

	res, err := l.Put(ctx, bytes.NewReader([]byte("payload")), PutInput{
		Category: "Product",
		Filename: "photo.JPG",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^Product/\d{2}-\d{2}-\d{4}/[0-9a-f-]{36}\.jpg$`), res.Key)
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := l.Get(ctx, res.Key)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), b)

	// The file lands under the base dir.
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
}

func TestLocalKeyWithoutCategory(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")

	res, err := l.Put(context.Background(), bytes.NewReader(nil), PutInput{Filename: "a.png"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{2}-\d{2}-\d{4}/[0-9a-f-]{36}\.png$`), res.Key)
}

func TestLocalUnknownExtensionDropped(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")

	res, err := l.Put(context.Background(), bytes.NewReader(nil), PutInput{
		Category: "Product",
		Filename: "evil.php",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Product/\d{2}-\d{2}-\d{4}/[0-9a-f-]{36}$`), res.Key)
}

func TestLocalRejectsTraversal(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	ctx := context.Background()

	for _, key := range []string{"../secret", "..", "/etc/passwd", "a/../../b"} {
		_, err := l.Get(ctx, key)
		assert.Error(t, err, key)
		assert.Error(t, l.Delete(ctx, key), key)
	}
}

func TestLocalDelete(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	ctx := context.Background()

	res, err := l.Put(ctx, bytes.NewReader([]byte("x")), PutInput{Category: "Product", Filename: "a.png"})
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, res.Key))
	_, err = l.Get(ctx, res.Key)
	assert.Error(t, err)
}
