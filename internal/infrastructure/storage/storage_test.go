package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"resume-match/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("resume body")
	require.NoError(t, s.Put(ctx, "resumes/a.txt", data, "text/plain"))
	data[0] = 'X'

	got, err := s.Get(ctx, "resumes/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "resume body", string(got))

	require.NoError(t, s.Delete(ctx, "resumes/a.txt"))
	require.NoError(t, s.Delete(ctx, "resumes/a.txt"))
	_, err = s.Get(ctx, "resumes/a.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Zero(t, s.Len())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewMemoryStore().Put(ctx, "k", nil, ""), context.Canceled)
}

func TestNew_EmptyBucketIsMemory(t *testing.T) {
	fs, err := New(context.Background(), config.StorageConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, fs)
}

// fakeS3 serves path-style object requests from a map.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(r.URL.Path, "/resumes-bucket/")
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[key] = string(b)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		v, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		_, _ = io.WriteString(w, v)
	case http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_AgainstFakeEndpoint(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Store(ctx, config.StorageConfig{
		Bucket:          "resumes-bucket",
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "u1/cv.txt", []byte("Go developer"), "text/plain"))
	assert.Equal(t, "Go developer", fake.objects["u1/cv.txt"])

	got, err := s.Get(ctx, "u1/cv.txt")
	require.NoError(t, err)
	assert.Equal(t, "Go developer", string(got))

	require.NoError(t, s.Delete(ctx, "u1/cv.txt"))
	_, err = s.Get(ctx, "u1/cv.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), config.StorageConfig{})
	assert.Error(t, err)
}
