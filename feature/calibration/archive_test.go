package calibration

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"traceability/core/storage"
	"traceability/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestArchive() (*Archive, *mocks.Client) {
	client := new(mocks.Client)
	return NewArchive(client, storage.Config{Bucket: "test-bucket", Prefix: "uploads"}), client
}

func TestArchive_Key(t *testing.T) {
	a, _ := newTestArchive()
	at := time.Unix(1700000000, 0)

	assert.Equal(t, "uploads/PED-1/1700000000_lote.xlsx", a.Key("PED-1", "lote.xlsx", at))
	assert.Equal(t, "uploads/PED_1_A/1700000000_my_file_.xlsx", a.Key("PED/1 A", "../dir/my file?.xlsx", at))
}

func TestArchive_KeyStaysUnderPrefix(t *testing.T) {
	a, _ := newTestArchive()
	at := time.Unix(1700000000, 0)

	tests := []struct {
		order, filename, want string
	}{
		{"..", "lote.xlsx", "uploads/_/1700000000_lote.xlsx"},
		{".", "lote.xlsx", "uploads/_/1700000000_lote.xlsx"},
		{"../../etc", "lote.xlsx", "uploads/_.._etc/1700000000_lote.xlsx"},
		{"...PED", "lote.xlsx", "uploads/PED/1700000000_lote.xlsx"},
		{"PED-1", "..", "uploads/PED-1/1700000000__"},
	}
	for _, tt := range tests {
		key := a.Key(tt.order, tt.filename, at)
		assert.Equal(t, tt.want, key, tt.order)
		assert.True(t, strings.HasPrefix(key, "uploads/"), key)
	}
}

func TestArchive_Put(t *testing.T) {
	a, client := newTestArchive()
	client.On("PutObject", mock.Anything, "test-bucket", "uploads/PED-1/1_a.xlsx", mock.Anything, int64(3),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == ContentType }),
	).Return(minio.UploadInfo{}, nil)

	require.NoError(t, a.Put(context.Background(), "uploads/PED-1/1_a.xlsx", []byte("abc")))
	client.AssertExpectations(t)
}

func TestArchive_Get(t *testing.T) {
	a, client := newTestArchive()
	client.On("GetObject", mock.Anything, "test-bucket", "k", mock.Anything).
		Return(io.NopCloser(strings.NewReader("payload")), nil)

	data, err := a.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	client.On("GetObject", mock.Anything, "test-bucket", "missing", mock.Anything).
		Return(nil, errors.New("no such key"))
	_, err = a.Get(context.Background(), "missing")
	assert.ErrorContains(t, err, "no such key")
}

func TestArchive_List(t *testing.T) {
	a, client := newTestArchive()

	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "uploads/PED-1/1_a.xlsx", Size: 10}
	ch <- minio.ObjectInfo{Key: "uploads/PED-1/2_b.xlsx", Size: 20}
	close(ch)
	client.On("ListObjects", mock.Anything, "test-bucket",
		minio.ListObjectsOptions{Prefix: "uploads/PED-1/", Recursive: true},
	).Return((<-chan minio.ObjectInfo)(ch))

	objects, err := a.List(context.Background(), "PED-1")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, int64(20), objects[1].Size)
}

func TestArchive_ListError(t *testing.T) {
	a, client := newTestArchive()

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)
	client.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := a.List(context.Background(), "")
	assert.ErrorContains(t, err, "access denied")
}
