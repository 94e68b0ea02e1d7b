package calibration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"traceability/core/storage"

	"github.com/minio/minio-go/v7"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// keySegment makes s a single object-key segment. Leading dots are dropped so
// "." and ".." never reach path.Join.
func keySegment(s string) string {
	seg := strings.TrimLeft(unsafeKeyChars.ReplaceAllString(s, "_"), ".")
	if seg == "" {
		return "_"
	}
	return seg
}

// ArchivedObject describes one archived workbook.
type ArchivedObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores uploaded workbooks in the object store.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchive creates an archive in cfg.Bucket under cfg.Prefix.
func NewArchive(client storage.Client, cfg storage.Config) *Archive {
	return &Archive{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}
}

// Key builds <prefix>/<order>/<unix>_<filename>, with unsafe characters replaced.
func (a *Archive) Key(orderReference, filename string, at time.Time) string {
	name := keySegment(path.Base(filename))
	return path.Join(a.prefix, keySegment(orderReference), fmt.Sprintf("%d_%s", at.Unix(), name))
}

// Put uploads a workbook under key.
func (a *Archive) Put(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ContentType,
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return nil
}

// Get downloads an archived workbook.
func (a *Archive) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// List returns every archived workbook, optionally restricted to one order.
func (a *Archive) List(ctx context.Context, orderReference string) ([]ArchivedObject, error) {
	prefix := a.prefix
	if orderReference != "" {
		prefix = path.Join(prefix, keySegment(orderReference))
	}
	if prefix != "" {
		prefix += "/"
	}

	objects := []ArchivedObject{}
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		objects = append(objects, ArchivedObject{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	return objects, nil
}
