package checks

import (
	"context"
	"fmt"

	"traceability/core/storage"
)

// StorageReport is the outcome of the archive bucket check.
type StorageReport struct {
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	Fixed  bool   `json:"fixed"`
}

// CheckStorage reports whether the archive bucket exists, creating it when fix is set.
func CheckStorage(ctx context.Context, client storage.Client, bucket, region string, fix bool) (*StorageReport, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	report := &StorageReport{Bucket: bucket, Exists: exists}
	if exists || !fix {
		return report, nil
	}

	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return nil, err
	}
	report.Exists = true
	report.Fixed = true
	return report, nil
}
