package pdftext

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

const gcsScheme = "gs://"

// IsRemote reports whether source names a Cloud Storage object.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, gcsScheme)
}

// splitGCSURI splits gs://bucket/path/to/object into bucket and object.
func splitGCSURI(uri string) (bucket, object string, err error) {
	parts := strings.SplitN(strings.TrimPrefix(uri, gcsScheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI %q: want gs://bucket/object", uri)
	}
	return parts[0], parts[1], nil
}

// BaseName returns the last path element of a local path or gs:// URI.
func BaseName(source string) string {
	source = strings.TrimRight(source, "/")
	if i := strings.LastIndexAny(source, `/\`); i >= 0 {
		return source[i+1:]
	}
	return source
}

func fetchGCS(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := splitGCSURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s/%s: %w", bucket, object, err)
	}
	return data, nil
}
