package kbsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

const maxDocumentBytes = 4 << 20

// ObjectStoreSource fetches the entries document from S3 compatible storage
// such as Cloudflare R2 or MinIO.
type ObjectStoreSource struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// ObjectStoreOptions locates the document.
type ObjectStoreOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Key       string
}

// NewObjectStoreSource constructs the source.
func NewObjectStoreSource(opts ObjectStoreOptions, logger *slog.Logger) (*ObjectStoreSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := !strings.HasPrefix(strings.ToLower(opts.Endpoint), "http://")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &ObjectStoreSource{
		client: client,
		bucket: opts.Bucket,
		key:    opts.Key,
		logger: logger.With("component", "kbsource.objectstore"),
	}, nil
}

// Load implements faq.KnowledgeSource.
func (s *ObjectStoreSource) Load(ctx context.Context) ([]faq.Entry, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", s.bucket, s.key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, maxDocumentBytes+1))
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code != "" {
			return nil, fmt.Errorf("read object %s/%s: %s", s.bucket, s.key, resp.Code)
		}
		return nil, fmt.Errorf("read object %s/%s: %w", s.bucket, s.key, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("object %s/%s exceeds %d bytes", s.bucket, s.key, maxDocumentBytes)
	}
	s.logger.Info("knowledge base fetched", "bucket", s.bucket, "key", s.key, "bytes", len(data))
	return decodeEntries(data)
}

func sanitizeEndpoint(endpoint string) string {
	trimmed := strings.TrimSpace(endpoint)
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	return strings.TrimSuffix(trimmed, "/")
}

var _ faq.KnowledgeSource = (*ObjectStoreSource)(nil)
