package cloudwriter

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client the writer needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer holds the whole object in memory and uploads it on Close. A
// closed writer rejects further writes.
type S3Writer struct {
	ctx         context.Context
	client      PutObjectAPI
	bucket      string
	key         string
	contentType string
	buffer      bytes.Buffer
	closed      bool
}

type S3WriterFactory struct {
	ctx    context.Context
	client PutObjectAPI
	prefix string
}

func NewS3WriterFactory(ctx context.Context, region, prefix string) (*S3WriterFactory, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewS3WriterFactoryWithClient(ctx, s3.NewFromConfig(cfg), prefix), nil
}

func NewS3WriterFactoryWithClient(ctx context.Context, client PutObjectAPI, prefix string) *S3WriterFactory {
	return &S3WriterFactory{ctx: ctx, client: client, prefix: strings.Trim(prefix, "/")}
}

func (f *S3WriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	key := strings.TrimPrefix(path.Clean("/"+objectPath), "/")
	if f.prefix != "" {
		key = f.prefix + "/" + key
	}
	return &S3Writer{
		ctx:         f.ctx,
		client:      f.client,
		bucket:      bucket,
		key:         key,
		contentType: contentType(key),
	}, nil
}

func contentType(key string) string {
	switch path.Ext(key) {
	case ".parquet":
		return "application/vnd.apache.parquet"
	case ".json":
		return "application/x-ndjson"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}

func (w *S3Writer) Key() string { return w.key }

func (w *S3Writer) Write(data []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("write to closed object %s", w.key)
	}
	return w.buffer.Write(data)
}

func (w *S3Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	_, err := w.client.PutObject(w.ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(w.key),
		Body:          bytes.NewReader(w.buffer.Bytes()),
		ContentLength: aws.Int64(int64(w.buffer.Len())),
		ContentType:   aws.String(w.contentType),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s to S3: %w", w.key, err)
	}
	return nil
}
