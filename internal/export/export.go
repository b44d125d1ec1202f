// Package export writes list-pipeline results as JSONL and uploads them to an
// S3-compatible bucket.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Shivanand-hulikatti/event-planner/internal/config"
	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
)

// ErrDisabled is returned when no bucket is configured.
var ErrDisabled = errors.New("export is not configured")

// header is the first JSONL line of every export.
type header struct {
	Type       string           `json:"type"`
	Collection string           `json:"collection"`
	Timestamp  time.Time        `json:"timestamp"`
	Count      int              `json:"count"`
	Sort       listing.SortKey  `json:"sort"`
	Criteria   listing.Criteria `json:"criteria"`
}

// line wraps a single exported item.
type line struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Meta describes how the exported items were selected.
type Meta struct {
	Collection string
	Criteria   listing.Criteria
	Sort       listing.SortKey
	At         time.Time
}

// WriteJSONL writes a header line followed by one line per item, in order.
func WriteJSONL[T any](w io.Writer, meta Meta, items []T) error {
	enc := json.NewEncoder(w)
	h := header{
		Type:       "header",
		Collection: meta.Collection,
		Timestamp:  meta.At.UTC(),
		Count:      len(items),
		Sort:       meta.Sort,
		Criteria:   meta.Criteria,
	}
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, it := range items {
		if err := enc.Encode(line{Type: meta.Collection, Data: it}); err != nil {
			return fmt.Errorf("write item %d: %w", i, err)
		}
	}
	return nil
}

// PutObjectAPI is the part of *s3.Client the exporter needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Exporter uploads JSONL exports under a key prefix.
type S3Exporter struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Exporter creates an exporter from config. If Endpoint is set,
// path-style addressing is enabled (for MinIO and similar).
func NewS3Exporter(ctx context.Context, cfg config.S3Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, ErrDisabled
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3opts = append(s3opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}
	return NewWithClient(s3.NewFromConfig(awsCfg, s3opts...), cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient wires an exporter to an existing client.
func NewWithClient(client PutObjectAPI, bucket, prefix string) *S3Exporter {
	return &S3Exporter{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for an export taken at the given time.
func (e *S3Exporter) Key(collection string, at time.Time) string {
	prefix := e.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%s%s/%s.jsonl", prefix, collection, at.UTC().Format("20060102T150405Z"))
}

// Upload stores data and returns the object key.
func (e *S3Exporter) Upload(ctx context.Context, collection string, at time.Time, data []byte) (string, error) {
	key := e.Key(collection, at)
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return key, nil
}
