// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/staranto/prefcache/internal/aws"
	"github.com/staranto/prefcache/internal/prefs"
)

// API is the subset of the S3 client used by Store.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store keeps one object per key at <prefix><key> in a bucket.
type Store struct {
	client   API
	bucket   string
	prefix   string
	region   string
	profile  string
	endpoint string
}

var (
	_ prefs.Backend = (*Store)(nil)
	_ prefs.Stater  = (*Store)(nil)
)

type Option func(*Store)

// WithPrefix sets the key prefix, e.g. "prefctl/".
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithClient injects the S3 client. When unset, one is built from the AWS
// config chain.
func WithClient(c API) Option {
	return func(s *Store) { s.client = c }
}

func WithRegion(region string) Option {
	return func(s *Store) { s.region = region }
}

func WithProfile(profile string) Option {
	return func(s *Store) { s.profile = profile }
}

// WithEndpoint targets an S3-compatible server instead of AWS.
func WithEndpoint(endpoint string) Option {
	return func(s *Store) { s.endpoint = endpoint }
}

// New returns a Store for bucket.
func New(ctx context.Context, bucket string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("bucket is required")
	}

	s := &Store{bucket: strings.TrimSpace(bucket)}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithRegion(s.region), awsx.WithProfile(s.profile))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s.client = awsx.NewS3(cfg, awsx.WithS3Endpoint(s.endpoint))
	}

	log.Debugf("s3 store: bucket=%s prefix=%s", s.bucket, s.prefix)
	return s, nil
}

func (s *Store) String() string {
	return "s3://" + s.bucket + "/" + s.prefix
}

func (s *Store) objectKey(key string) (string, error) {
	k, err := prefs.CheckKey(key)
	if err != nil {
		return "", err
	}
	return s.prefix + k, nil
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, bool, error) {
	name, err := s.objectKey(key)
	if err != nil {
		return nil, false, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get S3 object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	return data, true, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	name, err := s.objectKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to put S3 object: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	name, err := s.objectKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete S3 object: %w", err)
	}
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var keys []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			k := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if k == "" || strings.HasSuffix(k, "/") {
				continue
			}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Stat(ctx context.Context, key string) (prefs.Info, bool, error) {
	name, err := s.objectKey(key)
	if err != nil {
		return prefs.Info{}, false, err
	}

	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if isNotFound(err) {
		return prefs.Info{}, false, nil
	}
	if err != nil {
		return prefs.Info{}, false, fmt.Errorf("failed to head S3 object: %w", err)
	}

	return prefs.Info{
		Key:     strings.TrimPrefix(name, s.prefix),
		Size:    aws.ToInt64(out.ContentLength),
		ModTime: aws.ToTime(out.LastModified),
	}, true, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
