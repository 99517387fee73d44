package adapt

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	jsoniter "github.com/json-iterator/go"
)

type S3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Client interface {
	S3Getter
	S3Putter
}

func S3GetJson(ctx context.Context, s3c S3Getter, bucket, key string, v any) error {
	return S3Get(ctx, s3c, bucket, key, func(r io.Reader) error {
		return jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(v)
	})
}

func S3GetRaw(ctx context.Context, s3c S3Getter, bucket, key string) ([]byte, error) {
	var b []byte
	err := S3Get(ctx, s3c, bucket, key, func(r io.Reader) error {
		var err error
		b, err = io.ReadAll(r)
		return err
	})

	return b, err
}

func S3Get(ctx context.Context, s3c S3Getter, bucket, key string, fn func(r io.Reader) error) error {
	resp, err := s3c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return err
	}

	defer resp.Body.Close()
	return fn(resp.Body)
}

func S3PutJson(ctx context.Context, s3c S3Putter, bucket, key string, v any) error {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return err
	}

	return S3PutRaw(ctx, s3c, bucket, key, "application/json", b)
}

func S3PutRaw(ctx context.Context, s3c S3Putter, bucket, key, contentType string, b []byte) error {
	_, err := s3c.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(b),
	})

	return err
}
