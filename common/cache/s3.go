package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/explore-flights/multimodal/common/adapt"
	"github.com/jxskiss/base62"
)

type s3Envelope struct {
	ExpiresAt time.Time       `json:"expiresAt"`
	Value     json.RawMessage `json:"value"`
}

// S3 keeps one object per key. Expired objects are treated as absent and
// left for a bucket lifecycle rule to remove.
type S3 struct {
	s3c    adapt.S3Client
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3(s3c adapt.S3Client, bucket, prefix string) *S3 {
	return &S3{
		s3c:    s3c,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *S3) objectKey(key string) string {
	// keys contain cyrillic and separators, base62 keeps object names flat and portable
	return s.prefix + base62.EncodeToString([]byte(key)) + ".json"
}

func (s *S3) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var env s3Envelope
	if err := adapt.S3GetJson(ctx, s.s3c, s.bucket, s.objectKey(key), &env); err != nil {
		if adapt.IsS3NotFound(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	if !s.now().Before(env.ExpiresAt) {
		return nil, false, nil
	}

	return env.Value, true, nil
}

func (s *S3) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return adapt.S3PutJson(ctx, s.s3c, s.bucket, s.objectKey(key), s3Envelope{
		ExpiresAt: s.now().Add(ttl),
		Value:     value,
	})
}

var _ Store = (*S3)(nil)
