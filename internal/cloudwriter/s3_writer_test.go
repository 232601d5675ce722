package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket, key, contentType string
	body                     []byte
	err                      error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	client := &fakeS3{}
	factory := NewS3WriterFactoryFromClient(context.Background(), client)

	w, err := factory.NewWriter("exports", "daily/predictions_2025-03-14.csv", "text/csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("a,b\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte(`"1","2"`))
	require.NoError(t, err)
	assert.Empty(t, client.body, "nothing is uploaded before Close")

	require.NoError(t, w.Close())
	assert.Equal(t, "exports", client.bucket)
	assert.Equal(t, "daily/predictions_2025-03-14.csv", client.key)
	assert.Equal(t, "text/csv", client.contentType)
	assert.Equal(t, "a,b\n\"1\",\"2\"", string(client.body))
	assert.Equal(t, "s3://exports/daily/predictions_2025-03-14.csv", w.Location())

	assert.ErrorIs(t, w.Close(), ErrClosed)
	_, err = w.Write([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestS3WriterPropagatesUploadError(t *testing.T) {
	boom := errors.New("access denied")
	factory := NewS3WriterFactoryFromClient(context.Background(), &fakeS3{err: boom})
	w, err := factory.NewWriter("exports", "x.json", "")
	require.NoError(t, err)
	assert.ErrorIs(t, w.Close(), boom)
}

func TestS3WriterRequiresBucket(t *testing.T) {
	_, err := NewS3WriterFactoryFromClient(context.Background(), &fakeS3{}).NewWriter("", "x", "")
	assert.Error(t, err)
}
