package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3ImageStore_Upload(t *testing.T) {
	client := &fakeS3{}
	store := NewS3ImageStore(client, "gifts", "ap-south-1", "")

	url, err := store.Upload(context.Background(), "products/a.png", "image/png", []byte("png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://gifts.s3.ap-south-1.amazonaws.com/products/a.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(client.put.Bucket) != "gifts" || aws.ToString(client.put.ContentType) != "image/png" || string(client.body) != "png" {
		t.Fatalf("unexpected put %+v", client.put)
	}
}

func TestS3ImageStore_Delete(t *testing.T) {
	client := &fakeS3{}
	store := NewS3ImageStore(client, "gifts", "ap-south-1", "http://localhost:9000/gifts/")

	if err := store.Delete(context.Background(), "http://localhost:9000/gifts/products/a.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(context.Background(), "https://images.example.com/other.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "products/a.png" {
		t.Fatalf("unexpected deletes %v", client.deleted)
	}
}
