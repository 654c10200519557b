package state

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// 100MB per extracted file, guards against archive bombs.
const maxFileSize = 100 << 20

// CreateCheckpointIfEnabled uploads a compressed snapshot of the store
// directory to S3. Badger's files are safe to copy while the DB is open as
// long as writes are quiesced by the caller (the watcher checkpoints between
// scans).
func (s *Store) CreateCheckpointIfEnabled(ctx context.Context) error {
	cp := s.cfg.State.Badger.Checkpoint
	if !cp.Enabled || !cp.S3.Enabled {
		return nil
	}

	tarFile := filepath.Join(os.TempDir(), fmt.Sprintf("%s-state.tar.gz", s.name))
	if err := tarGzDir(s.basePath, tarFile); err != nil {
		return err
	}
	defer os.Remove(tarFile)

	client, err := s.s3Client(ctx)
	if err != nil {
		return err
	}
	uploader := manager.NewUploader(client)

	file, err := os.Open(tarFile)
	if err != nil {
		return err
	}
	defer file.Close()

	key := fmt.Sprintf("%s%s.tar.gz", cp.S3.Prefix, s.name)
	res, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(cp.S3.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return err
	}
	log.Printf("[Checkpoint] Uploaded to %s", res.Location)
	return nil
}

// RestoreCheckpointIfAvailable downloads and extracts a checkpoint from S3
// if one is present. A missing object is not an error.
func (s *Store) RestoreCheckpointIfAvailable() error {
	cp := s.cfg.State.Badger.Checkpoint
	if !cp.Enabled || !cp.S3.Enabled {
		return nil
	}

	ctx := context.Background()
	client, err := s.s3Client(ctx)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%s.tar.gz", cp.S3.Prefix, s.name)
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cp.S3.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[Checkpoint] No checkpoint found in S3: %v", err)
		return nil
	}
	defer resp.Body.Close()

	log.Printf("[Checkpoint] Restoring state for %s from S3", s.name)
	return untarGz(resp.Body, s.basePath)
}

func (s *Store) s3Client(ctx context.Context) (*s3.Client, error) {
	s3cfg := s.cfg.State.Badger.Checkpoint.S3
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(s3cfg.Region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKey, s3cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		o.UsePathStyle = true
	}), nil
}

func tarGzDir(source, target string) error {
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	err = filepath.Walk(source, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		if rel == "." || info.IsDir() {
			return nil
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = rel
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gzw.Close()
}

func untarGz(reader io.Reader, target string) error {
	gzr, err := gzip.NewReader(reader)
	if err != nil {
		return err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if hdr.Size > maxFileSize {
			return fmt.Errorf("file %s too large: %d bytes (max %d)", hdr.Name, hdr.Size, int64(maxFileSize))
		}
		name := filepath.Clean(hdr.Name)
		if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
			return fmt.Errorf("invalid file path: %s (path traversal detected)", hdr.Name)
		}
		path := filepath.Join(target, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, dirMode); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
				return err
			}
			out, err := os.Create(path)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, io.LimitReader(tr, maxFileSize)); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
		}
	}
}
