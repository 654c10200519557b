package report

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/image2radiomics/i2r/pkg/config"
)

// UploadArchive compresses folder into a tar.gz and uploads it under the
// configured prefix, keyed by name. No-op when the results bucket is
// disabled.
func UploadArchive(ctx context.Context, s3cfg config.S3Config, name, folder string) error {
	if !s3cfg.Enabled {
		return nil
	}

	tarFile := filepath.Join(os.TempDir(), fmt.Sprintf("%s-results.tar.gz", name))
	if err := writeTarGz(folder, tarFile); err != nil {
		return fmt.Errorf("archiving %s: %w", folder, err)
	}
	defer os.Remove(tarFile)

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(s3cfg.Region),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKey, s3cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		o.UsePathStyle = true
	})
	uploader := manager.NewUploader(client)

	file, err := os.Open(tarFile)
	if err != nil {
		return err
	}
	defer file.Close()

	key := fmt.Sprintf("%s%s.tar.gz", s3cfg.Prefix, name)
	res, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s3cfg.Bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return err
	}
	log.Printf("[Results] Uploaded to %s", res.Location)
	return nil
}

func writeTarGz(source, target string) error {
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
		if rel == "." {
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
		if info.IsDir() {
			return nil
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
