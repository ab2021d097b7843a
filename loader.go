package main

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageLoader loads a sprite in the background. done is called exactly once,
// from any goroutine, with either the decoded image or an error.
type ImageLoader interface {
	Load(ctx context.Context, source string, done func(image.Image, error))
}

// FileLoader decodes sprites from the local filesystem.
type FileLoader struct{}

func (FileLoader) Load(ctx context.Context, source string, done func(image.Image, error)) {
	go func() {
		img, err := decodeFile(ctx, source)
		done(img, err)
	}()
}

func decodeFile(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sprite")
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode sprite %s", path)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, errors.Errorf("sprite %s (%s) is empty", path, format)
	}
	return img, nil
}
