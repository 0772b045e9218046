// Package uploads stores post images and returns the reference kept on
// the post document. Cloudinary when configured, otherwise the image is
// inlined as a base64 data URL the way the original app stored its
// image buffers.
package uploads

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/MJS022423/GlamURe/errs"
)

// ImageUploader stores one image and returns its reference.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, name string) (string, error)
}

// Cloudinary uploads into a fixed folder with a bounded transformation.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, errs.Wrap(errs.Persistence, "Cloudinary configuration error", err)
	}
	return &Cloudinary{cld: cld, folder: "glamure/posts"}, nil
}

var _ ImageUploader = &Cloudinary{}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, name string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         c.folder,
		PublicID:       name + "_" + time.Now().Format("20060102150405"),
		Transformation: "c_limit,w_1080,h_1080,q_auto",
	})
	if err != nil {
		return "", errs.Wrap(errs.Persistence, "failed to upload image", err)
	}
	return res.SecureURL, nil
}

// Inline encodes the image as a data URL. Development fallback, no
// external dependency.
type Inline struct {
	// MaxBytes bounds how much of the upload is read. Zero means the
	// default of 10 MiB.
	MaxBytes int64
}

var _ ImageUploader = &Inline{}

func (u *Inline) Upload(ctx context.Context, r io.Reader, name string) (string, error) {
	max := u.MaxBytes
	if max <= 0 {
		max = 10 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return "", errs.Wrap(errs.Persistence, "failed to read image", err)
	}
	if int64(len(data)) > max {
		return "", errs.Newf(errs.Validation, "image %s exceeds the %d byte limit", name, max)
	}
	if len(data) == 0 {
		return "", errs.Newf(errs.Validation, "image %s is empty", name)
	}

	mime := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), nil
}
