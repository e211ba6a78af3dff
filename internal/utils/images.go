package utils

import (
    "mime/multipart"
    "os"
    "path/filepath"

    "github.com/disintegration/imaging"
    "github.com/google/uuid"
)

// thumbWidth is the bounding width of generated listing thumbnails.
const thumbWidth = 480

// SaveListingImage stores an uploaded listing photo under uploadDir and
// writes a thumbnail next to it.  Both are re-encoded as JPEG, which also
// strips any metadata the upload carried.  It returns the public URL paths
// for the full image and the thumbnail.
func SaveListingImage(uploadDir string, fh *multipart.FileHeader) (string, string, error) {
    src, err := fh.Open()
    if err != nil {
        return "", "", err
    }
    defer src.Close()

    img, err := imaging.Decode(src, imaging.AutoOrientation(true))
    if err != nil {
        return "", "", err
    }

    if err := os.MkdirAll(uploadDir, 0o755); err != nil {
        return "", "", err
    }
    name := uuid.NewString()
    full := name + ".jpg"
    thumb := name + "_thumb.jpg"

    if err := imaging.Save(img, filepath.Join(uploadDir, full), imaging.JPEGQuality(90)); err != nil {
        return "", "", err
    }
    small := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
    if err := imaging.Save(small, filepath.Join(uploadDir, thumb), imaging.JPEGQuality(80)); err != nil {
        return "", "", err
    }
    return "/uploads/" + full, "/uploads/" + thumb, nil
}
