package handler

import (
    "crypto/rand"
    "encoding/binary"
    "errors"
    "fmt"
    "net/http"
    "path"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/villa-booking/internal/storage"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// MaxImageBytes is the upload size limit.
const MaxImageBytes = 10 << 20

// imageTypes maps the accepted MIME types to the extension of stored keys.
var imageTypes = map[string]string{
    "image/jpeg": "jpg",
    "image/png":  "png",
    "image/webp": "webp",
    "image/avif": "avif",
    "image/gif":  "gif",
}

const imageTypesMessage = "Invalid file type. Allowed: image/jpeg, image/png, image/webp, image/avif, image/gif"

type ImageHandler struct {
    Store      storage.ObjectStore
    PublicBase string
    now        func() time.Time
}

func NewImageHandler(store storage.ObjectStore, publicBase string) *ImageHandler {
    return &ImageHandler{Store: store, PublicBase: publicBase, now: time.Now}
}

type imageItem struct {
    ID       string    `json:"id"`
    Filename string    `json:"filename"`
    Uploaded time.Time `json:"uploaded"`
    Size     int64     `json:"size"`
    URL      string    `json:"url"`
}

type uploadResp struct {
    ID          string `json:"id"`
    Filename    string `json:"filename"`
    URL         string `json:"url"`
    Size        int64  `json:"size"`
    ContentType string `json:"content_type"`
}

func (h *ImageHandler) url(key string) string {
    return strings.TrimSuffix(h.PublicBase, "/") + "/" + key
}

// List serves GET /api/images/list?prefix=.
func (h *ImageHandler) List(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    objs, err := h.Store.List(ctx, c.QueryParam("prefix"))
    if err != nil {
        return err
    }
    out := make([]imageItem, 0, len(objs))
    for _, o := range objs {
        out = append(out, imageItem{
            ID:       o.Key,
            Filename: path.Base(o.Key),
            Uploaded: o.LastModified,
            Size:     o.Size,
            URL:      h.url(o.Key),
        })
    }
    return utils.JSONSuccess(c, http.StatusOK, out)
}

// Upload stores the multipart "file" field under a generated key.
func (h *ImageHandler) Upload(c echo.Context) error {
    fh, err := c.FormFile("file")
    if err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
    }
    contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(fh.Header.Get(echo.HeaderContentType), ";", 2)[0]))
    ext, ok := imageTypes[contentType]
    if !ok {
        return echo.NewHTTPError(http.StatusBadRequest, imageTypesMessage)
    }
    if fh.Size > MaxImageBytes {
        return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10MB")
    }

    prefix := strings.TrimLeft(c.FormValue("prefix"), "/")
    if strings.Contains(prefix, "..") {
        return echo.NewHTTPError(http.StatusBadRequest, "Invalid prefix")
    }
    now := h.now().UTC()
    suffix, err := randomBase36()
    if err != nil {
        return err
    }
    key := fmt.Sprintf("%s%d-%s.%s", prefix, now.UnixMilli(), suffix, ext)

    f, err := fh.Open()
    if err != nil {
        return err
    }
    defer f.Close()

    ctx, cancel := reqCtx(c)
    defer cancel()

    meta := map[string]string{
        storage.MetaOriginalFilename: fh.Filename,
        storage.MetaUploadedAt:       now.Format(time.RFC3339),
    }
    if err := h.Store.Put(ctx, key, f, fh.Size, contentType, meta); err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusCreated, uploadResp{
        ID:          key,
        Filename:    fh.Filename,
        URL:         h.url(key),
        Size:        fh.Size,
        ContentType: contentType,
    }, "Image uploaded")
}

// Get streams the object named by the rest of the path.
func (h *ImageHandler) Get(c echo.Context) error {
    key := c.Param("*")
    if key == "" {
        return echo.ErrNotFound
    }
    body, obj, err := h.Store.Get(c.Request().Context(), key)
    if errors.Is(err, storage.ErrObjectNotFound) {
        return echo.NewHTTPError(http.StatusNotFound, "Image not found")
    }
    if err != nil {
        return err
    }
    defer body.Close()

    hdr := c.Response().Header()
    if obj.Size > 0 {
        hdr.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
    }
    hdr.Set("Cache-Control", "public, max-age=31536000, immutable")
    contentType := obj.ContentType
    if contentType == "" {
        contentType = echo.MIMEOctetStream
    }
    return c.Stream(http.StatusOK, contentType, body)
}

// Delete removes the object named by the rest of the path.
func (h *ImageHandler) Delete(c echo.Context) error {
    key := c.Param("*")
    if key == "" {
        return echo.ErrNotFound
    }
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Store.Delete(ctx, key); err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"id": key}, "Image deleted")
}

func randomBase36() (string, error) {
    var b [8]byte
    if _, err := rand.Read(b[:]); err != nil {
        return "", err
    }
    return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 36), nil
}
