package api

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/middleware"
	"github.com/lalith-99/vidora/internal/storage"
)

// pathID parses a UUID path parameter. label names it in the error.
func pathID(c *gin.Context, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, apperr.InvalidInput("Invalid " + label + " id")
	}
	return id, nil
}

// ownerCheck is a service's ownership test for one entity.
type ownerCheck func(ctx context.Context, actorID, id uuid.UUID) error

// inputError returns the ownership failure when there is one and
// inputErr otherwise, so a non-owner gets 403 whatever the body held.
func inputError(c *gin.Context, check ownerCheck, id uuid.UUID, inputErr error) error {
	if err := check(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		return err
	}
	return inputErr
}

// upload is an opened multipart file. Close must be called once the
// request is done with it.
type upload struct {
	file   *storage.File
	closer multipart.File
}

func (u *upload) File() *storage.File {
	if u == nil {
		return nil
	}
	return u.file
}

func (u *upload) Close() {
	if u != nil && u.closer != nil {
		u.closer.Close()
	}
}

// formFile opens the named multipart file. A missing file yields nil
// without error; whether it was required is the service's call.
func formFile(c *gin.Context, field string) (*upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		case errors.As(err, &tooLarge):
			return nil, apperr.InvalidInput("Upload exceeds the size limit")
		default:
			return nil, apperr.InvalidInput("Invalid " + field + " upload")
		}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("failed to open upload", err)
	}
	return &upload{
		file: &storage.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		},
		closer: f,
	}, nil
}

// optionalForm returns a pointer to the form value, or nil when the
// field was not sent at all.
func optionalForm(c *gin.Context, field string) *string {
	v, ok := c.GetPostForm(field)
	if !ok {
		return nil
	}
	return &v
}

// parseDuration reads a duration in seconds. Anything unparsable counts
// as 0, like a negative value does.
func parseDuration(raw string) float64 {
	d, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return d
}
