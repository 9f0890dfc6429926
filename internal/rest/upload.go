package rest

import (
	"errors"
	"io"
	"net/http"

	"stockstores-be/internal/upload"

	"github.com/gin-gonic/gin"
)

func (s *Server) uploadUserPicture(c *gin.Context) {
	userID := c.Param("userId")
	if !requireSelf(c, userID) {
		return
	}

	// Room for the multipart framing around one maximum-size file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.MaxFileSize+64<<10)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, upload.ErrFileTooLarge)
			return
		}
		writeError(c, upload.ErrNoFile)
		return
	}
	if fh.Size > upload.MaxFileSize {
		writeError(c, upload.ErrFileTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	// One byte past the limit is enough to tell an oversized file.
	data, err := io.ReadAll(io.LimitReader(f, upload.MaxFileSize+1))
	if err != nil {
		writeError(c, err)
		return
	}

	publicURL, err := s.svc.Uploads.UploadUserPicture(c.Request.Context(), userID, fh.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicUrl": publicURL})
}
