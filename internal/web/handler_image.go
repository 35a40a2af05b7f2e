package web

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/tagrapport/tagrapport/internal/service"
)

func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}

const maxUploadSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded images.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the stdlib sniffer has no
// WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.badRequest(w, "failed to parse form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		s.badRequest(w, "no files uploaded")
		return
	}
	if len(files) > service.MaxImagesPerUpload {
		s.badRequest(w, fmt.Sprintf("at most %d files per upload", service.MaxImagesPerUpload))
		return
	}

	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.badRequest(w, "failed to read file")
			return
		}
		data, err := io.ReadAll(f)
		closeWithLog(f, "upload file", s.logger)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("failed to read upload: %w", err))
			return
		}

		mimeType, ok := allowedImageMIME(data)
		if !ok {
			s.badRequest(w, "unsupported image format")
			return
		}

		uploads = append(uploads, service.ImageUpload{
			Filename: fh.Filename,
			MimeType: mimeType,
			Size:     int64(len(data)),
			Data:     bytes.NewReader(data),
		})
	}

	comment := r.FormValue("comment")
	severity := r.FormValue("severity")

	images, err := s.reports.AttachImages(r.Context(), identity.Company.ID,
		r.PathValue("reportId"), r.PathValue("findingId"), uploads, comment, severity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusCreated, images, fmt.Sprintf("%d images uploaded successfully", len(images)))
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	images, err := s.reports.ListImages(r.Context(), identity.Company.ID, r.PathValue("reportId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, images, "")
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if err := s.reports.DeleteImage(r.Context(), identity.Company.ID, r.PathValue("imageId")); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respond(w, http.StatusOK, nil, "Image deleted successfully")
}

// handleServeUpload serves stored files by basename through the filestore,
// which rejects traversal outside its base directory.
func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	reader, mimeType, err := s.files.Open(r.Context(), r.PathValue("file"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "upload reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write upload failed", "file", r.PathValue("file"), "error", err)
	}
}
