package v1

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foliolabs/folio/domain/project"
	"github.com/foliolabs/folio/infrastructure/api"
	"github.com/foliolabs/folio/infrastructure/api/middleware"
	"github.com/foliolabs/folio/infrastructure/api/v1/dto"
	"github.com/foliolabs/folio/infrastructure/filestore"
	"github.com/foliolabs/folio/internal/config"
)

// UploadsRouter handles multipart attachment uploads. Files are stored
// through the configured blob storage and referenced by path in project
// write requests.
type UploadsRouter struct {
	files  filestore.Store
	logger *slog.Logger
}

// NewUploadsRouter creates a new UploadsRouter.
func NewUploadsRouter(files filestore.Store, logger *slog.Logger) *UploadsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadsRouter{files: files, logger: logger}
}

// Routes returns the chi router for upload endpoints.
func (rt *UploadsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", rt.Upload)

	return router
}

// Upload handles POST /api/v1/uploads. The multipart form carries the file
// under "file" and the attachment kind ("screenshot" or "video") under "type".
func (rt *UploadsRouter) Upload(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(config.MaxVideoSize); err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "invalid multipart form", err), rt.logger)
		return
	}

	kind := project.AttachmentKind(req.FormValue("type"))
	if kind != project.AttachmentScreenshot && kind != project.AttachmentVideo {
		middleware.WriteError(w, req,
			api.NewAPIError(http.StatusBadRequest, `invalid file type, must be "screenshot" or "video"`, nil),
			rt.logger)
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.WriteError(w, req, api.NewAPIError(http.StatusBadRequest, "no file provided", err), rt.logger)
		return
	}
	defer file.Close()

	maxSize := int64(config.MaxScreenshotSize)
	folder := "screenshots"
	if kind == project.AttachmentVideo {
		maxSize = config.MaxVideoSize
		folder = "videos"
	}

	if header.Size > maxSize {
		middleware.WriteError(w, req,
			api.NewAPIError(http.StatusBadRequest,
				fmt.Sprintf("file too large, max size: %dMB", maxSize/(1<<20)), nil),
			rt.logger)
		return
	}

	relPath := path.Join("uploads", folder, uniqueFilename(header.Filename))

	stored, err := rt.files.Save(req.Context(), relPath, file)
	if err != nil {
		middleware.WriteError(w, req, fmt.Errorf("store upload: %w", err), rt.logger)
		return
	}

	rt.logger.Info("file uploaded",
		slog.String("path", stored),
		slog.String("kind", string(kind)),
		slog.Int64("size", header.Size),
	)

	middleware.WriteData(w, http.StatusCreated, dto.UploadResponse{
		FileName: header.Filename,
		FilePath: stored,
		FileSize: header.Size,
		MimeType: header.Header.Get("Content-Type"),
		URL:      rt.files.PublicURL(stored),
	})
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// uniqueFilename builds a collision-resistant name from the original,
// keeping the extension.
func uniqueFilename(original string) string {
	ext := path.Ext(original)
	base := strings.TrimSuffix(original, ext)
	sanitized := strings.ToLower(unsafeFilenameChars.ReplaceAllString(base, "-"))
	return fmt.Sprintf("%s-%d-%06x%s", sanitized, time.Now().UnixMilli(), rand.Intn(1<<24), ext)
}
