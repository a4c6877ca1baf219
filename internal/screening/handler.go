package screening

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/extract"
	"resume-screener/internal/intake"
	"resume-screener/internal/shared/telemetry"
)

//go:embed templates/index.html
var templatesFS embed.FS

// Templates parses the embedded HTML views. All values are escaped by
// html/template; the candidate name column's bold markup lives in the
// template, never in data.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Handler serves the upload form and processes submissions.
type Handler struct {
	intake         *intake.Intake
	svc            *Service
	extensions     []string
	maxUploadBytes int64
}

// NewHandler constructs the screening Handler.
func NewHandler(in *intake.Intake, svc *Service, extensions []string, maxUploadBytes int64) *Handler {
	return &Handler{
		intake:         in,
		svc:            svc,
		extensions:     extensions,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes attaches the screening routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.form)
	r.POST("/", h.submit)
}

type pageData struct {
	Table         *Table
	UploadedFiles []string
}

func (h *Handler) form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{})
}

func (h *Handler) submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	// The credential is request-scoped: it travels with the call chain and is
	// never written to process state.
	apiKey := strings.TrimSpace(c.PostForm("api_key"))
	if apiKey == "" {
		c.String(http.StatusBadRequest, "API key is required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	files, ok := form.File["files"]
	if !ok {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}

	batch, err := h.intake.Begin(c.Request.Context())
	if err != nil {
		telemetry.Error("screening.intake.failed", map[string]any{
			"request_id": c.GetString("requestId"),
			"err":        err.Error(),
		})
		c.String(http.StatusInternalServerError, "failed to prepare upload storage")
		return
	}
	defer batch.Close()
	c.Set("batchId", batch.ID())

	for _, fh := range files {
		if _, err := batch.Add(fh); err != nil {
			if errors.Is(err, intake.ErrSkipped) {
				continue
			}
			telemetry.Error("screening.store.failed", map[string]any{
				"batch_id": batch.ID(),
				"file":     fh.Filename,
				"err":      err.Error(),
			})
		}
	}

	docs, err := extract.Documents(c.Request.Context(), batch.Dir(), h.extensions)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to read uploaded files")
		return
	}
	c.Set("documentCount", len(docs))

	table := h.svc.Screen(c.Request.Context(), apiKey, docs)
	c.HTML(http.StatusOK, "index.html", pageData{
		Table:         &table,
		UploadedFiles: batch.Accepted(),
	})
}
