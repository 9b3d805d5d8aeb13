package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"

	"github.com/Brownie44l1/agricare-api/internal/advisory"
	"github.com/Brownie44l1/agricare-api/internal/apperr"
	"github.com/Brownie44l1/agricare-api/internal/imaging"
	"github.com/Brownie44l1/agricare-api/internal/labels"
	"github.com/Brownie44l1/agricare-api/internal/model"
	"github.com/Brownie44l1/agricare-api/internal/report"
	"github.com/Brownie44l1/agricare-api/internal/sanitize"
	"github.com/gin-gonic/gin"
)

// Deps are the process-wide collaborators shared by all requests. Predictor
// may be nil when the model failed to load; Advisor may wrap a nil client.
type Deps struct {
	Predictor model.Predictor
	Labels    *labels.Map
	Advisor   *advisory.Generator
	Renderer  *report.Renderer
	ImageSize int
}

type Handler struct {
	predictor model.Predictor
	labels    *labels.Map
	advisor   *advisory.Generator
	renderer  *report.Renderer
	imageSize int
}

func NewHandler(d Deps) *Handler {
	if d.Labels == nil {
		d.Labels = labels.Default()
	}
	if d.Advisor == nil {
		d.Advisor = advisory.New(nil)
	}
	if d.Renderer == nil {
		d.Renderer = report.NewRenderer(report.Options{Compress: true})
	}
	if d.ImageSize <= 0 {
		d.ImageSize = imaging.DefaultSize
	}
	return &Handler{
		predictor: d.Predictor,
		labels:    d.Labels,
		advisor:   d.Advisor,
		renderer:  d.Renderer,
		imageSize: d.ImageSize,
	}
}

type AnalyzeResponse struct {
	DiseaseName string  `json:"disease_name"`
	ReportText  string  `json:"report_text"`
	ReportOK    bool    `json:"report_ok"`
	ReportError string  `json:"report_error,omitempty"`
	Confidence  float32 `json:"confidence"`
}

type PDFRequest struct {
	ReportText  *string `json:"report_text"`
	DiseaseName *string `json:"disease_name"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "AgriCare AI Backend is running",
	})
}

// Ready reports which optional dependencies were initialised.
func (h *Handler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"model":    h.predictor != nil,
		"llm":      h.advisor.Configured(),
		"provider": h.advisor.Provider(),
		"classes":  h.labels.Len(),
	})
}

func (h *Handler) Labels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"labels": h.labels.Entries()})
}

func (h *Handler) AnalyzeImage(c *gin.Context) {
	if h.predictor == nil || h.labels.Len() == 0 {
		writeError(c, apperr.New(apperr.ServiceUnavailable, "Server is not configured properly."))
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, apperr.Wrap(apperr.TooLarge, "Image file too large", err))
			return
		}
		writeError(c, apperr.New(apperr.BadRequest, "No image file provided"))
		return
	}
	if header.Filename == "" || header.Size == 0 {
		writeError(c, apperr.New(apperr.BadRequest, "No selected file"))
		return
	}

	log.Printf("[%s] Received file: %s, size: %d bytes", RequestID(c), header.Filename, header.Size)

	file, err := header.Open()
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, "open upload", err))
		return
	}
	defer file.Close()

	tensor, err := imaging.Preprocess(file, h.imageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	prediction, err := h.predictor.Predict(tensor)
	if err != nil {
		writeError(c, err)
		return
	}

	disease := h.labels.LabelOrUnknown(prediction.Index)
	log.Printf("[%s] Predicted class %d (%s), confidence %.4f", RequestID(c), prediction.Index, disease, prediction.Confidence)

	result := h.advisor.Generate(c.Request.Context(), disease)

	resp := AnalyzeResponse{
		DiseaseName: disease,
		ReportText:  result.Text,
		ReportOK:    result.OK,
		Confidence:  prediction.Confidence,
	}
	if !result.OK {
		resp.ReportError = result.Failure.String()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GeneratePDF(c *gin.Context) {
	var req PDFRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReportText == nil || req.DiseaseName == nil {
		writeError(c, apperr.New(apperr.BadRequest, "Missing report data"))
		return
	}

	pdfBytes, err := h.renderer.Render(*req.DiseaseName, *req.ReportText)
	if err != nil {
		log.Printf("[%s] An error occurred during PDF generation: %v", RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("An internal server error occurred during PDF generation: %v", err),
		})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": AttachmentName(*req.DiseaseName),
	}))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// AttachmentName is the download filename for a disease report.
func AttachmentName(disease string) string {
	return "AgriCare_Report_" + sanitize.Filename(disease) + ".pdf"
}

func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := err.Error()

	var appErr *apperr.Error
	if errors.As(err, &appErr) && kind != apperr.Internal {
		msg = appErr.Message
	}
	if kind == apperr.Internal {
		msg = "An internal server error occurred: " + msg
	}

	log.Printf("[%s] %s %s: %s (%v)", RequestID(c), c.Request.Method, c.Request.URL.Path, kind, err)
	c.JSON(apperr.Status(kind), gin.H{"error": msg})
}
