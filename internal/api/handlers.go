package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"residence/server/internal/filestore"
	"residence/server/internal/leads"
	"residence/server/internal/media"
	"residence/server/internal/models"
)

const jsonContentType = "application/json; charset=utf-8"

type Handler struct {
	content *filestore.ContentFile
	media   *media.Service
	leads   *leads.Service
	logger  *logrus.Logger
}

func NewHandler(content *filestore.ContentFile, media *media.Service, leads *leads.Service, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		content: content,
		media:   media,
		leads:   leads,
		logger:  logger,
	}
}

func (h *Handler) GetData(c *gin.Context) {
	data, found, err := h.content.Load()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load content"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.Data(http.StatusOK, jsonContentType, data)
}

// SaveData stores the posted snapshot as sent. Only its shape as a JSON
// object is checked; keys the server does not know about are kept.
func (h *Handler) SaveData(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := h.content.Save(body); err != nil {
		if errors.Is(err, filestore.ErrNotObject) {
			h.logger.WithError(err).Warn("Rejected content with invalid JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		h.logger.WithError(err).Error("Failed to save content")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content"})
		return
	}

	h.logger.WithField("bytes", len(body)).Info("Content replaced")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) Upload(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	url, err := h.media.Save(file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedFormat) || errors.Is(err, media.ErrTooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := h.leads.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, leads.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to record booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "bookingId": booking.ID})
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.leads.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}
