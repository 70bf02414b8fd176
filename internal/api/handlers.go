package api

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentalmanager/internal/database"
	"rentalmanager/internal/models"
	"rentalmanager/internal/schema"
)

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	token    string
	tokenTTL time.Duration
	now      func() time.Time
}

// Options configures the handler.
type Options struct {
	// Token is the bearer token issued on login and required on every
	// protected route. Empty disables authentication.
	Token    string
	TokenTTL time.Duration
}

func NewHandler(db *database.Database, opts Options, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	return &Handler{
		db:       db,
		logger:   logger,
		token:    opts.Token,
		tokenTTL: opts.TokenTTL,
		now:      time.Now,
	}
}

// respondError writes the error body shared by every route.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"code": status, "message": message})
}

func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.WithError(err).Error("Health check failed")
		respondError(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequireToken rejects requests that do not carry the configured bearer
// token.
func (h *Handler) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.token == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token != h.token {
			respondError(c, http.StatusUnauthorized, "Please authenticate")
			return
		}
		c.Next()
	}
}

func (h *Handler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schema.ValidateInput("credentials", creds); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := database.Authenticate(h.db.DB(), creds.Email, creds.Password)
	if errors.Is(err, database.ErrInvalidCredentials) {
		respondError(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to authenticate")
		respondError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.logger.WithField("user_id", user.ID).Info("User logged in")
	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"tokens": gin.H{
			"access": gin.H{
				"token":   h.token,
				"expires": h.now().Add(h.tokenTTL).UTC().Format(time.RFC3339),
			},
		},
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
