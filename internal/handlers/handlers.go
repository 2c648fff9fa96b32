package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/ai"
	"github.com/jcgamayo/pcbulacan-golang/internal/email"
	"github.com/jcgamayo/pcbulacan-golang/internal/notify"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB
	Logger    *zap.Logger
	Mailer    *email.Mailer
	Notifier  *notify.Notifier
	AIService *ai.AIService // nil when GEMINI_API_KEY is not configured
}

// dbtx is satisfied by both *sql.DB and *sql.Tx, so query helpers can run
// inside or outside a transaction.
type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	raw, _ := c.Get("userID")
	return raw.(int64)
}

// ok and fail produce the AJAX envelope the frontend expects.
func ok(data gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range data {
		out[k] = v
	}
	return out
}

func fail(message string) gin.H {
	return gin.H{"success": false, "message": message}
}
