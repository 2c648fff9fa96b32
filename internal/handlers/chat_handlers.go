package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"github.com/jcgamayo/pcbulacan-golang/internal/chatbot"
)

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// Chat is the handler for POST /v1/chat.
// FAQ keyword matching answers first; when nothing matches and Gemini is
// configured, the question escalates there with live store context.
func (h *Handlers) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, fail("Invalid input: "+err.Error()))
		return
	}

	fees, err := h.loadChatFees()
	if err != nil {
		h.Logger.Warn("chat fee load failed", zap.Error(err))
		fees = nil
	}

	answer, matched := chatbot.Respond(input.Message, fees)

	if !matched && h.AIService != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		aiAnswer, err := h.AIService.GenerateResponse(ctx, input.Message, h.chatStoreContext(fees))
		if err != nil {
			h.Logger.Warn("generative fallback failed", zap.Error(err))
		} else if aiAnswer != "" {
			answer = aiAnswer
			matched = true
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": answer, "matched": matched})
}

// loadChatFees pulls the available delivery rates for the dynamic
// shipping answer.
func (h *Handlers) loadChatFees() ([]chatbot.Fee, error) {
	rows, err := h.DB.Query(`
		SELECT city, state, fee_amount, min_order_free_delivery, estimated_days
		FROM delivery_fees
		WHERE is_available = 1
		ORDER BY state, city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []chatbot.Fee
	for rows.Next() {
		var fee chatbot.Fee
		if err := rows.Scan(&fee.City, &fee.State, &fee.Amount, &fee.FreeOver, &fee.EstimatedDays); err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// chatStoreContext summarizes live store facts for the generative
// fallback so its answers match what the FAQ would say.
func (h *Handlers) chatStoreContext(fees []chatbot.Fee) string {
	var sb strings.Builder
	sb.WriteString("Payment methods: Cash on Delivery (COD), GCash, PayMaya.\n")

	if len(fees) > 0 {
		sb.WriteString("Current delivery rates:\n")
		for _, fee := range fees {
			sb.WriteString(fmt.Sprintf("- %s, %s: PHP %.2f", fee.City, fee.State, fee.Amount))
			if fee.FreeOver > 0 {
				sb.WriteString(fmt.Sprintf(" (free for orders PHP %.2f and up)", fee.FreeOver))
			}
			if fee.EstimatedDays != "" {
				sb.WriteString(", " + fee.EstimatedDays)
			}
			sb.WriteString("\n")
		}
	}

	var productCount int
	if err := h.DB.QueryRow(
		"SELECT COUNT(*) FROM products WHERE is_active = 1 AND stock > 0").Scan(&productCount); err == nil {
		sb.WriteString(fmt.Sprintf("Products in stock right now: %d.\n", productCount))
	}

	sb.WriteString("Today is " + time.Now().Format("January 2, 2006") + ".")
	return sb.String()
}
