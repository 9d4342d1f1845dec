package controller

import (
	"encoding/json"
	"errors"
	"io"
	"tamamali_backend/internal/service"
	"tamamali_backend/internal/util"
	"tamamali_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// swagger:model ChatRequest
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"sessionId"`
}

// Chat godoc
// @Summary Quiz generation chat
// @Description Runs one turn of the AI quiz-generation conversation; omit sessionId to start a new session
// @Tags chat
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "Message"
// @Success 200 {object} util.Response{data=service.ChatReply} "Success"
// @Failure 400 {object} util.Response "Message is required"
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.Chat(ctx.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrMissingFields) {
			util.BadRequest(ctx, "Message is required")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, reply)
}

// ChatStream godoc
// @Summary Quiz generation chat (streaming)
// @Description Streams the assistant reply as plain text; a trailing __QUIZ_DATA__ marker carries the extracted quiz JSON
// @Tags chat
// @Accept  json
// @Produce  plain
// @Security ApiKeyAuth
// @Param   body body ChatRequest true "Message"
// @Success 200 {string} string "Streamed reply"
// @Failure 400 {object} util.Response "Message is required"
// @Router /api/chat/stream [post]
func (c *ChatController) ChatStream(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sessionID, events, err := c.ChatService.ChatStream(ctx.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrMissingFields) {
			util.BadRequest(ctx, "Message is required")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Type", "text/plain; charset=utf-8")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Session-Id", sessionID)

	ctx.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		switch {
		case event.Err != nil:
			logger.Log.Error("chat stream failed", zap.String("sessionId", sessionID), zap.Error(event.Err))
			w.Write([]byte("Sorry, something went wrong while generating the response."))
			return false
		case event.Draft != nil:
			data, err := json.Marshal(event.Draft)
			if err == nil {
				w.Write([]byte("__QUIZ_DATA__"))
				w.Write(data)
			}
		default:
			w.Write([]byte(event.Content))
		}
		return true
	})
}
