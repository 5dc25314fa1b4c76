package apitest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edupilot/edupilot/internal/client/models"
)

type chatAPI struct {
	s *Server
}

func registerChatAPI(g *echo.Group, s *Server) {
	a := chatAPI{s: s}

	g.GET("/session", a.session)
	g.POST("/message", a.message)
	g.DELETE("/clear", a.clear)
}

// ChatReply is the canned assistant answer to msg.
func ChatReply(msg string) string {
	return "EduBot can help with that: " + msg
}

func (a chatAPI) session(c echo.Context) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return c.JSON(http.StatusOK, a.s.chatLocked(userID(c)))
}

func (a chatAPI) message(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	chat := a.s.chatLocked(userID(c))
	chat.Messages = append(chat.Messages, models.ChatMessage{
		ID:        a.s.idLocked(),
		Role:      models.ChatRoleUser,
		Content:   req.Message,
		CreatedAt: a.s.nowLocked(),
	})
	reply := models.ChatMessage{
		ID:        a.s.idLocked(),
		Role:      models.ChatRoleAssistant,
		Content:   ChatReply(req.Message),
		CreatedAt: a.s.nowLocked(),
	}
	chat.Messages = append(chat.Messages, reply)
	updated := reply.CreatedAt
	chat.UpdatedAt = &updated
	return c.JSON(http.StatusOK, reply)
}

func (a chatAPI) clear(c echo.Context) error {
	a.s.mu.Lock()
	delete(a.s.chats, userID(c))
	a.s.mu.Unlock()
	return c.JSON(http.StatusOK, echo.Map{"message": "Chat history cleared"})
}

// chatLocked returns the user's session, creating it on first use.
func (s *Server) chatLocked(uid int64) *models.ChatSession {
	chat := s.chats[uid]
	if chat == nil {
		chat = &models.ChatSession{ID: s.idLocked(), CreatedAt: s.nowLocked(), Messages: []models.ChatMessage{}}
		s.chats[uid] = chat
	}
	return chat
}

// ChatHistory returns the server-side EduBot messages of the user.
func (s *Server) ChatHistory(user models.UserProfile) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	chat := s.chats[user.ID]
	if chat == nil {
		return nil
	}
	return append([]models.ChatMessage(nil), chat.Messages...)
}
