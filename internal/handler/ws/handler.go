package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/crisisflow/internal/hub"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// pongMessage - ответ на любое сообщение клиента
type pongMessage struct {
	Type    models.EventType `json:"type"`
	Message string           `json:"message"`
}

// Handler переводит websocket-соединения в наблюдателей хаба
type Handler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

func NewHandler(h *hub.Hub, logger *logrus.Logger) *Handler {
	return &Handler{
		hub: h,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // источники ограничивает CORS на уровне HTTP API
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// RegisterRoutes регистрирует маршрут подписки
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/ws/reports", h.ServeReports)
}

// ServeReports godoc
// @Summary Subscribe to live report and incident events
// @Description Upgrades to a websocket. The first message is initial_data, then new_report, new_incident and incident_updated events follow.
// @Tags websocket
// @Router /ws/reports [get]
func (h *Handler) ServeReports(c *gin.Context) {
	log := h.logger.WithField("method", "ServeReports")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade websocket")
		return
	}
	defer conn.Close()

	observer, err := h.hub.Connect(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to register observer")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot unavailable"),
			time.Now().Add(writeWait))
		return
	}
	defer h.hub.Disconnect(observer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pongs := make(chan struct{}, 8)
	go h.readPump(conn, pongs, cancel, log.WithField("observer_id", observer.ID()))
	h.writePump(ctx, conn, observer, pongs, log.WithField("observer_id", observer.ID()))
}

// readPump читает сообщения клиента. Каждое сообщение получает pong, содержимое не разбирается.
func (h *Handler) readPump(conn *websocket.Conn, pongs chan<- struct{}, cancel context.CancelFunc, log *logrus.Entry) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("Websocket read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case pongs <- struct{}{}:
		default:
		}
	}
}

// writePump - единственный писатель в соединение
func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, observer *hub.Observer, pongs <-chan struct{}, log *logrus.Entry) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	pong, _ := json.Marshal(pongMessage{Type: models.EventPong, Message: "Connection alive"})

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-observer.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб отключил наблюдателя
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.WithError(err).Warn("Failed to write event to websocket")
				return
			}

		case <-pongs:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, pong); err != nil {
				log.WithError(err).Warn("Failed to write pong to websocket")
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
