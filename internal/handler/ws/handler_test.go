package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/crisisflow/internal/hub"
	"github.com/shenikar/crisisflow/internal/models"
	"github.com/shenikar/crisisflow/internal/observability"
	"github.com/shenikar/crisisflow/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotFunc func(ctx context.Context) (*models.Snapshot, error)

func (f snapshotFunc) Snapshot(ctx context.Context) (*models.Snapshot, error) { return f(ctx) }

type envelope struct {
	Type      models.EventType  `json:"type"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Reports   []models.Report   `json:"reports"`
	Incidents []models.Incident `json:"incidents"`
}

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func newTestServer(t *testing.T) (*httptest.Server, *hub.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := newSilentLogger()

	lat, lon := 40.0, -74.0
	snapshots := snapshotFunc(func(context.Context) (*models.Snapshot, error) {
		return &models.Snapshot{
			Type:      models.EventInitialData,
			Reports:   []*models.Report{{ID: 1, RawText: "earlier report"}},
			Incidents: []*models.Incident{{ID: 1, Latitude: &lat, Longitude: &lon, WitnessCount: 1, IsActive: true}},
		}, nil
	})
	h := hub.New(snapshots, 16, observability.NewMetricsForTesting(), logger)

	router := gin.New()
	NewHandler(h, logger).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return srv, h
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/reports"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg envelope
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestServeReports_InitialDataThenEventsInOrder(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)

	initial := readEnvelope(t, conn)
	assert.Equal(t, models.EventInitialData, initial.Type)
	require.Len(t, initial.Reports, 1)
	require.Len(t, initial.Incidents, 1)

	// Порядок событий одного приема: сначала инцидент, затем сообщение
	incidentID := int64(2)
	publisher := service.NewFanoutPublisher(newSilentLogger(), observability.NewMetricsForTesting(),
		service.EventSink{Name: "hub", Publisher: h})
	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, models.Event{Type: models.EventNewIncident, Data: &models.Incident{ID: incidentID, WitnessCount: 1, IsActive: true}}))
	require.NoError(t, publisher.Publish(ctx, models.Event{Type: models.EventNewReport, Data: &models.Report{ID: 2, IncidentID: &incidentID}}))

	first := readEnvelope(t, conn)
	second := readEnvelope(t, conn)
	assert.Equal(t, models.EventNewIncident, first.Type)
	assert.Equal(t, models.EventNewReport, second.Type)

	var report models.Report
	require.NoError(t, json.Unmarshal(second.Data, &report))
	assert.Equal(t, incidentID, *report.IncidentID)
}

func TestServeReports_ClientMessageGetsPong(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))

	pong := readEnvelope(t, conn)
	assert.Equal(t, models.EventPong, pong.Type)
	assert.Equal(t, "Connection alive", pong.Message)
}

func TestServeReports_DisconnectRemovesObserver(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)
	require.Equal(t, 1, h.Count())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))

	assert.Eventually(t, func() bool { return h.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestServeReports_HubCloseEndsConnection(t *testing.T) {
	srv, h := newTestServer(t)
	conn := dial(t, srv)
	readEnvelope(t, conn)

	h.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
