package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/inventory-orchestrator/console/internal/alerts"
	"github.com/inventory-orchestrator/console/internal/feed"
	"github.com/inventory-orchestrator/console/internal/models"
	"github.com/inventory-orchestrator/console/internal/panels"
)

// stubFeed mimics the feed client's fire-and-forget contract: while
// disconnected, Send records nothing and returns nil.
type stubFeed struct {
	state models.ConnectionState
	sent  []feed.Envelope
}

func (s *stubFeed) State() models.ConnectionState { return s.state }

func (s *stubFeed) Send(kind models.Kind, payload any) error {
	if s.state != models.StateConnected {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.sent = append(s.sent, feed.Envelope{Type: kind, Data: data})
	return nil
}

type fixture struct {
	handler *Handler
	feed    *stubFeed
	ring    *alerts.Ring
	log     *feed.Log
}

func newFixture(state models.ConnectionState) *fixture {
	f := &stubFeed{state: state}
	ring := alerts.NewRing(10, nil)
	log := feed.NewLog(100)

	h := NewHandler(Dependencies{
		Feed:           f,
		Events:         log,
		Ring:           ring,
		Inventory:      panels.NewInventory(ring),
		Agents:         panels.NewAgents(),
		Dashboard:      panels.NewDashboard(ring),
		Sustainability: panels.NewSustainability(),
		Version:        "test",
		DefaultLimit:   50,
	})
	return &fixture{handler: h, feed: f, ring: ring, log: log}
}

func doRequest(t *testing.T, method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleHealth(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, rec := doRequest(t, http.MethodGet, "/api/health", "")
	if assert.NoError(t, fx.handler.HandleHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.Contains(t, rec.Body.String(), `"connection":"connected"`)
	}
}

func TestHandleConnection(t *testing.T) {
	fx := newFixture(models.StateDisconnected)
	fx.log.Append(models.KindSystemMetrics, json.RawMessage(`{}`))

	c, rec := doRequest(t, http.MethodGet, "/api/connection", "")
	if assert.NoError(t, fx.handler.HandleConnection(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"state":"disconnected"`)
		assert.Contains(t, rec.Body.String(), `"eventCount":1`)
	}
}

func TestHandleRecentEvents(t *testing.T) {
	fx := newFixture(models.StateConnected)
	for i := 0; i < 5; i++ {
		fx.log.Append(models.KindAgentMessage, json.RawMessage(`{"from_agent":"demand"}`))
	}

	c, rec := doRequest(t, http.MethodGet, "/api/events/recent?limit=3", "")
	require.NoError(t, fx.handler.HandleRecentEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Events []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 3)
	assert.Equal(t, uint64(3), body.Events[0].Seq)
	assert.Equal(t, uint64(5), body.Events[2].Seq)
}

func TestHandleRecentEventsMsgpack(t *testing.T) {
	fx := newFixture(models.StateConnected)
	fx.log.Append(models.KindInventoryUpdate, json.RawMessage(`{"sku_id":"SKU001"}`))

	c, rec := doRequest(t, http.MethodGet, "/api/events/recent.msgpack", "")
	require.NoError(t, fx.handler.HandleRecentEventsMsgpack(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-msgpack", rec.Header().Get(echo.HeaderContentType))

	var events []models.Event
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, models.KindInventoryUpdate, events[0].Kind)
}

func TestHandleAlertsAndDismiss(t *testing.T) {
	fx := newFixture(models.StateConnected)
	alert := fx.ring.Push(models.SeverityWarning, "low stock")

	c, rec := doRequest(t, http.MethodGet, "/api/alerts", "")
	require.NoError(t, fx.handler.HandleAlerts(c))
	assert.Contains(t, rec.Body.String(), "low stock")

	c, rec = doRequest(t, http.MethodDelete, "/api/alerts/"+alert.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(alert.ID)
	require.NoError(t, fx.handler.HandleDismissAlert(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, fx.ring.List())

	// Dismissing an unknown id is still a 204 no-op.
	c, rec = doRequest(t, http.MethodDelete, "/api/alerts/unknown", "")
	c.SetParamNames("id")
	c.SetParamValues("unknown")
	require.NoError(t, fx.handler.HandleDismissAlert(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCommandDemandSpike(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, rec := doRequest(t, http.MethodPost, "/api/commands/demand-spike",
		`{"sku_id":"SKU001","multiplier":2.5,"duration_hours":12}`)
	require.NoError(t, fx.handler.HandleDemandSpike(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Len(t, fx.feed.sent, 1)
	assert.Equal(t, models.CmdSimulateDemandSpike, fx.feed.sent[0].Type)
	assert.JSONEq(t, `{"sku_id":"SKU001","multiplier":2.5,"duration_hours":12}`, string(fx.feed.sent[0].Data))

	// Intent alert pushed.
	list := fx.ring.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.SeverityInfo, list[0].Severity)
	assert.Contains(t, list[0].Message, "SKU001")
}

func TestCommandDefaultsApplied(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, rec := doRequest(t, http.MethodPost, "/api/commands/demand-spike", `{"sku_id":"SKU002"}`)
	require.NoError(t, fx.handler.HandleDemandSpike(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Len(t, fx.feed.sent, 1)
	assert.JSONEq(t, `{"sku_id":"SKU002","multiplier":2,"duration_hours":24}`, string(fx.feed.sent[0].Data))
}

func TestCommandValidation(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, _ := doRequest(t, http.MethodPost, "/api/commands/demand-spike", `{"multiplier":2}`)
	err := fx.handler.HandleDemandSpike(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	c, _ = doRequest(t, http.MethodPost, "/api/commands/reorder", `{"sku_id":"SKU001","quantity":0}`)
	err = fx.handler.HandleCreateReorder(c)
	require.Error(t, err)

	assert.Empty(t, fx.feed.sent)
	assert.Empty(t, fx.ring.List())
}

func TestCommandWhileDisconnectedStillAccepted(t *testing.T) {
	fx := newFixture(models.StateDisconnected)

	c, rec := doRequest(t, http.MethodPost, "/api/commands/optimize", "")
	require.NoError(t, fx.handler.HandleTriggerOptimization(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connection":"disconnected"`)

	// Command dropped silently; intent alert still raised.
	assert.Empty(t, fx.feed.sent)
	require.Len(t, fx.ring.List(), 1)
}

func TestCommandSupplierDelay(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, rec := doRequest(t, http.MethodPost, "/api/commands/supplier-delay", `{"supplier_id":"SUP003"}`)
	require.NoError(t, fx.handler.HandleSupplierDelay(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Len(t, fx.feed.sent, 1)
	assert.Equal(t, models.CmdSimulateDelay, fx.feed.sent[0].Type)
	assert.JSONEq(t, `{"supplier_id":"SUP003","delay_days":3}`, string(fx.feed.sent[0].Data))
}

func TestPanelEndpoints(t *testing.T) {
	fx := newFixture(models.StateConnected)

	c, rec := doRequest(t, http.MethodGet, "/api/inventory", "")
	require.NoError(t, fx.handler.HandleInventory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"skus":[]`)

	c, rec = doRequest(t, http.MethodGet, "/api/agents", "")
	require.NoError(t, fx.handler.HandleAgents(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"key":"demand"`)
	assert.Contains(t, rec.Body.String(), `"key":"negotiation"`)

	c, rec = doRequest(t, http.MethodGet, "/api/metrics", "")
	require.NoError(t, fx.handler.HandleMetrics(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = doRequest(t, http.MethodGet, "/api/sustainability", "")
	require.NoError(t, fx.handler.HandleSustainability(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
