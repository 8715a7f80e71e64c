package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dilshat/wa-sender/events"
	"github.com/dilshat/wa-sender/model"
	"github.com/dilshat/wa-sender/service"
	"github.com/dilshat/wa-sender/service/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetStartRunFunc(t *testing.T) {
	f := GetStartRunFunc(mockService{id: 7})

	c, rec := newContext(http.MethodPost, "/runs", `{"mode":"text","template":"{{Text}}"}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.JSONEq(t, `{"id":7}`, rec.Body.String())

	c, _ = newContext(http.MethodPost, "/runs", `{"mode":`)
	require.Error(t, f(c))

	f = GetStartRunFunc(mockService{startErr: service.NewInvalidPayloadError("blablabla")})
	c, rec = newContext(http.MethodPost, "/runs", `{}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "blablabla", rec.Body.String())

	f = GetStartRunFunc(mockService{startErr: &service.BusyErr{}})
	c, rec = newContext(http.MethodPost, "/runs", `{}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	f = GetStartRunFunc(mockService{startErr: errors.New("blablabla")})
	c, rec = newContext(http.MethodPost, "/runs", `{}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, MALFUNCTION, rec.Body.String())
}

func TestGetCheckRunFunc(t *testing.T) {
	f := GetCheckRunFunc(mockService{status: dto.RunStatus{Id: 123, Status: model.DONE, Deliveries: []dto.DeliveryStatus{}}})

	c, rec := newContext(http.MethodGet, "/runs/123", "")
	c.SetParamNames("id")
	c.SetParamValues("123")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"DONE"`)

	c, _ = newContext(http.MethodGet, "/runs/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.Error(t, f(c))

	f = GetCheckRunFunc(mockService{checkStatusErr: errors.New("not found")})
	c, rec = newContext(http.MethodGet, "/runs/123", "")
	c.SetParamNames("id")
	c.SetParamValues("123")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	f = GetCheckRunFunc(mockService{checkStatusErr: errors.New("blablabla")})
	c, rec = newContext(http.MethodGet, "/runs/123", "")
	c.SetParamNames("id")
	c.SetParamValues("123")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetRunEventsFunc(t *testing.T) {
	hub := events.NewHub(8)
	defer hub.Shutdown()
	subscribed := make(chan struct{})
	f := GetRunEventsFunc(mockService{hub: hub, subscribed: subscribed, status: dto.RunStatus{Id: 5, Status: model.RUNNING}})

	c, rec := newContext(http.MethodGet, "/runs/5/events", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	done := make(chan error)
	go func() {
		done <- f(c)
	}()

	go func() {
		<-subscribed
		for i := 0; i < 5; i++ {
			hub.Publish(events.Event{RunId: 5, Kind: events.PROGRESS, Current: 1, Total: 2})
		}
		hub.Publish(events.Event{RunId: 5, Kind: events.DONE, Status: model.DONE, Sent: 2})
		hub.Finish(5)
	}()

	require.NoError(t, <-done)
	require.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	require.Contains(t, rec.Body.String(), "event: done\n")
	require.Contains(t, rec.Body.String(), `"sent":2`)
}

func TestGetRunEventsFuncDroppedDone(t *testing.T) {
	hub := events.NewHub(8)
	defer hub.Shutdown()
	subscribed := make(chan struct{})
	statuses := make(chan dto.RunStatus, 2)
	statuses <- dto.RunStatus{Id: 5, Status: model.RUNNING}
	statuses <- dto.RunStatus{Id: 5, Status: model.DONE, Sent: 3, NotSent: 1}
	f := GetRunEventsFunc(mockService{hub: hub, subscribed: subscribed, statuses: statuses})

	c, rec := newContext(http.MethodGet, "/runs/5/events", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	go func() {
		<-subscribed
		hub.Publish(events.Event{RunId: 5, Kind: events.PROGRESS, Current: 1, Total: 4})
		hub.Finish(5)
	}()

	require.NoError(t, f(c))
	require.Contains(t, rec.Body.String(), "event: progress\n")
	require.Contains(t, rec.Body.String(), "event: done\n")
	require.Contains(t, rec.Body.String(), `"sent":3`)
	require.Contains(t, rec.Body.String(), `"not_sent":1`)
}

func TestGetCheckDeliveryFunc(t *testing.T) {
	f := GetCheckDeliveryFunc(mockService{status: dto.RunStatus{Id: 123, Status: model.DONE, Deliveries: []dto.DeliveryStatus{
		{Row: 2, Phone: "996777123456", Status: model.SENT, ProviderId: "77"},
	}}})

	c, rec := newContext(http.MethodGet, "/runs/123/deliveries/996777123456", "")
	c.SetParamNames("id", "phone")
	c.SetParamValues("123", "996777123456")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"provider_id":"77"`)

	c, _ = newContext(http.MethodGet, "/runs/x/deliveries/996777123456", "")
	c.SetParamNames("id", "phone")
	c.SetParamValues("x", "996777123456")
	require.Error(t, f(c))

	f = GetCheckDeliveryFunc(mockService{checkStatusErr: errors.New("not found")})
	c, rec = newContext(http.MethodGet, "/runs/123/deliveries/996777123456", "")
	c.SetParamNames("id", "phone")
	c.SetParamValues("123", "996777123456")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusNotFound, rec.Code)

	f = GetCheckDeliveryFunc(mockService{checkStatusErr: errors.New("blablabla")})
	c, rec = newContext(http.MethodGet, "/runs/123/deliveries/996777123456", "")
	c.SetParamNames("id", "phone")
	c.SetParamValues("123", "996777123456")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetRunEventsFuncFinishedRun(t *testing.T) {
	hub := events.NewHub(8)
	defer hub.Shutdown()
	f := GetRunEventsFunc(mockService{hub: hub, status: dto.RunStatus{Id: 5, Status: model.FAILED, Error: "No selected messages"}})

	c, rec := newContext(http.MethodGet, "/runs/5/events", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, f(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "event: done\n")
	require.Contains(t, rec.Body.String(), "No selected messages")

	f = GetRunEventsFunc(mockService{hub: hub, checkStatusErr: errors.New("not found")})
	c, rec = newContext(http.MethodGet, "/runs/6/events", "")
	c.SetParamNames("id")
	c.SetParamValues("6")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRunEventsFuncClientGone(t *testing.T) {
	hub := events.NewHub(8)
	defer hub.Shutdown()
	f := GetRunEventsFunc(mockService{hub: hub, status: dto.RunStatus{Id: 5, Status: model.RUNNING}})

	c, _ := newContext(http.MethodGet, "/runs/5/events", "")
	ctx, cancel := context.WithCancel(c.Request().Context())
	c.SetRequest(c.Request().WithContext(ctx))
	c.SetParamNames("id")
	c.SetParamValues("5")
	cancel()

	require.NoError(t, f(c))
}

func TestGetSettingsFunc(t *testing.T) {
	f := GetSettingsFunc(mockService{settings: dto.Settings{SheetNumber: "2"}})

	c, rec := newContext(http.MethodGet, "/settings", "")
	require.NoError(t, f(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sheet_number":"2"`)
}

func TestGetSaveSettingsFunc(t *testing.T) {
	f := GetSaveSettingsFunc(mockService{})
	c, rec := newContext(http.MethodPut, "/settings", `{"message_delay":"3"}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusOK, rec.Code)

	f = GetSaveSettingsFunc(mockService{saveErr: service.NewInvalidPayloadError("MESSAGE_DELAY must contain digits only")})
	c, rec = newContext(http.MethodPut, "/settings", `{"message_delay":"x"}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f = GetSaveSettingsFunc(mockService{saveErr: errors.New("disk full")})
	c, rec = newContext(http.MethodPut, "/settings", `{}`)
	require.NoError(t, f(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

//-----------mocks--------
type mockService struct {
	id             uint32
	status         dto.RunStatus
	settings       dto.Settings
	hub            events.Hub
	subscribed     chan struct{}
	statuses       chan dto.RunStatus
	startErr       error
	checkStatusErr error
	saveErr        error
}

func (m mockService) Send(ctx context.Context, req dto.Dispatch) (dto.RunStatus, error) {
	return m.status, m.startErr
}

func (m mockService) Start(req dto.Dispatch) (dto.Id, error) {
	return dto.Id{Id: m.id}, m.startErr
}

func (m mockService) CheckStatusOfRun(id uint32) (dto.RunStatus, error) {
	if m.statuses != nil {
		return <-m.statuses, m.checkStatusErr
	}
	return m.status, m.checkStatusErr
}

func (m mockService) CheckStatusOfDelivery(id uint32, phone string) (dto.RunStatus, error) {
	return m.status, m.checkStatusErr
}

func (m mockService) Subscribe(id uint32) chan interface{} {
	if m.hub == nil {
		ch := make(chan interface{})
		close(ch)
		return ch
	}
	ch := m.hub.Subscribe(id)
	if m.subscribed != nil {
		close(m.subscribed)
	}
	return ch
}

func (m mockService) Unsubscribe(ch chan interface{}) {
	if m.hub != nil {
		m.hub.Unsubscribe(ch)
	}
}

func (m mockService) Settings() dto.Settings {
	return m.settings
}

func (m mockService) SaveSettings(settings dto.Settings) error {
	return m.saveErr
}
