package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dilshat/wa-sender/events"
	"github.com/dilshat/wa-sender/model"
	"github.com/dilshat/wa-sender/service"
	"github.com/dilshat/wa-sender/service/dto"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const MALFUNCTION = "System malfunction. Please, try later"

// StartRun godoc
// @Summary Start run
// @Description Sends a WhatsApp message to every selected row of the configured sheet
// @Accept json
// @Produce json
// @Param run body dto.Dispatch true "Run"
// @Success 202 {object} dto.Id
// @Failure 400 "error description"
// @Failure 409 "another run is in progress"
// @Router /runs [post]
func GetStartRunFunc(srv service.Service) echo.HandlerFunc {

	return func(c echo.Context) error {
		req := new(dto.Dispatch)
		if err := c.Bind(req); err != nil {
			return err
		}

		id, err := srv.Start(*req)
		if err != nil {
			switch err.(type) {
			case *service.InvalidPayloadErr:
				return c.String(http.StatusBadRequest, err.Error())
			case *service.BusyErr:
				return c.String(http.StatusConflict, err.Error())
			default:
				zap.L().Error("Error starting run", zap.Error(err))
				return c.String(http.StatusInternalServerError, MALFUNCTION)
			}
		}

		return c.JSON(http.StatusAccepted, id)
	}
}

// CheckRun godoc
// @Summary Check run
// @Description Returns run status and per row outcomes
// @Produce json
// @Param id path int true "Run id"
// @Success 200 {object} dto.RunStatus
// @Failure 404 "run not found"
// @Router /runs/{id} [get]
func GetCheckRunFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		id32, err := parseId(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id "+id)
		}

		status, err := srv.CheckStatusOfRun(id32)
		if err != nil {
			if err.Error() == "not found" {
				return c.String(http.StatusNotFound, "Run not found "+id)
			}
			zap.L().Error("Error checking run", zap.Error(err))
			return c.String(http.StatusInternalServerError, MALFUNCTION)
		}

		return c.JSON(http.StatusOK, status)
	}
}

// CheckDelivery godoc
// @Summary Check delivery
// @Description Returns the outcome of a run for one phone number
// @Produce json
// @Param id path int true "Run id"
// @Param phone path string true "Phone number"
// @Success 200 {object} dto.RunStatus
// @Failure 404 "run or phone not found"
// @Router /runs/{id}/deliveries/{phone} [get]
func GetCheckDeliveryFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		phone := c.Param("phone")

		id32, err := parseId(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id "+id)
		}

		status, err := srv.CheckStatusOfDelivery(id32, phone)
		if err != nil {
			if err.Error() == "not found" {
				return c.String(http.StatusNotFound, "Phone not found "+phone)
			}
			zap.L().Error("Error checking delivery", zap.Error(err))
			return c.String(http.StatusInternalServerError, MALFUNCTION)
		}

		return c.JSON(http.StatusOK, status)
	}
}

// RunEvents godoc
// @Summary Run events
// @Description Streams progress, log lines and completion of a run as server-sent events
// @Produce text/event-stream
// @Param id path int true "Run id"
// @Success 200 {object} events.Event
// @Failure 404 "run not found"
// @Router /runs/{id}/events [get]
func GetRunEventsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		id32, err := parseId(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id "+id)
		}

		// subscribe before looking at the status so a run finishing in between is not missed
		ch := srv.Subscribe(id32)
		defer func() {
			go srv.Unsubscribe(ch)
			for range ch {
			}
		}()

		status, err := srv.CheckStatusOfRun(id32)
		if err != nil {
			if err.Error() == "not found" {
				return c.String(http.StatusNotFound, "Run not found "+id)
			}
			zap.L().Error("Error checking run", zap.Error(err))
			return c.String(http.StatusInternalServerError, MALFUNCTION)
		}

		res := c.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set("Cache-Control", "no-cache")
		res.Header().Set("Connection", "keep-alive")
		res.WriteHeader(http.StatusOK)

		if status.Status != model.RUNNING {
			return writeEvent(res, doneEvent(status))
		}

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					// the done event may have been dropped for a slow reader
					return writeFinalStatus(srv, res, id32)
				}
				event, ok := msg.(events.Event)
				if !ok {
					continue
				}
				if err := writeEvent(res, event); err != nil {
					return err
				}
				if event.Kind == events.DONE {
					return nil
				}
			}
		}
	}
}

func doneEvent(status dto.RunStatus) events.Event {
	return events.Event{
		RunId:   status.Id,
		Kind:    events.DONE,
		Status:  status.Status,
		Text:    status.Error,
		Sent:    status.Sent,
		NotSent: status.NotSent,
	}
}

func writeFinalStatus(srv service.Service, res *echo.Response, id uint32) error {
	status, err := srv.CheckStatusOfRun(id)
	if err != nil {
		zap.L().Error("Error checking run", zap.Error(err))
		return nil
	}
	if status.Status == model.RUNNING {
		return nil
	}
	return writeEvent(res, doneEvent(status))
}

func writeEvent(res *echo.Response, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", event.Kind, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}

// GetSettings godoc
// @Summary Get settings
// @Description Returns the persisted dispatch settings
// @Produce json
// @Success 200 {object} dto.Settings
// @Router /settings [get]
func GetSettingsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, srv.Settings())
	}
}

// SaveSettings godoc
// @Summary Save settings
// @Description Validates and persists the dispatch settings
// @Accept json
// @Produce json
// @Param settings body dto.Settings true "Settings"
// @Success 200 {object} dto.Settings
// @Failure 400 "error description"
// @Router /settings [put]
func GetSaveSettingsFunc(srv service.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		settings := new(dto.Settings)
		if err := c.Bind(settings); err != nil {
			return err
		}

		err := srv.SaveSettings(*settings)
		if err != nil {
			switch err.(type) {
			case *service.InvalidPayloadErr:
				return c.String(http.StatusBadRequest, err.Error())
			default:
				zap.L().Error("Error saving settings", zap.Error(err))
				return c.String(http.StatusInternalServerError, MALFUNCTION)
			}
		}

		return c.JSON(http.StatusOK, srv.Settings())
	}
}

func parseId(id string) (uint32, error) {
	id64, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(id64), nil
}
