package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/dilshat/wa-sender/config"
	"github.com/dilshat/wa-sender/dao"
	"github.com/dilshat/wa-sender/dispatch"
	"github.com/dilshat/wa-sender/events"
	"github.com/dilshat/wa-sender/log"
	"github.com/dilshat/wa-sender/model"
	"github.com/dilshat/wa-sender/service/dto"
	"github.com/dilshat/wa-sender/sheets"
	"github.com/dilshat/wa-sender/template"
	"github.com/dilshat/wa-sender/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Send runs a dispatch and waits for it to complete.
	Send(ctx context.Context, req dto.Dispatch) (dto.RunStatus, error)
	// Start runs a dispatch in the background and returns its id.
	Start(req dto.Dispatch) (dto.Id, error)
	CheckStatusOfRun(id uint32) (dto.RunStatus, error)
	// CheckStatusOfDelivery returns the run with only the delivery to phone.
	CheckStatusOfDelivery(id uint32, phone string) (dto.RunStatus, error)
	Subscribe(id uint32) chan interface{}
	Unsubscribe(ch chan interface{})
	Settings() dto.Settings
	SaveSettings(settings dto.Settings) error
}

type SettingsStore interface {
	Current() config.Config
	Save(cfg config.Config) error
}

type service struct {
	ctx             context.Context
	source          sheets.Source
	dispatcher      *dispatch.Dispatcher
	settings        SettingsStore
	runDao          dao.RunDao
	deliveryDao     dao.DeliveryDao
	hub             events.Hub
	httpClient      *http.Client
	statusStoreDays int
	webhook         string
	busy            int32
}

// NewService wires the pipeline. ctx bounds background runs and the cleanup loop.
func NewService(ctx context.Context, source sheets.Source, dispatcher *dispatch.Dispatcher, settings SettingsStore,
	runDao dao.RunDao, deliveryDao dao.DeliveryDao, hub events.Hub, statusStoreDays int, webhook string) Service {
	service := &service{
		ctx:             ctx,
		source:          source,
		dispatcher:      dispatcher,
		settings:        settings,
		runDao:          runDao,
		deliveryDao:     deliveryDao,
		hub:             hub,
		statusStoreDays: statusStoreDays,
		webhook:         webhook,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
	}

	go service.CleanupDb()

	return service
}

func (s *service) CleanupDb() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		log.WarnIfErr("Error cleaning up runs", s.runDao.RemoveOlderThanDays(s.statusStoreDays))
		log.WarnIfErr("Error cleaning up deliveries", s.deliveryDao.RemoveOlderThanDays(s.statusStoreDays))
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

type job struct {
	mode     model.Mode
	template string
	cfg      config.Config
}

func (s *service) prepare(req dto.Dispatch) (job, error) {
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return job{}, NewInvalidPayloadError(err.Error())
	}

	tpl := req.Template
	if util.IsBlank(tpl) {
		tpl, err = template.Compose(mode, req.Blocks)
		if err != nil {
			return job{}, NewInvalidPayloadError(err.Error())
		}
	}
	if util.IsBlank(tpl) {
		return job{}, NewInvalidPayloadError("Message template is empty")
	}

	cfg := s.settings.Current()
	if err := cfg.Validate(); err != nil {
		return job{}, NewInvalidPayloadError(err.Error())
	}

	return job{mode: mode, template: tpl, cfg: cfg}, nil
}

func (s *service) acquire() error {
	if !atomic.CompareAndSwapInt32(&s.busy, 0, 1) {
		return &BusyErr{}
	}
	return nil
}

func (s *service) release() {
	atomic.StoreInt32(&s.busy, 0)
}

func (s *service) Send(ctx context.Context, req dto.Dispatch) (dto.RunStatus, error) {
	r, err := s.prepare(req)
	if err != nil {
		return dto.RunStatus{}, err
	}
	if err := s.acquire(); err != nil {
		return dto.RunStatus{}, err
	}
	defer s.release()

	id, err := s.runDao.Create(r.mode, r.template)
	if err != nil {
		return dto.RunStatus{}, err
	}

	runErr := s.execute(ctx, id, r)

	status, err := s.CheckStatusOfRun(id)
	if err != nil {
		return dto.RunStatus{}, err
	}
	return status, runErr
}

func (s *service) Start(req dto.Dispatch) (dto.Id, error) {
	r, err := s.prepare(req)
	if err != nil {
		return dto.Id{}, err
	}
	if err := s.acquire(); err != nil {
		return dto.Id{}, err
	}

	id, err := s.runDao.Create(r.mode, r.template)
	if err != nil {
		s.release()
		return dto.Id{}, err
	}

	go func() {
		defer s.release()
		_ = s.execute(s.ctx, id, r)
	}()

	return dto.Id{Id: id}, nil
}

func (s *service) execute(ctx context.Context, id uint32, r job) error {
	zap.L().Info("Run started", zap.Uint32("run", id), zap.String("mode", string(r.mode)))

	rows, err := s.source.Fetch(ctx, r.cfg.ServiceAccountFile, r.cfg.SpreadsheetId, r.cfg.SheetNumber)
	if err != nil {
		s.fail(id, err)
		return err
	}

	sink := &runSink{id: id, hub: s.hub, deliveryDao: s.deliveryDao}
	result, err := s.dispatcher.Dispatch(ctx, rows, r.template, r.cfg, r.mode, sink)
	if err != nil {
		// keep the tally of an interrupted run
		if result.Total > 0 {
			log.ErrIfErr("Error saving run result", s.runDao.Finish(id, result.Total, result.Sent, result.NotSent()))
		}
		s.fail(id, err)
		return err
	}

	err = s.runDao.Finish(id, result.Total, result.Sent, result.NotSent())
	if err != nil {
		zap.L().Error("Error saving run result", zap.Uint32("run", id), zap.Error(err))
	}

	s.hub.Publish(events.Event{RunId: id, Kind: events.DONE, Status: model.DONE, Sent: result.Sent, NotSent: result.NotSent()})
	s.hub.Finish(id)
	s.notify(id)
	return nil
}

func (s *service) fail(id uint32, cause error) {
	zap.L().Warn("Run failed", zap.Uint32("run", id), zap.Error(cause))

	err := s.runDao.Fail(id, cause.Error())
	if err != nil {
		zap.L().Error("Error saving run failure", zap.Uint32("run", id), zap.Error(err))
	}

	s.hub.Publish(events.Event{RunId: id, Kind: events.DONE, Status: model.FAILED, Text: cause.Error()})
	s.hub.Finish(id)
	s.notify(id)
}

func (s *service) notify(id uint32) {
	if util.IsBlank(s.webhook) {
		return
	}

	runStatus, err := s.CheckStatusOfRun(id)
	if err != nil {
		zap.L().Error("Error checking run status", zap.Error(err))
		return
	}

	runStatusBytes, err := json.Marshal(runStatus)
	if err != nil {
		zap.L().Error("Error checking run status", zap.Error(err))
		return
	}

	req, err := http.NewRequest("POST", s.webhook, bytes.NewBuffer(runStatusBytes))
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Id", uuid.NewString())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		zap.L().Error("Error calling web hook", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Warn("Webhook returned unexpected status", zap.String("status", resp.Status))
	}
}

func (s *service) CheckStatusOfRun(id uint32) (dto.RunStatus, error) {
	run, err := s.runDao.GetOneById(id)
	if err != nil {
		return dto.RunStatus{}, err
	}
	deliveries, err := s.deliveryDao.GetAllByRunId(run.Id)
	if err != nil {
		return dto.RunStatus{}, err
	}

	status := runStatus(run)
	for _, d := range deliveries {
		status.Deliveries = append(status.Deliveries, deliveryStatus(d))
	}

	return status, nil
}

func (s *service) CheckStatusOfDelivery(id uint32, phone string) (dto.RunStatus, error) {
	run, err := s.runDao.GetOneById(id)
	if err != nil {
		return dto.RunStatus{}, err
	}
	delivery, err := s.deliveryDao.GetOneByRunIdAndPhone(run.Id, phone)
	if err != nil {
		return dto.RunStatus{}, err
	}

	status := runStatus(run)
	status.Deliveries = append(status.Deliveries, deliveryStatus(delivery))

	return status, nil
}

func runStatus(run model.Run) dto.RunStatus {
	status := dto.RunStatus{
		Id:         run.Id,
		Mode:       string(run.Mode),
		Template:   run.Template,
		Status:     run.Status,
		Error:      run.Error,
		Total:      run.Total,
		Sent:       run.Sent,
		NotSent:    run.NotSent,
		CreatedAt:  run.CreatedAt,
		Deliveries: []dto.DeliveryStatus{},
	}
	if !run.FinishedAt.IsZero() {
		finished := run.FinishedAt
		status.FinishedAt = &finished
	}
	return status
}

func deliveryStatus(d model.Delivery) dto.DeliveryStatus {
	return dto.DeliveryStatus{
		Row:        d.Row,
		Phone:      d.Phone,
		Status:     d.Status,
		Reason:     d.Reason,
		ProviderId: d.ProviderId,
	}
}

func (s *service) Subscribe(id uint32) chan interface{} {
	return s.hub.Subscribe(id)
}

func (s *service) Unsubscribe(ch chan interface{}) {
	s.hub.Unsubscribe(ch)
}

func (s *service) Settings() dto.Settings {
	cfg := s.settings.Current()
	return dto.Settings{
		UltramsgToken:      cfg.UltramsgToken,
		UltramsgInstanceId: cfg.UltramsgInstanceId,
		SpreadsheetId:      cfg.SpreadsheetId,
		ServiceAccountFile: cfg.ServiceAccountFile,
		MessageDelay:       strconv.Itoa(cfg.MessageDelay),
		SheetNumber:        strconv.Itoa(cfg.SheetNumber),
	}
}

func (s *service) SaveSettings(settings dto.Settings) error {
	cfg, err := config.FromMap(map[string]string{
		config.ULTRAMSG_TOKEN:       settings.UltramsgToken,
		config.ULTRAMSG_INSTANCE_ID: settings.UltramsgInstanceId,
		config.SPREADSHEET_ID:       settings.SpreadsheetId,
		config.SERVICE_ACCOUNT_FILE: settings.ServiceAccountFile,
		config.MESSAGE_DELAY:        settings.MessageDelay,
		config.SHEET_NUMBER:         settings.SheetNumber,
	})
	if err != nil {
		return NewInvalidPayloadError(err.Error())
	}
	return s.settings.Save(cfg)
}
