package service

import (
	"github.com/dilshat/wa-sender/dao"
	"github.com/dilshat/wa-sender/dispatch"
	"github.com/dilshat/wa-sender/events"
	"github.com/dilshat/wa-sender/model"
	"go.uber.org/zap"
)

// runSink persists and publishes the progress of one run.
type runSink struct {
	id          uint32
	hub         events.Hub
	deliveryDao dao.DeliveryDao
}

func (s *runSink) Progress(current, total int) {
	s.hub.Publish(events.Event{RunId: s.id, Kind: events.PROGRESS, Current: current, Total: total})
}

func (s *runSink) Log(o dispatch.Outcome) {
	_, err := s.deliveryDao.Create(model.Delivery{
		RunId:      s.id,
		Row:        o.Row,
		Phone:      o.Phone,
		Status:     o.Status,
		Reason:     o.Reason,
		ProviderId: o.ProviderId,
	})
	if err != nil {
		zap.L().Error("Error saving delivery", zap.Uint32("run", s.id), zap.Int("row", o.Row), zap.Error(err))
	}

	fields := []zap.Field{zap.Uint32("run", s.id), zap.Int("row", o.Row), zap.String("status", o.Status)}
	if o.Reason != "" {
		fields = append(fields, zap.String("reason", o.Reason))
	}
	if o.Status == model.SENT {
		zap.L().Info(o.Line, fields...)
	} else {
		zap.L().Warn(o.Line, fields...)
	}

	s.hub.Publish(events.Event{RunId: s.id, Kind: events.LOG, Text: o.Line, Status: o.Status})
}

func (s *runSink) Done(sent, notSent int) {
	zap.L().Info("Sending completed", zap.Uint32("run", s.id), zap.Int("sent", sent), zap.Int("not_sent", notSent))
}
