package dispatch

import (
	"context"
	"fmt"

	"github.com/dilshat/wa-sender/config"
	"github.com/dilshat/wa-sender/model"
	"github.com/dilshat/wa-sender/template"
	"github.com/dilshat/wa-sender/whatsapp"
	"go.uber.org/zap"
)

type NoSelectionErr struct {
	message string
}

func (e *NoSelectionErr) Error() string {
	return e.message
}

func NewNoSelectionError() *NoSelectionErr {
	return &NoSelectionErr{message: "No selected messages"}
}

// Outcome is what happened to one selected row.
type Outcome struct {
	Row        int
	Phone      string
	Status     string
	Reason     string
	ProviderId string
	// Line is the human readable log line.
	Line string
}

// Result of one run. Total counts selected rows; every one of them ends up
// sent, failed or skipped.
type Result struct {
	Total    int
	Sent     int
	Failed   int
	Skipped  int
	Outcomes []Outcome
}

func (r Result) NotSent() int {
	return r.Total - r.Sent
}

// Sink receives progress while a run goes on.
type Sink interface {
	// Progress is called after every send attempt. Skipped rows do not advance current.
	Progress(current, total int)
	Log(o Outcome)
	Done(sent, notSent int)
}

// ClientFactory builds a messaging client for the run's settings.
type ClientFactory func(cfg config.Config) whatsapp.Client

type Dispatcher struct {
	newClient ClientFactory
}

func NewDispatcher(newClient ClientFactory) *Dispatcher {
	return &Dispatcher{newClient: newClient}
}

// Dispatch sends one message per selected row, in sheet order. Failed sends are
// recorded and never stop the run; only a cancelled ctx does, in which case the
// partial result is returned with ctx.Err().
func (d *Dispatcher) Dispatch(ctx context.Context, rows []model.Row, tpl string, cfg config.Config, mode model.Mode, sink Sink) (Result, error) {
	selected := Selected(rows)
	if len(selected) == 0 {
		return Result{}, NewNoSelectionError()
	}

	client := d.newClient(cfg)

	if cfg.MessageDelay > 1 {
		_, err := client.SetSendDelay(ctx, cfg.MessageDelay)
		if err != nil {
			zap.L().Warn("Error setting send delay", zap.Int("delay", cfg.MessageDelay), zap.Error(err))
		}
	}

	parsed := template.Parse(tpl)
	result := Result{Total: len(selected)}
	current := 0

	for _, row := range selected {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		content := parsed.Render(row, mode)

		if reason, ok := validate(row, content, mode); !ok {
			result.Skipped++
			d.record(&result, sink, Outcome{
				Row:    row.Index,
				Phone:  row.Phone,
				Status: model.SKIPPED,
				Reason: reason,
				Line:   skipLine(row.Phone, reason),
			})
			continue
		}

		resp, err := send(ctx, client, row, content, mode)

		current++
		sink.Progress(current, result.Total)

		o := Outcome{Row: row.Index, Phone: row.Phone, ProviderId: resp.Id}
		if err == nil && resp.Ok() {
			result.Sent++
			o.Status = model.SENT
			o.Line = "Message sent to: " + row.Phone
		} else {
			result.Failed++
			o.Status = model.NOT_SENT
			o.Reason = failureReason(resp, err)
			o.Line = "Message was not sent to: " + row.Phone
		}
		d.record(&result, sink, o)
	}

	sink.Done(result.Sent, result.NotSent())
	return result, nil
}

func (d *Dispatcher) record(result *Result, sink Sink, o Outcome) {
	result.Outcomes = append(result.Outcomes, o)
	sink.Log(o)
}

// Selected keeps the rows whose Select cell is exactly "TRUE".
func Selected(rows []model.Row) []model.Row {
	var selected []model.Row
	for _, row := range rows {
		if row.IsSelected() {
			selected = append(selected, row)
		}
	}
	return selected
}

const (
	reasonNoNumber = "number is not specified"
	reasonNoText   = "message text is missing"
	reasonNoPhoto  = "photo url is missing"
	reasonNoVideo  = "video url is missing"
)

func validate(row model.Row, content string, mode model.Mode) (string, bool) {
	if row.Phone == "" {
		return reasonNoNumber, false
	}
	switch mode {
	case model.PHOTO:
		if row.PhotoUrl == "" {
			return reasonNoPhoto, false
		}
	case model.VIDEO:
		if row.VideoUrl == "" {
			return reasonNoVideo, false
		}
	default:
		if content == "" {
			return reasonNoText, false
		}
	}
	return "", true
}

func skipLine(phone, reason string) string {
	if reason == reasonNoNumber {
		return "Message was not sent, because " + reason
	}
	return fmt.Sprintf("Message was not sent to: %s, because %s", phone, reason)
}

func send(ctx context.Context, client whatsapp.Client, row model.Row, content string, mode model.Mode) (whatsapp.Response, error) {
	switch mode {
	case model.PHOTO:
		return client.SendImage(ctx, row.Phone, content, row.PhotoUrl)
	case model.VIDEO:
		return client.SendVideo(ctx, row.Phone, content, row.VideoUrl)
	default:
		return client.SendChat(ctx, row.Phone, content)
	}
}

func failureReason(resp whatsapp.Response, err error) string {
	switch {
	case err != nil:
		return err.Error()
	case resp.Error != "":
		return resp.Error
	case resp.Message != "":
		return resp.Message
	}
	return "not accepted by the messaging api"
}
