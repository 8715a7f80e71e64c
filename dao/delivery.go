package dao

import (
	"time"

	"github.com/asdine/storm/v3/q"
	"github.com/dilshat/wa-sender/model"
)

type DeliveryDao interface {
	//Create stores the outcome of one row of a run and returns its id
	Create(delivery model.Delivery) (uint32, error)
	//GetAllByRunId returns the deliveries of a run in row order
	GetAllByRunId(runId uint32) ([]model.Delivery, error)
	//GetOneByRunIdAndPhone returns the delivery of a run to the given phone
	GetOneByRunIdAndPhone(runId uint32, phone string) (model.Delivery, error)
	//RemoveOlderThanDays removes all deliveries older than {days}
	RemoveOlderThanDays(days int) error
}

func NewDeliveryDao(db Db) DeliveryDao {
	return &deliveryDao{db: db}
}

type deliveryDao struct {
	db Db
}

func (d deliveryDao) RemoveOlderThanDays(days int) error {
	err := d.db.Select(q.Lt("CreatedAt", cutoff(days))).Delete(&model.Delivery{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (d deliveryDao) Create(delivery model.Delivery) (uint32, error) {
	delivery.Id = 0
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now()
	}
	err := d.db.Save(&delivery)
	return delivery.Id, err
}

func (d deliveryDao) GetAllByRunId(runId uint32) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	err := d.db.Select(q.Eq("RunId", runId)).OrderBy("Row").Find(&deliveries)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	return deliveries, nil
}

func (d deliveryDao) GetOneByRunIdAndPhone(runId uint32, phone string) (model.Delivery, error) {
	var delivery model.Delivery
	err := d.db.Select(q.Eq("RunId", runId), q.Eq("Phone", phone)).First(&delivery)
	return delivery, err
}
