package dao

import (
	"time"

	"github.com/asdine/storm/v3/q"
	"github.com/dilshat/wa-sender/model"
)

type RunDao interface {
	//Create creates a running run record and returns its id
	Create(mode model.Mode, template string) (uint32, error)
	//Finish stores the final tally of a run
	Finish(id uint32, total, sent, notSent int) error
	//Fail marks a run as failed with the given reason
	Fail(id uint32, reason string) error
	//GetOneById returns run by id
	GetOneById(id uint32) (model.Run, error)
	//RemoveOlderThanDays removes all runs older than {days}
	RemoveOlderThanDays(days int) error
}

func NewRunDao(db Db) RunDao {
	return &runDao{db: db}
}

type runDao struct {
	db Db
}

func (d runDao) RemoveOlderThanDays(days int) error {
	err := d.db.Select(q.Lt("CreatedAt", cutoff(days))).Delete(&model.Run{})
	if err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (d runDao) GetOneById(id uint32) (run model.Run, err error) {
	err = d.db.One("Id", id, &run)
	return
}

func (d runDao) Create(mode model.Mode, template string) (uint32, error) {
	run := &model.Run{Mode: mode, Template: template, Status: model.RUNNING, CreatedAt: time.Now()}
	err := d.db.Save(run)
	return run.Id, err
}

func (d runDao) Finish(id uint32, total, sent, notSent int) error {
	var run model.Run
	err := d.db.One("Id", id, &run)
	if err != nil {
		return err
	}
	run.Status = model.DONE
	run.Total = total
	run.Sent = sent
	run.NotSent = notSent
	run.FinishedAt = time.Now()
	return d.db.Update(&run)
}

func (d runDao) Fail(id uint32, reason string) error {
	var run model.Run
	err := d.db.One("Id", id, &run)
	if err != nil {
		return err
	}
	run.Status = model.FAILED
	run.Error = reason
	run.FinishedAt = time.Now()
	return d.db.Update(&run)
}
