package dao

import (
	"sync"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/index"
	"github.com/asdine/storm/v3/q"
	"github.com/dilshat/wa-sender/model"
	"github.com/dilshat/wa-sender/util"
	bolt "go.etcd.io/bbolt"
)

type Db interface {
	Init(data interface{}) error
	One(fieldName string, value interface{}, to interface{}) error
	Update(data interface{}) error
	Save(data interface{}) error
	DeleteStruct(data interface{}) error
	Select(matchers ...q.Matcher) storm.Query
	Find(fieldName string, value interface{}, to interface{}, options ...func(q *index.Options)) error
	All(to interface{}, options ...func(*index.Options)) error
	Close() error
}

var (
	once     sync.Once
	instance Db
)

func GetClient(dbFilePath string) (Db, error) {
	var err error

	once.Do(func() {
		instance, err = open(dbFilePath)
	})

	return instance, err
}

func open(dbFilePath string) (Db, error) {
	exists := util.FileExists(dbFilePath)

	db, err := storm.Open(dbFilePath, storm.BoltOptions(0600, &bolt.Options{Timeout: 10 * time.Second, ReadOnly: false}))
	if err != nil {
		return nil, err
	}
	if exists {
		return db, nil
	}

	//init db structs
	for _, data := range []interface{}{&model.Run{}, &model.Delivery{}} {
		if err = db.Init(data); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func isNotFound(err error) bool {
	return err == storm.ErrNotFound
}

func cutoff(days int) time.Time {
	return time.Now().Add(-24 * time.Duration(days) * time.Hour)
}
