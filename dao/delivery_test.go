package dao

import (
	"testing"
	"time"

	"github.com/dilshat/wa-sender/model"
	"github.com/stretchr/testify/require"
)

const (
	PHONE  = "+996555000111"
	PHONE2 = "+996555000222"
)

func TestDeliveryDao_CreateAndList(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	dao := NewDeliveryDao(db)

	_, err := dao.Create(model.Delivery{RunId: 1, Row: 3, Phone: PHONE2, Status: model.NOT_SENT})
	require.NoError(t, err)
	id, err := dao.Create(model.Delivery{RunId: 1, Row: 1, Phone: PHONE, Status: model.SENT, ProviderId: "77"})
	require.NoError(t, err)
	require.True(t, id > 0)
	_, err = dao.Create(model.Delivery{RunId: 2, Row: 1, Phone: PHONE, Status: model.SKIPPED})
	require.NoError(t, err)

	deliveries, err := dao.GetAllByRunId(1)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	require.Equal(t, 1, deliveries[0].Row)
	require.Equal(t, "77", deliveries[0].ProviderId)
	require.Equal(t, 3, deliveries[1].Row)
	require.False(t, deliveries[0].CreatedAt.IsZero())

	none, err := dao.GetAllByRunId(42)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeliveryDao_GetOneByRunIdAndPhone(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	dao := NewDeliveryDao(db)
	_, err := dao.Create(model.Delivery{RunId: 1, Row: 1, Phone: PHONE, Status: model.SENT})
	require.NoError(t, err)
	_, err = dao.Create(model.Delivery{RunId: 2, Row: 1, Phone: PHONE, Status: model.NOT_SENT})
	require.NoError(t, err)

	delivery, err := dao.GetOneByRunIdAndPhone(2, PHONE)
	require.NoError(t, err)
	require.Equal(t, model.NOT_SENT, delivery.Status)

	_, err = dao.GetOneByRunIdAndPhone(2, PHONE2)
	require.True(t, isNotFound(err))
}

func TestDeliveryDao_RemoveOlderThanDays(t *testing.T) {
	db, cleanup := createDB(t)
	defer cleanup()
	dao := NewDeliveryDao(db)
	_, err := dao.Create(model.Delivery{RunId: 1, Phone: PHONE, CreatedAt: time.Now().Add(-49 * time.Hour)})
	require.NoError(t, err)
	_, err = dao.Create(model.Delivery{RunId: 1, Phone: PHONE2})
	require.NoError(t, err)

	require.NoError(t, dao.RemoveOlderThanDays(2))

	deliveries, err := dao.GetAllByRunId(1)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	require.Equal(t, PHONE2, deliveries[0].Phone)
}
