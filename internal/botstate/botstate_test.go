package botstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	assert.Equal(t, "", store.Get(1))

	store.Set(1, "reg_phone")
	assert.Equal(t, "reg_phone", store.Get(1))

	store.SetData(1, "phone", "+79990001122")
	store.Set(1, "reg_name")
	// переход шага не теряет накопленные данные
	assert.Equal(t, "reg_name", store.Get(1))
	assert.Equal(t, "+79990001122", store.GetData(1, "phone"))

	// чаты изолированы друг от друга
	store.Set(2, "order_code")
	assert.Equal(t, "reg_name", store.Get(1))
	assert.Equal(t, "", store.GetData(2, "phone"))

	store.Clear(1)
	assert.Equal(t, "", store.Get(1))
	assert.Equal(t, "", store.GetData(1, "phone"))
	assert.Equal(t, "order_code", store.Get(2))
}

func TestSetDataWithoutState(t *testing.T) {
	store := NewStore()
	store.SetData(5, "barista_id", "3")
	assert.Equal(t, "", store.Get(5))
	assert.Equal(t, "3", store.GetData(5, "barista_id"))
}
