package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestStore_SaveLoad(t *testing.T) {
	t.Run("round_trips_buffer", func(t *testing.T) {
		st := newTestStore(t)
		data := []byte{0x01, 0x02, 0x03}

		require.NoError(t, st.Save("slot-a", data))
		loaded, err := st.Load("slot-a")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run("overwrites_existing_slot", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Save("slot", []byte("old")))
		require.NoError(t, st.Save("slot", []byte("new")))

		loaded, err := st.Load("slot")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), loaded)
	})

	t.Run("missing_slot_fails", func(t *testing.T) {
		st := newTestStore(t)
		_, err := st.Load("missing")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("empty_slot_name_is_rejected", func(t *testing.T) {
		st := newTestStore(t)
		assert.ErrorIs(t, st.Save("", []byte("x")), ErrEmptySlot)
	})
}

func TestStore_List(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Save("beta", []byte("b")))
	require.NoError(t, st.Save("alpha", []byte("a")))

	slots, err := st.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, slots, "slots list in key order")
}

func TestStore_Delete(t *testing.T) {
	t.Run("removes_slot", func(t *testing.T) {
		st := newTestStore(t)
		require.NoError(t, st.Save("slot", []byte("x")))
		require.NoError(t, st.Delete("slot"))

		_, err := st.Load("slot")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("deleting_missing_slot_fails", func(t *testing.T) {
		st := newTestStore(t)
		assert.ErrorIs(t, st.Delete("missing"), ErrSlotNotFound)
	})
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(Options{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, st.Save("durable", []byte("payload")))
	require.NoError(t, st.Close())

	st, err = Open(Options{DataDir: dir})
	require.NoError(t, err)
	defer st.Close()

	loaded, err := st.Load("durable")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), loaded)
}

func TestStore_Closed(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Close())

	assert.ErrorIs(t, st.Save("slot", nil), ErrStoreClosed)
	_, err := st.Load("slot")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = st.List()
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, st.Delete("slot"), ErrStoreClosed)
}
