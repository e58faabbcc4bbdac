package tenancy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	t.Run("creates available room with valid fields", func(t *testing.T) {
		room, err := NewRoom("101", decimal.NewFromInt(2500), "corner unit")

		require.NoError(t, err)
		assert.Equal(t, "101", room.Number)
		assert.True(t, decimal.NewFromInt(2500).Equal(room.Rent))
		assert.Equal(t, "corner unit", room.Description)
		assert.Equal(t, RoomStatusAvailable, room.Status)
		assert.False(t, room.IsOccupied())
		assert.NotEqual(t, room.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("trims the room number", func(t *testing.T) {
		room, err := NewRoom("  204 ", decimal.NewFromInt(3000), "")

		require.NoError(t, err)
		assert.Equal(t, "204", room.Number)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewRoom("   ", decimal.NewFromInt(2500), "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("fails with negative rent", func(t *testing.T) {
		_, err := NewRoom("101", decimal.NewFromInt(-1), "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})
}

func TestRoom_ChangeRent(t *testing.T) {
	room, err := NewRoom("101", decimal.NewFromInt(2500), "")
	require.NoError(t, err)

	t.Run("updates rent", func(t *testing.T) {
		require.NoError(t, room.ChangeRent(decimal.NewFromInt(2800)))

		assert.True(t, decimal.NewFromInt(2800).Equal(room.Rent))
	})

	t.Run("rejects negative rent", func(t *testing.T) {
		err := room.ChangeRent(decimal.NewFromInt(-500))

		assert.Error(t, err)
		assert.True(t, decimal.NewFromInt(2800).Equal(room.Rent))
	})
}

func TestRoom_Renumber(t *testing.T) {
	room, err := NewRoom("101", decimal.NewFromInt(2500), "")
	require.NoError(t, err)

	require.NoError(t, room.Renumber("102"))
	assert.Equal(t, "102", room.Number)

	assert.Error(t, room.Renumber(""))
	assert.Equal(t, "102", room.Number)
}
