package sponsor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivo/backend/internal/domain/shared"
)

func TestSponsorPipeline(t *testing.T) {
	s, err := NewSponsor(uuid.New(), "Bryggeriet AS", decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, s.Status)

	t.Run("advances forward through the pipeline", func(t *testing.T) {
		require.NoError(t, s.Advance(StatusAgreed))
		require.NoError(t, s.Advance(StatusSigned))
		assert.Equal(t, StatusSigned, s.Status)
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		err := s.Advance(StatusContacted)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_STATE_TRANSITION", derr.Code)
		assert.Equal(t, StatusSigned, s.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		assert.Error(t, s.Advance(Status("ghosted")))
	})
}

func TestMarkDelivered(t *testing.T) {
	s, err := NewSponsor(uuid.New(), "Sparebanken", decimal.NewFromInt(20000))
	require.NoError(t, err)

	d := Deliverable{
		BaseEntity:  shared.NewBaseEntity(),
		SponsorID:   s.ID,
		Description: "Logo på hovedscenen",
	}
	s.Deliverables = append(s.Deliverables, d)

	now := time.Now()
	require.NoError(t, s.MarkDelivered(d.ID, now))
	assert.True(t, s.Deliverables[0].Delivered)
	require.NotNil(t, s.Deliverables[0].DeliveredAt)
	assert.Equal(t, now, *s.Deliverables[0].DeliveredAt)

	assert.ErrorIs(t, s.MarkDelivered(uuid.New(), now), shared.ErrNotFound)
}

func TestNewSponsorRequiresName(t *testing.T) {
	_, err := NewSponsor(uuid.New(), "", decimal.Zero)
	assert.Error(t, err)
}
