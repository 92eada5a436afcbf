package parcel_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWeight(t *testing.T, kg float64) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(kg)
	require.NoError(t, err)
	return w
}

func newOwnedParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	owner := kernel.NewUUID()
	p, err := parcel.NewParcel(
		kernel.NewUUID(), "TRK-001", "M-1234", &owner, kernel.NewUUID(), mustWeight(t, 2.5))
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("should create a parcel bound to its owner", func(t *testing.T) {
		owner := kernel.NewUUID()
		staff := kernel.NewUUID()

		p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-001", "M-1234", &owner, staff, mustWeight(t, 2.5))

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.Arrived, p.Status())
		assert.Equal(t, "TRK-001", p.TrackingCode())
		assert.Equal(t, "M-1234", p.MemberCode())
		require.NotNil(t, p.Owner())
		assert.True(t, p.Owner().IsEqual(owner))
		assert.True(t, p.RegisteredBy().IsEqual(staff))
		assert.False(t, p.HasException())
		assert.False(t, p.IsOrphan())
		assert.Nil(t, p.StoredAt())
		assert.False(t, p.IsDeleted())
	})

	t.Run("orphan parcel is always exception-locked", func(t *testing.T) {
		p, err := parcel.NewParcel(
			kernel.NewUUID(), "TRK-002", "BOGUS", nil, kernel.NewUUID(), mustWeight(t, 1))

		require.NoError(t, err)
		assert.True(t, p.IsOrphan())
		assert.True(t, p.HasException())
	})

	t.Run("should reject empty tracking code", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.NewUUID(), "", "M-1234", nil, kernel.NewUUID(), mustWeight(t, 1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid ids and weight", func(t *testing.T) {
		_, err := parcel.NewParcel(
			kernel.UUID{}, "TRK-003", "M-1234", nil, kernel.NewUUID(), mustWeight(t, 1))
		require.Error(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), "TRK-003", "M-1234", nil, kernel.UUID{}, mustWeight(t, 1))
		require.Error(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), "TRK-003", "M-1234", nil, kernel.NewUUID(), kernel.Weight{})
		require.Error(t, err)
	})
}

func TestParcel_Validate(t *testing.T) {
	t.Run("directly instantiated parcel fails validation", func(t *testing.T) {
		var p parcel.Parcel

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, parcel.ErrParcelIsNotConstructed, err)
	})
}

func TestParcel_TransitionTo(t *testing.T) {
	t.Run("forward transition updates status", func(t *testing.T) {
		p := newOwnedParcel(t)

		require.NoError(t, p.TransitionTo(parcel.Stored, false))

		assert.Equal(t, parcel.Stored, p.Status())
	})

	t.Run("first arrival at Stored records the stored-at timestamp once", func(t *testing.T) {
		p := newOwnedParcel(t)

		require.NoError(t, p.TransitionTo(parcel.Stored, false))
		first := p.StoredAt()
		require.NotNil(t, first)

		require.NoError(t, p.TransitionTo(parcel.DeliveryRequested, false))
		require.NoError(t, p.TransitionTo(parcel.Stored, true)) // admin override back

		assert.Equal(t, first, p.StoredAt())
	})

	t.Run("skipping a state is rejected and nothing changes", func(t *testing.T) {
		p := newOwnedParcel(t)
		require.NoError(t, p.TransitionTo(parcel.Stored, false))

		err := p.TransitionTo(parcel.Delivered, false)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrTransitionIsNotAllowed)
		assert.Equal(t, parcel.Stored, p.Status())
	})

	t.Run("exception-locked parcel rejects transitions as forbidden", func(t *testing.T) {
		p := newOwnedParcel(t)
		p.MarkException()

		err := p.TransitionTo(parcel.Stored, false)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, parcel.Arrived, p.Status())
	})
}

func TestParcel_ExceptionLock(t *testing.T) {
	t.Run("mark and clear", func(t *testing.T) {
		p := newOwnedParcel(t)

		p.MarkException()
		assert.True(t, p.HasException())

		require.NoError(t, p.ClearException())
		assert.False(t, p.HasException())
	})

	t.Run("clearing the lock on an orphan is rejected", func(t *testing.T) {
		p, err := parcel.NewParcel(
			kernel.NewUUID(), "TRK-010", "BOGUS", nil, kernel.NewUUID(), mustWeight(t, 1))
		require.NoError(t, err)

		err = p.ClearException()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, p.HasException())
	})
}

func TestParcel_OverrideOwner(t *testing.T) {
	t.Run("rebinding to a new owner keeps the lock state", func(t *testing.T) {
		p, err := parcel.NewParcel(
			kernel.NewUUID(), "TRK-020", "BOGUS", nil, kernel.NewUUID(), mustWeight(t, 1))
		require.NoError(t, err)
		require.True(t, p.HasException())

		owner := kernel.NewUUID()
		require.NoError(t, p.OverrideOwner(&owner, "M-9999"))

		assert.False(t, p.IsOrphan())
		assert.Equal(t, "M-9999", p.MemberCode())
		// The invalid-member-code exception is still open; rebinding alone
		// does not unlock the parcel.
		assert.True(t, p.HasException())
	})

	t.Run("removing the owner re-locks the parcel", func(t *testing.T) {
		p := newOwnedParcel(t)

		require.NoError(t, p.OverrideOwner(nil, "GONE"))

		assert.True(t, p.IsOrphan())
		assert.True(t, p.HasException())
	})
}

func TestParcel_SoftDelete(t *testing.T) {
	p := newOwnedParcel(t)

	p.SoftDelete()

	assert.True(t, p.IsDeleted())
}

func TestRestoreParcel(t *testing.T) {
	t.Run("restores persisted state verbatim", func(t *testing.T) {
		owner := kernel.NewUUID()
		p, err := parcel.RestoreParcel(
			kernel.NewUUID(), "TRK-030", "M-1234", &owner, kernel.NewUUID(),
			parcel.OutForDelivery, false, mustWeight(t, 3.5), nil, false)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.OutForDelivery, p.Status())
	})

	t.Run("rejects invalid persisted status", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), "TRK-031", "M-1234", nil, kernel.NewUUID(),
			parcel.Unknown, true, mustWeight(t, 3.5), nil, false)

		require.Error(t, err)
	})
}
