package audit_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/audit"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("creates an entry with snapshots and links", func(t *testing.T) {
		parcelID := kernel.NewUUID()
		entry, err := audit.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), "staff",
			audit.ActionParcelTransition, "parcel", parcelID,
			[]byte(`{"status":"ARRIVED"}`), []byte(`{"status":"STORED"}`),
			audit.Links{ParcelID: &parcelID},
			audit.RequestMeta{IP: "10.0.0.7", UserAgent: "curl/8.5"},
		)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, audit.ActionParcelTransition, entry.Action())
		assert.Equal(t, "parcel", entry.EntityType())
		assert.JSONEq(t, `{"status":"STORED"}`, string(entry.NewData()))
		require.NotNil(t, entry.Links().ParcelID)
		assert.Equal(t, "10.0.0.7", entry.Meta().IP)
		assert.False(t, entry.CreatedAt().IsZero())
	})

	t.Run("snapshots are optional", func(t *testing.T) {
		entry, err := audit.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), "admin",
			audit.ActionParcelIntake, "parcel", kernel.NewUUID(),
			nil, nil, audit.Links{}, audit.RequestMeta{})

		require.NoError(t, err)
		assert.Nil(t, entry.PrevData())
	})

	t.Run("rejects missing action or entity type", func(t *testing.T) {
		_, err := audit.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), "staff", "", "parcel", kernel.NewUUID(),
			nil, nil, audit.Links{}, audit.RequestMeta{})
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = audit.NewEntry(
			kernel.NewUUID(), kernel.NewUUID(), "staff", audit.ActionParcelIntake, "", kernel.NewUUID(),
			nil, nil, audit.Links{}, audit.RequestMeta{})
		require.Error(t, err)
	})
}

func TestEntry_Validate(t *testing.T) {
	var entry audit.Entry

	err := entry.Validate()

	require.Error(t, err)
	assert.Equal(t, audit.ErrEntryIsNotConstructed, err)
}

func TestFilter_Normalize(t *testing.T) {
	t.Run("fills default page size", func(t *testing.T) {
		f, err := audit.Filter{}.Normalize()

		require.NoError(t, err)
		assert.Equal(t, audit.DefaultPageSize, f.PageSize)
		assert.Equal(t, 0, f.Offset())
	})

	t.Run("computes offsets", func(t *testing.T) {
		f, err := audit.Filter{Page: 3, PageSize: 20}.Normalize()

		require.NoError(t, err)
		assert.Equal(t, 60, f.Offset())
	})

	t.Run("rejects bad pagination and ranges", func(t *testing.T) {
		_, err := audit.Filter{Page: -1}.Normalize()
		require.Error(t, err)

		_, err = audit.Filter{PageSize: audit.MaxPageSize + 1}.Normalize()
		require.Error(t, err)

		from := time.Now()
		to := from.Add(-time.Hour)
		_, err = audit.Filter{From: &from, To: &to}.Normalize()
		require.Error(t, err)
	})
}
