package guard_test

import (
	"errors"
	"testing"

	"couriertrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate_Constructed(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate_ZeroValue_ReturnsGivenError(t *testing.T) {
	var g guard.ConstructorGuard

	sentinel := errors.New("label must be created via NewLabel")
	err := g.Validate(sentinel)

	require.Error(t, err)
	assert.Equal(t, sentinel, err)
}

func TestConstructorGuard_Validate_ZeroValue_NilFallsBackToDefault(t *testing.T) {
	var g guard.ConstructorGuard

	err := g.Validate(nil)

	require.Error(t, err)
	assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
}

// Guarded objects are passed around by value; copies must carry the
// constructed flag with them.
func TestConstructorGuard_CopiesStayValid(t *testing.T) {
	type label struct {
		code  string
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("label is not constructed")

	original := label{code: "CP001234567", guard: guard.NewConstructorGuard()}
	duplicate := original

	require.NoError(t, duplicate.guard.Validate(errNotConstructed))

	var zero label
	require.ErrorIs(t, zero.guard.Validate(errNotConstructed), errNotConstructed)
}

func TestConstructorGuard_Validate_EmbeddedInDomainObject(t *testing.T) {
	errNotConstructed := errors.New("manifest must be created via newManifest")

	type manifest struct {
		parcels int
		guard   guard.ConstructorGuard
	}

	newManifest := func(parcels int) (manifest, error) {
		if parcels < 0 {
			return manifest{}, errors.New("parcel count cannot be negative")
		}
		return manifest{parcels: parcels, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_manifest_validates", func(t *testing.T) {
		m, err := newManifest(3)
		require.NoError(t, err)
		require.NoError(t, m.guard.Validate(errNotConstructed))
		assert.Equal(t, 3, m.parcels)
	})

	t.Run("rejected_construction_leaves_zero_value", func(t *testing.T) {
		m, err := newManifest(-1)
		require.Error(t, err)
		require.ErrorIs(t, m.guard.Validate(errNotConstructed), errNotConstructed)
	})
}
