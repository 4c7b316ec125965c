package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type region struct {
		key   string
		guard guard.ConstructorGuard
	}
	errRegionNotConstructed := errors.New("region must be created via newRegion")

	newRegion := func(key string) (region, error) {
		if key == "" {
			return region{}, errors.New("region key is required")
		}
		return region{key: key, guard: guard.NewConstructorGuard()}, nil
	}

	r, err := newRegion("riyadh")
	require.NoError(t, err)
	require.NoError(t, r.guard.Validate(errRegionNotConstructed))

	var zero region
	require.ErrorIs(t, zero.guard.Validate(errRegionNotConstructed), errRegionNotConstructed)

	_, err = newRegion("")
	require.Error(t, err)
}
