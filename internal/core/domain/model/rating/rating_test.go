package rating_test

import (
	"strings"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rating"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRating(t *testing.T) {
	now := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
	orderID, customer, driver := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	for score := rating.MinScore; score <= rating.MaxScore; score++ {
		r, err := rating.NewRating(orderID, customer, driver, score, " great ride ", now)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.Equal(t, score, r.Score())
		assert.Equal(t, "great ride", r.Comment())
	}

	for _, score := range []int{0, 6, -1} {
		_, err := rating.NewRating(orderID, customer, driver, score, "", now)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange, score)
	}

	_, err := rating.NewRating(orderID, customer, driver, 5, strings.Repeat("x", rating.MaxCommentLength+1), now)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = rating.NewRating(kernel.UUID{}, customer, kernel.UUID{}, 3, "", now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "order id")
	assert.Contains(t, err.Error(), "driver id")
}
