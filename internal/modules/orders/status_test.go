package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusCreated, StatusProcessing},
		{StatusCreated, StatusCancelled},
		{StatusProcessing, StatusPaid},
		{StatusProcessing, StatusCancelled},
		{StatusPaid, StatusShipped},
		{StatusShipped, StatusDelivered},
	}
	for _, c := range allowed {
		assert.True(t, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusCreated, StatusPaid},
		{StatusCreated, StatusCreated},
		{StatusProcessing, StatusCreated},
		{StatusPaid, StatusCancelled},
		{StatusPaid, StatusProcessing},
		{StatusDelivered, StatusShipped},
		{StatusCancelled, StatusProcessing},
		{StatusCancelled, StatusCancelled},
		{Status("bogus"), StatusPaid},
	}
	for _, c := range forbidden {
		assert.False(t, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}
