package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"processing", StatusProcessing},
		{"confirmed", StatusConfirmed},
		{"failed", StatusFailed},
		{"refunded", StatusRefunded},
		{"Confirmed", StatusConfirmed},
		{"  REFUNDED  ", StatusRefunded},
	}
	for _, c := range cases {
		got, err := ParseStatus(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseStatusUnknown(t *testing.T) {
	for _, in := range []string{"", "paid", "done", "confirm", "processing!"} {
		_, err := ParseStatus(in)
		assert.ErrorIs(t, err, ErrUnknownStatus, "%q", in)
	}
}
