package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
    for _, raw := range []string{"Booked", "Cancelled", "Completed"} {
        s, err := ParseStatus(raw)
        assert.NoError(t, err)
        assert.Equal(t, raw, s.String())
        assert.True(t, s.Valid())
    }
}

func TestParseStatus_Rejected(t *testing.T) {
    for _, raw := range []string{"", "booked", "NoShow", "CANCELLED"} {
        _, err := ParseStatus(raw)
        assert.Error(t, err, "raw=%q", raw)
    }
    assert.False(t, Status("Pending").Valid())
}
