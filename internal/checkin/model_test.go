package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestGuestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Vega", Guest{FirstName: strptr("Ana"), LastName: strptr("Vega")}.DisplayName())
	assert.Equal(t, "Ana", Guest{FirstName: strptr("Ana")}.DisplayName())
	assert.Equal(t, "Vega", Guest{LastName: strptr("Vega")}.DisplayName())
	assert.Equal(t, "", Guest{}.DisplayName())
}
