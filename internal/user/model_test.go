package user

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		u    User
		want string
	}{
		{"both parts", User{FirstName: strptr("Ana"), LastName: strptr("Vega")}, "Ana Vega"},
		{"first only", User{FirstName: strptr("Ana")}, "Ana"},
		{"last only", User{LastName: strptr("Vega")}, "Vega"},
		{"empty profile", User{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.u.FullName())
		})
	}
}

func TestUserProfileFieldsRoundTrip(t *testing.T) {
	dob := time.Date(1996, 4, 12, 0, 0, 0, 0, time.UTC)
	u := User{
		ID:             3,
		Email:          "ana@example.com",
		FirstName:      strptr("Ana"),
		LastName:       strptr("Vega"),
		Phone:          strptr("+34 600 123 456"),
		DateOfBirth:    &dob,
		EventsAttended: 12,
		AvatarURL:      strptr("https://cdn.example.com/ana.jpg"),
	}

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Ana", got["first_name"])
	assert.Equal(t, "Vega", got["last_name"])
	assert.Equal(t, "+34 600 123 456", got["phone"])
	assert.Equal(t, float64(12), got["events_attended"])
	assert.Contains(t, got, "date_of_birth")
	assert.Equal(t, "https://cdn.example.com/ana.jpg", got["avatar_url"])
}
