package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{FullName: "Jane Reader", Email: "jane@example.com", Password: "secret-pass"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing full name", func(r *RegisterRequest) { r.FullName = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "1234567" }},
		{"password too long", func(r *RegisterRequest) { r.Password = strings.Repeat("x", 73) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "jane@example.com", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "jane@example.com", Password: ""}.Validate())
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{Email: "jane@example.com", PasswordHash: "$2a$10$abcdef", FullName: "Jane Reader", Role: RoleUser}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "abcdef")
	assert.Contains(t, string(data), `"fullName":"Jane Reader"`)
}
