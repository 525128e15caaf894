package data

import (
	"testing"

	"CourtsideApi/internal/assert"
	"CourtsideApi/internal/validator"
)

func TestPasswordMatches(t *testing.T) {
	var p password
	assert.NilError(t, p.Set("pa55word1234"))

	match, err := p.Matches("pa55word1234")
	assert.NilError(t, err)
	assert.Equal(t, match, true)

	match, err = p.Matches("wrongpassword")
	assert.NilError(t, err)
	assert.Equal(t, match, false)
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name  string
		user  func() *User
		valid bool
	}{
		{
			name: "Valid User",
			user: func() *User {
				u := &User{Name: "Coach Taylor", Email: "coach@example.com"}
				_ = u.Password.Set("pa55word1234")
				return u
			},
			valid: true,
		},
		{
			name: "Bad Email",
			user: func() *User {
				u := &User{Name: "Coach Taylor", Email: "not-an-email"}
				_ = u.Password.Set("pa55word1234")
				return u
			},
			valid: false,
		},
		{
			name: "Short Password",
			user: func() *User {
				u := &User{Name: "Coach Taylor", Email: "coach@example.com"}
				_ = u.Password.Set("short")
				return u
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateUser(v, tt.user())
			assert.Equal(t, v.Valid(), tt.valid)
		})
	}
}
