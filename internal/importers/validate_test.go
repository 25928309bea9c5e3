package importers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davinci-coder-club/clubsite/internal/entities"
)

func TestValidator_Member(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		member    entities.Member
		wantField string
		wantRule  string
		wantMsg   string
	}{
		{
			name:   "valid",
			member: entities.Member{Name: "Jane", Email: "jane@club.dev"},
		},
		{
			name:      "missing name reported first",
			member:    entities.Member{Email: "bad"},
			wantField: "name",
			wantRule:  "required",
			wantMsg:   `Row 4: member (unnamed): missing required field "name"`,
		},
		{
			name:      "missing email",
			member:    entities.Member{Name: "Jane"},
			wantField: "email",
			wantRule:  "required",
			wantMsg:   `Row 4: member "Jane": missing required field "email"`,
		},
		{
			name:      "email without domain dot",
			member:    entities.Member{Name: "Jane", Email: "jane@club"},
			wantField: "email",
			wantRule:  emailTag,
			wantMsg:   `Row 4: member "Jane": invalid email "jane@club"`,
		},
		{
			name:      "email with whitespace",
			member:    entities.Member{Name: "Jane", Email: "jane doe@club.dev"},
			wantField: "email",
			wantRule:  emailTag,
		},
		{
			name:      "email with two at signs",
			member:    entities.Member{Name: "Jane", Email: "jane@@club.dev"},
			wantField: "email",
			wantRule:  emailTag,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateMember(&tt.member, 4)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, EntityMember, vErr.Entity)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantRule, vErr.Rule)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidator_Project(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateProject(&entities.Project{Title: "Site"}, 1))

	err := v.ValidateProject(&entities.Project{Description: "no title"}, 2)
	require.Error(t, err)
	assert.Equal(t, `Row 2: project (unnamed): missing required field "title"`, err.Error())
}

func TestValidator_Event(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateEvent(&entities.Event{Title: "Hack Night", Venue: "Lab"}, 1))

	err := v.ValidateEvent(&entities.Event{Venue: "Lab"}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing required field "title"`)

	err = v.ValidateEvent(&entities.Event{Title: "Hack Night"}, 3)
	require.Error(t, err)
	assert.Equal(t, `Row 3: event "Hack Night": missing required field "venue"`, err.Error())
}

func TestDuplicateDetector(t *testing.T) {
	d := NewDuplicateDetector([]string{"Existing@Club.dev", ""})
	assert.Equal(t, 1, d.Len())

	assert.True(t, d.Check("existing@club.dev"))
	assert.False(t, d.Check("new@club.dev"))
	assert.True(t, d.Check(" NEW@club.dev "))
	assert.Equal(t, 2, d.Len())
}
