package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email string `validate:"required,email"`
	Start string `validate:"omitempty,hhmm"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sampleInput
		wantField string
	}{
		{name: "valid", in: sampleInput{Email: "a@b.test", Start: "09:30"}},
		{name: "valid unpadded hour", in: sampleInput{Email: "a@b.test", Start: "9:30"}},
		{name: "missing email", in: sampleInput{Start: "09:30"}, wantField: "Email"},
		{name: "bad email", in: sampleInput{Email: "nope"}, wantField: "Email"},
		{name: "hour out of range", in: sampleInput{Email: "a@b.test", Start: "24:00"}, wantField: "Start"},
		{name: "minute out of range", in: sampleInput{Email: "a@b.test", Start: "12:61"}, wantField: "Start"},
		{name: "not a time", in: sampleInput{Email: "a@b.test", Start: "soon"}, wantField: "Start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantField, fe.Field)
			assert.NotEmpty(t, fe.Message)
		})
	}
}
