package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/coffeeshop/internal/auth/domain"
)

func TestParseAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid bearer", header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc.def.ghi", wantToken: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: authDomain.ErrAuthorizationHeaderMissing},
		{name: "blank header", header: "   ", wantErr: authDomain.ErrAuthorizationHeaderMissing},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: authDomain.ErrAuthorizationSchemeInvalid},
		{name: "scheme only", header: "Bearer", wantErr: authDomain.ErrAuthorizationTokenMissing},
		{name: "too many parts", header: "Bearer abc def", wantErr: authDomain.ErrAuthorizationHeaderMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ParseAuthorizationHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
