// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authgate Contributors

package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/authgate/authgate/internal/auth"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want auth.Kind
	}{
		{"validation code", oops.Code(auth.CodeInvalidUsername).Errorf("bad"), auth.KindValidation},
		{"conflict code", oops.Code(auth.CodeDuplicateUser).Errorf("dup"), auth.KindConflict},
		{"credentials code", oops.Code(auth.CodeInvalidCredentials).Errorf("no"), auth.KindUnauthorized},
		{"expired token code", oops.Code(auth.CodeTokenExpired).Errorf("old"), auth.KindUnauthorized},
		{"hash format code", oops.Code(auth.CodeInvalidHash).Errorf("corrupt"), auth.KindInternal},
		{"unknown code", oops.Code("SOMETHING_ELSE").Errorf("hm"), auth.KindInternal},
		{"plain error", errors.New("boom"), auth.KindInternal},
		{"wrapped oops error", fmt.Errorf("outer: %w", oops.Code(auth.CodeDuplicateUser).Errorf("dup")), auth.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.ErrorKind(tt.err))
		})
	}
}
