package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepositoryAccessError(t *testing.T) {
	cause := fmt.Errorf("%w: 404", ErrNotFound)
	err := &RepositoryAccessError{Name: "proj", Err: cause}

	assert.Equal(t, `error accessing repository "proj": not found: 404`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileUploadError(t *testing.T) {
	cause := errors.New("409 conflict")
	err := &FileUploadError{Path: "sub/a.txt", Err: cause}

	assert.Equal(t, `error uploading file "sub/a.txt": 409 conflict`, err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestErrorPolicy_String(t *testing.T) {
	tests := []struct {
		policy ErrorPolicy
		want   string
	}{
		{ContinueOnFileError, "continue"},
		{AbortOnFileError, "abort"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.policy.String(); got != tt.want {
				t.Errorf("ErrorPolicy.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
