package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"schemadiff/internal/apperr"
)

func TestExitCodeMapping(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 130, ExitCode(context.Canceled))
	require.Equal(t, 1, ExitCode(apperr.Validation("op", errors.New("bad"))))
	require.Equal(t, 1, ExitCode(apperr.Timeout("op", errors.New("slow"))))
}

func TestRunRejectsMissingEngine(t *testing.T) {
	_, err := Run(context.Background(), nil, Request{})
	require.Error(t, err)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, apperr.KindValidation, ae.Kind)
}
