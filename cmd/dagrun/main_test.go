package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ridgewaylabs/dagrun/internal/adapters/config"
	"github.com/ridgewaylabs/dagrun/internal/app"
	"github.com/ridgewaylabs/dagrun/internal/core/ports/mocks"
)

func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProber := mocks.NewMockProber(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockRunner := mocks.NewMockProcessRunner(ctrl)

	loader := config.NewLoader(mockProber, false)
	application := app.New(mockLogger, loader, mockRunner)

	provider := func(context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: mockLogger, ConfigLoader: loader, ProcessRunner: mockRunner}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProber := mocks.NewMockProber(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	mockRunner := mocks.NewMockProcessRunner(ctrl)

	loader := config.NewLoader(mockProber, false)
	application := app.New(mockLogger, loader, mockRunner)

	provider := func(context.Context) (*app.Components, error) {
		return &app.Components{App: application, Logger: mockLogger, ConfigLoader: loader, ProcessRunner: mockRunner}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run", "missing-root.dagrun"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
}
