package activation

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(name string) (string, bool, error) {
	args := m.Called(name)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) Set(name, value string) error {
	return m.Called(name, value).Error(0)
}

func (m *mockStore) Broadcast() error {
	return m.Called().Error(0)
}

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := m.Called(name, args)
	out, _ := call.Get(0).([]byte)
	return out, call.Error(1)
}

type recordingHook struct {
	calls []string
	err   error
}

func (h *recordingHook) EnsureBackedUp(scope string, files ...string) error {
	h.calls = append(h.calls, scope)
	return h.err
}
