package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/pkg/anthropic"
)

// --- Classifier Mock ---

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (model.Classification, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(model.Classification), args.Error(1)
}

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// --- Ensure interface compliance ---
var (
	_ Classifier       = (*mockClassifier)(nil)
	_ anthropic.Client = (*mockAnthropicClient)(nil)
)
