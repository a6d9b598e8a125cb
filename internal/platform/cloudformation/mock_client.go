package cloudformation

import "context"

// MockClient is a mock implementation of StackManager.
type MockClient struct {
	CreateStackFunc        func(ctx context.Context, input StackInput) error
	UpdateStackFunc        func(ctx context.Context, input StackInput) error
	DeleteStackFunc        func(ctx context.Context, name string) error
	DescribeStackFunc      func(ctx context.Context, name string) (*Stack, error)
	FirstFailureReasonFunc func(ctx context.Context, name string) (string, error)
}

// Ensure interface compliance.
var _ StackManager = (*MockClient)(nil)

// CreateStack mocks stack creation.
func (m *MockClient) CreateStack(ctx context.Context, input StackInput) error {
	if m.CreateStackFunc != nil {
		return m.CreateStackFunc(ctx, input)
	}
	return nil
}

// UpdateStack mocks stack updates.
func (m *MockClient) UpdateStack(ctx context.Context, input StackInput) error {
	if m.UpdateStackFunc != nil {
		return m.UpdateStackFunc(ctx, input)
	}
	return nil
}

// DeleteStack mocks stack deletion.
func (m *MockClient) DeleteStack(ctx context.Context, name string) error {
	if m.DeleteStackFunc != nil {
		return m.DeleteStackFunc(ctx, name)
	}
	return nil
}

// DescribeStack mocks stack lookup. The default is "does not exist".
func (m *MockClient) DescribeStack(ctx context.Context, name string) (*Stack, error) {
	if m.DescribeStackFunc != nil {
		return m.DescribeStackFunc(ctx, name)
	}
	return nil, nil
}

// FirstFailureReason mocks failure reason retrieval.
func (m *MockClient) FirstFailureReason(ctx context.Context, name string) (string, error) {
	if m.FirstFailureReasonFunc != nil {
		return m.FirstFailureReasonFunc(ctx, name)
	}
	return "", nil
}
