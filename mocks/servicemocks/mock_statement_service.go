package servicemocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockStatementService is a mock implementation of service.StatementService.
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) WriteStatement(ctx context.Context, rentalID int64, billingMonth string, w io.Writer) error {
	args := m.Called(ctx, rentalID, billingMonth, w)
	return args.Error(0)
}
