package grocerystore

import (
	"context"
	"os"
	"testing"

	"mealmate-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestSaveRequiresName(t *testing.T) {
	m := NewManager(nil)
	err := m.Save(context.Background(), &common.Store{})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestUpdateRequiresID(t *testing.T) {
	m := NewManager(nil)
	err := m.Update(context.Background(), &common.Store{Name: "Central Supermarket"})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}
