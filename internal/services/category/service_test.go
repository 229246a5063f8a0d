package category

import (
	"context"
	"testing"

	"github.com/developia-II/vendor-lifecycle/internal/adapters/repository/memory"
	"github.com/developia-II/vendor-lifecycle/internal/core/domain"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() Service {
	logger, _ := test.NewNullLogger()
	return NewService(memory.NewStore().Categories(), logger)
}

func TestCreateAndList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	root, err := svc.Create(ctx, CreateInput{Name: "Vegetables", Slug: " Vegetable-Root "})
	require.NoError(t, err)
	assert.Equal(t, "vegetable-root", root.Slug)

	child, err := svc.Create(ctx, CreateInput{Name: "Leafy Greens", Slug: "leafy", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Leafy Greens", list[0].Name)
	assert.Equal(t, "Vegetables", list[1].Name)
}

func TestCreateErrors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateInput{Name: "Dairy", Slug: "dairy-root"})
	require.NoError(t, err)

	missing := primitive.NewObjectID()
	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"duplicate slug", CreateInput{Name: "Dairy again", Slug: "DAIRY-ROOT"}, domain.ErrConflict},
		{"unknown parent", CreateInput{Name: "Cheese", Slug: "cheese", ParentID: &missing}, domain.ErrNotFound},
		{"blank slug", CreateInput{Name: "Nothing", Slug: "  "}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListEmpty(t *testing.T) {
	list, err := newTestService().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
