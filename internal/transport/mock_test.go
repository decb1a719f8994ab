package transport

import (
	"context"

	"motoshop-be/internal/taxonomy"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateSection(ctx context.Context, in taxonomy.SectionInput) (*taxonomy.Section, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Section), args.Error(1)
}

func (m *MockStore) CreateCategory(ctx context.Context, in taxonomy.CategoryInput) (*taxonomy.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockStore) UpdateCategory(ctx context.Context, id string, in taxonomy.UpdateCategoryInput) (*taxonomy.Category, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockStore) AttachIcon(ctx context.Context, categoryID string, asset *taxonomy.IconAsset) (*taxonomy.Category, error) {
	args := m.Called(ctx, categoryID, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Category), args.Error(1)
}

func (m *MockStore) AddType(ctx context.Context, categoryID string, in taxonomy.TypeInput) (*taxonomy.Type, error) {
	args := m.Called(ctx, categoryID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Type), args.Error(1)
}

func (m *MockStore) RemoveType(ctx context.Context, typeID string) error {
	return m.Called(ctx, typeID).Error(0)
}

func (m *MockStore) DeleteCategory(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

func (m *MockStore) ListSections(ctx context.Context) ([]*taxonomy.Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxonomy.Section), args.Error(1)
}

func (m *MockStore) CreateBrand(ctx context.Context, in taxonomy.BrandInput) (*taxonomy.Brand, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Brand), args.Error(1)
}

func (m *MockStore) ListBrands(ctx context.Context) ([]*taxonomy.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxonomy.Brand), args.Error(1)
}

type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) ResolveSection(ctx context.Context, slug string) (*taxonomy.Section, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.Section), args.Error(1)
}

func (m *MockQueries) CategoriesFor(ctx context.Context, sectionSlug string) ([]*taxonomy.Category, error) {
	args := m.Called(ctx, sectionSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxonomy.Category), args.Error(1)
}

func (m *MockQueries) TypesFor(ctx context.Context, categoryID string) ([]*taxonomy.TypeRef, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taxonomy.TypeRef), args.Error(1)
}

func (m *MockQueries) FilterOptionsFor(ctx context.Context, sectionSlug *string) (*taxonomy.FilterOptions, error) {
	args := m.Called(ctx, sectionSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomy.FilterOptions), args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
