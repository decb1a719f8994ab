package taxonomy

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListSections(ctx context.Context) ([]*Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Section), args.Error(1)
}

func (m *MockRepository) GetSectionBySlug(ctx context.Context, slug string) (*Section, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Section), args.Error(1)
}

func (m *MockRepository) GetCategory(ctx context.Context, id string) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) ListCategories(ctx context.Context, sectionSlug *string) ([]*Category, error) {
	args := m.Called(ctx, sectionSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *MockRepository) ListTypesByCategoryIDs(ctx context.Context, categoryIDs []string) (map[string][]*TypeRef, error) {
	args := m.Called(ctx, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*TypeRef), args.Error(1)
}

func (m *MockRepository) ListBrands(ctx context.Context) ([]*Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Brand), args.Error(1)
}

func (m *MockRepository) InsertSection(ctx context.Context, name, slug string) (*Section, error) {
	args := m.Called(ctx, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Section), args.Error(1)
}

func (m *MockRepository) InsertCategory(ctx context.Context, name, slug, section string) (*Category, error) {
	args := m.Called(ctx, name, slug, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*Category, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) SetCategoryIcon(ctx context.Context, id string, ref *IconRef) (*IconRef, error) {
	args := m.Called(ctx, id, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IconRef), args.Error(1)
}

func (m *MockRepository) InsertType(ctx context.Context, categoryID, name, slug string) (*Type, error) {
	args := m.Called(ctx, categoryID, name, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Type), args.Error(1)
}

func (m *MockRepository) DeleteType(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) DeleteCategory(ctx context.Context, id string) (*IconRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IconRef), args.Error(1)
}

func (m *MockRepository) InsertBrand(ctx context.Context, in BrandInput) (*Brand, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Brand), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadIcon(ctx context.Context, asset *IconAsset) (*IconRef, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IconRef), args.Error(1)
}

func (m *MockUploader) DestroyIcon(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}
