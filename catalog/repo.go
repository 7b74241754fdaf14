package catalog

import (
	"context"

	"github.com/ruralep/platform/pkg/store"
	"github.com/ruralep/platform/pkg/store/models"
)

// Repository reads and writes the product and course collections.
type Repository struct {
	store store.Accessor
}

// NewRepository builds a repository over the given store accessor.
func NewRepository(acc store.Accessor) *Repository {
	return &Repository{store: acc}
}

// Products returns all listings, empty when nothing persisted yet.
func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if _, err := r.store.Load(ctx, r.store.Keys().Products, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SaveProducts replaces the persisted listings with the provided value.
func (r *Repository) SaveProducts(ctx context.Context, products []models.Product) error {
	return r.store.Save(ctx, r.store.Keys().Products, products)
}

// Courses returns all courses, empty when nothing persisted yet.
func (r *Repository) Courses(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if _, err := r.store.Load(ctx, r.store.Keys().Courses, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// SaveCourses replaces the persisted courses with the provided value.
func (r *Repository) SaveCourses(ctx context.Context, courses []models.Course) error {
	return r.store.Save(ctx, r.store.Keys().Courses, courses)
}

func findProduct(products []models.Product, id string) (*models.Product, int) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], i
		}
	}
	return nil, -1
}

func findCourse(courses []models.Course, id string) (*models.Course, int) {
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i], i
		}
	}
	return nil, -1
}
