package repository

import (
	"context"
	stderrors "errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "rollbook/internal/errors"
	"rollbook/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// StudentRepository defines student persistence operations. All operations
// touch at most one row. Lookups return (nil, nil) when no row matches;
// absence is not an error at this layer.
type StudentRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Student, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error)
	Create(ctx context.Context, student *model.Student) error
	Save(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository builds a GORM-backed repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// ListByOwner returns every student created by the given user, in store order.
func (r *studentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Student, error) {
	var students []model.Student
	if err := r.db.WithContext(ctx).Where("created_by = ?", ownerID).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindByID finds a student by ID.
func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// FindByRollNumber finds a student by its unique roll number.
func (r *studentRepository) FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error) {
	var student model.Student
	if err := r.db.WithContext(ctx).Where("roll_number = ?", rollNumber).First(&student).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student.
func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	return translateDuplicateKey(r.db.WithContext(ctx).Create(student).Error)
}

// Save persists all fields of an existing student.
func (r *studentRepository) Save(ctx context.Context, student *model.Student) error {
	return translateDuplicateKey(r.db.WithContext(ctx).Save(student).Error)
}

// Delete removes a student by ID.
func (r *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Student{}).Error
}

// translateDuplicateKey turns a unique index violation on roll_number into
// the typed duplicate error. The service pre-checks uniqueness before
// writing, but the pre-check is not atomic with the write; the index is the
// backstop that keeps a racing writer on the documented error path.
func translateDuplicateKey(err error) error {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return apperrors.ErrRollNumberExists
	}
	return err
}
