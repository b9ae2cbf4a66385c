package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rollbook/internal/cache"
	apperrors "rollbook/internal/errors"
	"rollbook/internal/model"
	"rollbook/internal/repository"
)

const studentCacheTTL = 5 * time.Minute

var maxCGPA = decimal.NewFromInt(4)

// StudentUpdate carries a partial update. Nil means the field was not
// supplied and keeps its current value; a non-nil pointer overwrites, even
// when it points at a zero value such as CGPA 0.
type StudentUpdate struct {
	RollNumber  *string
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	DateOfBirth *time.Time
	Gender      *model.Gender
	Address     *string
	Class       *string
	CGPA        *decimal.Decimal
	Status      *model.StudentStatus
}

// StudentService exposes the student record operations. Every operation
// takes the authenticated caller's user ID; records created by other users
// are invisible (List) or rejected (Get/Update/Delete).
type StudentService interface {
	ListStudents(ctx context.Context, ownerID uint) ([]model.Student, error)
	GetStudent(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Student, error)
	CreateStudent(ctx context.Context, ownerID uint, student *model.Student) (*model.Student, error)
	UpdateStudent(ctx context.Context, ownerID uint, id uuid.UUID, update StudentUpdate) (*model.Student, error)
	DeleteStudent(ctx context.Context, ownerID uint, id uuid.UUID) error
}

type studentService struct {
	repo  repository.StudentRepository
	cache *cache.Client
}

// NewStudentService builds a StudentService with repository and cache.
func NewStudentService(repo repository.StudentRepository, cache *cache.Client) StudentService {
	return &studentService{repo: repo, cache: cache}
}

func (s *studentService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("student:%s", id.String())
}

// fetchOwned is the single ownership gate for id-scoped operations: absent
// records are NotFound, records owned by another user are Forbidden.
func (s *studentService) fetchOwned(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if student.CreatedBy != ownerID {
		return nil, apperrors.ErrNotStudentOwner
	}
	return student, nil
}

// ListStudents returns every record owned by the caller, in store order.
func (s *studentService) ListStudents(ctx context.Context, ownerID uint) ([]model.Student, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// GetStudent retrieves a caller-owned student by ID with caching. The
// ownership check also applies to cache hits.
func (s *studentService) GetStudent(ctx context.Context, ownerID uint, id uuid.UUID) (*model.Student, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Student
		if err := json.Unmarshal(data, &cached); err == nil {
			if cached.CreatedBy != ownerID {
				return nil, apperrors.ErrNotStudentOwner
			}
			return &cached, nil
		}
	}

	student, err := s.fetchOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(student); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, studentCacheTTL)
	}

	return student, nil
}

// CreateStudent stores a new record owned by the caller. CreatedBy always
// comes from the caller identity, never from the payload; status defaults to
// Active and CGPA to 0.
func (s *studentService) CreateStudent(ctx context.Context, ownerID uint, student *model.Student) (*model.Student, error) {
	student.RollNumber = strings.TrimSpace(student.RollNumber)
	student.Email = strings.ToLower(student.Email)

	if err := validateCGPA(student.CGPA); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByRollNumber(ctx, student.RollNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrRollNumberExists
	}

	student.CreatedBy = ownerID
	if student.Status == "" {
		student.Status = model.StudentStatusActive
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(student.ID))
	return student, nil
}

// UpdateStudent applies a partial update to a caller-owned record. A changed
// roll number re-runs the uniqueness pre-check.
func (s *studentService) UpdateStudent(ctx context.Context, ownerID uint, id uuid.UUID, update StudentUpdate) (*model.Student, error) {
	student, err := s.fetchOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if update.RollNumber != nil {
		rollNumber := strings.TrimSpace(*update.RollNumber)
		if rollNumber != student.RollNumber {
			existing, err := s.repo.FindByRollNumber(ctx, rollNumber)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.ErrRollNumberExists
			}
		}
		student.RollNumber = rollNumber
	}
	if update.FirstName != nil {
		student.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		student.LastName = *update.LastName
	}
	if update.Email != nil {
		student.Email = strings.ToLower(*update.Email)
	}
	if update.Phone != nil {
		student.Phone = *update.Phone
	}
	if update.DateOfBirth != nil {
		student.DateOfBirth = *update.DateOfBirth
	}
	if update.Gender != nil {
		student.Gender = *update.Gender
	}
	if update.Address != nil {
		student.Address = *update.Address
	}
	if update.Class != nil {
		student.Class = *update.Class
	}
	if update.CGPA != nil {
		if err := validateCGPA(*update.CGPA); err != nil {
			return nil, err
		}
		student.CGPA = *update.CGPA
	}
	if update.Status != nil {
		student.Status = *update.Status
	}

	if err := s.repo.Save(ctx, student); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return student, nil
}

// DeleteStudent removes a caller-owned record.
func (s *studentService) DeleteStudent(ctx context.Context, ownerID uint, id uuid.UUID) error {
	if _, err := s.fetchOwned(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func validateCGPA(cgpa decimal.Decimal) error {
	if cgpa.IsNegative() || cgpa.GreaterThan(maxCGPA) {
		return apperrors.ErrInvalidCGPA
	}
	return nil
}
