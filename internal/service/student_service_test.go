package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "rollbook/internal/errors"
	"rollbook/internal/model"
)

// MockStudentRepository is a mock implementation of StudentRepository.
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Student, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByRollNumber(ctx context.Context, rollNumber string) (*model.Student, error) {
	args := m.Called(ctx, rollNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentRepository) Create(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Save(ctx context.Context, student *model.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const (
	ownerID uint = 1
	otherID uint = 2
)

func sampleStudent(id uuid.UUID) *model.Student {
	return &model.Student{
		ID:          id,
		RollNumber:  "R100",
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@x.com",
		Phone:       "555",
		DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		Gender:      model.GenderFemale,
		Address:     "1 Rd",
		Class:       "10A",
		CGPA:        decimal.NewFromFloat(3.5),
		Status:      model.StudentStatusActive,
		CreatedBy:   ownerID,
	}
}

func TestStudentService_CreateStudent(t *testing.T) {
	tests := []struct {
		name          string
		student       *model.Student
		setupMock     func(*MockStudentRepository)
		expectedError error
		check         func(*testing.T, *model.Student)
	}{
		{
			name: "defaults applied and owner forced",
			student: &model.Student{
				RollNumber:  "  R100 ",
				FirstName:   "Ann",
				LastName:    "Lee",
				Email:       "ANN@X.COM",
				Phone:       "555",
				DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
				Gender:      model.GenderFemale,
				Address:     "1 Rd",
				Class:       "10A",
				CreatedBy:   otherID, // must be ignored
			},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByRollNumber", mock.Anything, "R100").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)
			},
			check: func(t *testing.T, created *model.Student) {
				assert.Equal(t, "R100", created.RollNumber)
				assert.Equal(t, "ann@x.com", created.Email)
				assert.Equal(t, ownerID, created.CreatedBy)
				assert.Equal(t, model.StudentStatusActive, created.Status)
				assert.True(t, created.CGPA.Equal(decimal.Zero))
			},
		},
		{
			name: "duplicate roll number",
			student: &model.Student{
				RollNumber: "R100",
				FirstName:  "Ann",
				LastName:   "Lee",
				Email:      "ann@x.com",
				Phone:      "555",
				Gender:     model.GenderFemale,
				Address:    "1 Rd",
				Class:      "10A",
			},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByRollNumber", mock.Anything, "R100").Return(sampleStudent(uuid.New()), nil)
			},
			expectedError: apperrors.ErrRollNumberExists,
		},
		{
			name: "cgpa out of range",
			student: &model.Student{
				RollNumber: "R200",
				FirstName:  "Ben",
				LastName:   "Ortiz",
				Email:      "ben@x.com",
				Phone:      "555",
				Gender:     model.GenderMale,
				Address:    "2 Rd",
				Class:      "10A",
				CGPA:       decimal.NewFromFloat(4.5),
			},
			setupMock:     func(m *MockStudentRepository) {},
			expectedError: apperrors.ErrInvalidCGPA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			tt.setupMock(mockRepo)

			svc := NewStudentService(mockRepo, nil)
			created, err := svc.CreateStudent(context.Background(), ownerID, tt.student)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				tt.check(t, created)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStudentService_GetStudent(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		callerID      uint
		setupMock     func(*MockStudentRepository)
		expectedError error
	}{
		{
			name:     "owner reads own record",
			callerID: ownerID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
			},
		},
		{
			name:     "absent record is not found",
			callerID: ownerID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, nil)
			},
			expectedError: apperrors.ErrStudentNotFound,
		},
		{
			name:     "other caller is forbidden",
			callerID: otherID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
			},
			expectedError: apperrors.ErrNotStudentOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			tt.setupMock(mockRepo)

			svc := NewStudentService(mockRepo, nil)
			student, err := svc.GetStudent(context.Background(), tt.callerID, id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, student)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, id, student.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStudentService_UpdateStudent(t *testing.T) {
	id := uuid.New()
	newRoll := "R999"
	newFirst := "Anna"

	tests := []struct {
		name          string
		callerID      uint
		update        StudentUpdate
		setupMock     func(*MockStudentRepository)
		expectedError error
		check         func(*testing.T, *model.Student)
	}{
		{
			name:     "absent fields keep current values",
			callerID: ownerID,
			update:   StudentUpdate{FirstName: &newFirst},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)
			},
			check: func(t *testing.T, updated *model.Student) {
				assert.Equal(t, "Anna", updated.FirstName)
				assert.Equal(t, "R100", updated.RollNumber)
				assert.Equal(t, "Lee", updated.LastName)
			},
		},
		{
			name:     "supplied cgpa zero overwrites",
			callerID: ownerID,
			update:   StudentUpdate{CGPA: &decimal.Zero},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)
			},
			check: func(t *testing.T, updated *model.Student) {
				assert.True(t, updated.CGPA.Equal(decimal.Zero))
			},
		},
		{
			name:     "changed roll number collides",
			callerID: ownerID,
			update:   StudentUpdate{RollNumber: &newRoll},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
				m.On("FindByRollNumber", mock.Anything, "R999").Return(sampleStudent(uuid.New()), nil)
			},
			expectedError: apperrors.ErrRollNumberExists,
		},
		{
			name:     "changed roll number free",
			callerID: ownerID,
			update:   StudentUpdate{RollNumber: &newRoll},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
				m.On("FindByRollNumber", mock.Anything, "R999").Return(nil, nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)
			},
			check: func(t *testing.T, updated *model.Student) {
				assert.Equal(t, "R999", updated.RollNumber)
			},
		},
		{
			name:     "other caller is forbidden",
			callerID: otherID,
			update:   StudentUpdate{FirstName: &newFirst},
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
			},
			expectedError: apperrors.ErrNotStudentOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			tt.setupMock(mockRepo)

			svc := NewStudentService(mockRepo, nil)
			updated, err := svc.UpdateStudent(context.Background(), tt.callerID, id, tt.update)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, updated)
				tt.check(t, updated)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStudentService_UpdateStudent_UnchangedRollSkipsPrecheck(t *testing.T) {
	id := uuid.New()
	sameRoll := "R100"

	mockRepo := new(MockStudentRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
	// No FindByRollNumber expectation: supplying the current roll number must
	// not trigger the uniqueness pre-check.
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Student")).Return(nil)

	svc := NewStudentService(mockRepo, nil)
	updated, err := svc.UpdateStudent(context.Background(), ownerID, id, StudentUpdate{RollNumber: &sameRoll})

	assert.NoError(t, err)
	assert.Equal(t, "R100", updated.RollNumber)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindByRollNumber", mock.Anything, mock.Anything)
}

func TestStudentService_DeleteStudent(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name          string
		callerID      uint
		setupMock     func(*MockStudentRepository)
		expectedError error
	}{
		{
			name:     "owner deletes own record",
			callerID: ownerID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
				m.On("Delete", mock.Anything, id).Return(nil)
			},
		},
		{
			name:     "absent record is not found",
			callerID: ownerID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(nil, nil)
			},
			expectedError: apperrors.ErrStudentNotFound,
		},
		{
			name:     "other caller is forbidden",
			callerID: otherID,
			setupMock: func(m *MockStudentRepository) {
				m.On("FindByID", mock.Anything, id).Return(sampleStudent(id), nil)
			},
			expectedError: apperrors.ErrNotStudentOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			tt.setupMock(mockRepo)

			svc := NewStudentService(mockRepo, nil)
			err := svc.DeleteStudent(context.Background(), tt.callerID, id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStudentService_ListStudents(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	owned := []model.Student{*sampleStudent(uuid.New()), *sampleStudent(uuid.New())}
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return(owned, nil)

	svc := NewStudentService(mockRepo, nil)
	students, err := svc.ListStudents(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Len(t, students, 2)
	mockRepo.AssertExpectations(t)
}
