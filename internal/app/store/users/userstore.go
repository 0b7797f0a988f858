// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/campusconnect/campushub/internal/app/system/indexes"
	"github.com/campusconnect/campushub/internal/app/system/normalize"
	"github.com/campusconnect/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail: email is taken by another principal.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateCode: the department code is already registered.
	ErrDuplicateCode = errors.New("a department with this code already exists")
	// ErrDuplicateStudentID: the roll number is taken by another student.
	ErrDuplicateStudentID = errors.New("a student with this id already exists")

	errBadRole = errors.New(`role must be "student", "club", or "department"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads any principal by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getOne(ctx, bson.M{"_id": id})
}

// GetStudentByID loads a user only if it is a student.
func (s *Store) GetStudentByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getOne(ctx, bson.M{"_id": id, "role": models.RoleStudent})
}

// GetClubByID loads a user only if it is a club.
func (s *Store) GetClubByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getOne(ctx, bson.M{"_id": id, "role": models.RoleClub})
}

// GetDepartmentByID loads a user only if it is a department. The
// department attendance query calls this on every request to cross-check
// the caller's identity against the requested department code.
func (s *Store) GetDepartmentByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.getOne(ctx, bson.M{"_id": id, "role": models.RoleDepartment})
}

func (s *Store) getOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a principal after normalizing the shared envelope.
// The profile collaborator owns real account provisioning; this exists
// for fixtures and seed tooling and enforces the same constraints.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	switch u.Role {
	case models.RoleStudent, models.RoleClub, models.RoleDepartment:
	default:
		return models.User{}, errBadRole
	}
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.Code = normalize.Code(u.Code)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, classifyDup(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateClubProfile sets the club-variant fields. Blank values keep the
// stored ones.
func (s *Store) UpdateClubProfile(ctx context.Context, id primitive.ObjectID, name, description, category string, advisor *models.FacultyAdvisor) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(name) != "" {
		set["name"] = strings.TrimSpace(name)
	}
	if description != "" {
		set["description"] = description
	}
	if category != "" {
		set["category"] = category
	}
	if advisor != nil {
		set["faculty_advisor"] = advisor
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "role": models.RoleClub}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetClubByID(ctx, id)
}

// UpdateDepartmentProfile sets the department-variant fields. A code
// change re-runs against the unique code index.
func (s *Store) UpdateDepartmentProfile(ctx context.Context, id primitive.ObjectID, name, code string, head *models.DepartmentHead) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if normalize.Name(name) != "" {
		set["name"] = normalize.Name(name)
	}
	if normalize.Code(code) != "" {
		set["code"] = normalize.Code(code)
	}
	if head != nil {
		set["head"] = head
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "role": models.RoleDepartment}, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateCode
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetDepartmentByID(ctx, id)
}

func classifyDup(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, indexes.UniqDepartmentCode):
		return ErrDuplicateCode
	case strings.Contains(msg, indexes.UniqStudentRoll):
		return ErrDuplicateStudentID
	default:
		return ErrDuplicateEmail
	}
}
