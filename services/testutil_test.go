package services

import (
	"testing"
	"time"

	"github.com/haginus/bachelor-backend-sub001/database"
	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// sessionAt returns a session service with a frozen clock.
func sessionAt(db *gorm.DB, now time.Time) *SessionService {
	s := NewSessionService(db)
	s.Now = func() time.Time { return now }
	return s
}

func createDomain(t *testing.T, db *gorm.DB, name, domainType, paperType string) models.Domain {
	t.Helper()
	d := models.Domain{Name: name, Type: domainType, PaperType: paperType}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func createTeacher(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{
		FirstName: name,
		LastName:  "Teacher",
		Email:     name + "@teacher.test",
		Password:  "x",
		Kind:      models.KindTeacher,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createStudent(t *testing.T, db *gorm.DB, name string, domainID uint) models.User {
	t.Helper()
	u := models.User{
		FirstName: name,
		LastName:  "Student",
		Email:     name + "@student.test",
		Password:  "x",
		Kind:      models.KindStudent,
		DomainID:  &domainID,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createTopic(t *testing.T, db *gorm.DB, name string) models.Topic {
	t.Helper()
	topic := models.Topic{Name: name}
	require.NoError(t, db.Create(&topic).Error)
	return topic
}

// committeeInput builds a valid composition: one president, one secretary
// and the rest plain members.
func committeeInput(name string, domainIDs []uint, teacherIDs ...uint) dto.CommitteeInput {
	input := dto.CommitteeInput{Name: name, DomainIDs: domainIDs}
	for i, id := range teacherIDs {
		role := models.RoleMember
		switch i {
		case 0:
			role = models.RolePresident
		case 1:
			role = models.RoleSecretary
		}
		input.Members = append(input.Members, dto.CommitteeMemberInput{TeacherID: id, Role: role})
	}
	return input
}

func createCommittee(t *testing.T, db *gorm.DB, name string, domainIDs []uint, teacherIDs ...uint) models.Committee {
	t.Helper()
	committee, err := NewCommitteeService(db).Create(committeeInput(name, domainIDs, teacherIDs...))
	require.NoError(t, err)
	return committee
}

// createAssignablePaper builds a submitted, unassigned paper with the
// given topics.
func createAssignablePaper(t *testing.T, db *gorm.DB, teacher, student models.User, paperType string, topics ...models.Topic) models.Paper {
	t.Helper()
	submission := models.Submission{StudentID: student.ID, IsSubmitted: true}
	require.NoError(t, db.Create(&submission).Error)
	paper := models.Paper{
		Type:         paperType,
		Title:        "Paper of " + student.FirstName,
		TeacherID:    teacher.ID,
		StudentID:    student.ID,
		SubmissionID: &submission.ID,
		Topics:       topics,
	}
	require.NoError(t, db.Create(&paper).Error)
	return paper
}

func intPtr(v int) *int { return &v }
