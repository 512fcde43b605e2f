package services

import (
	"errors"
	"testing"
	"time"

	"github.com/haginus/bachelor-backend-sub001/dto"
	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetSettingsCreatesDefaultLazily(t *testing.T) {
	db := newTestDB(t)
	now := date(2024, time.March, 10)
	s := sessionAt(db, now)

	settings, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, uint(1), settings.ID)
	assert.Equal(t, date(2024, time.March, 10), settings.ApplyStart)
	assert.Equal(t, date(2024, time.March, 10), settings.PaperSubmissionEnd)
	assert.False(t, settings.AllowPaperGrading)

	var count int64
	require.NoError(t, db.Model(&models.SessionSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Second read is served from the cache.
	require.NoError(t, db.Where("1 = 1").Delete(&models.SessionSettings{}).Error)
	again, err := s.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func validUpdate() dto.SessionSettingsUpdate {
	return dto.SessionSettingsUpdate{
		SessionName:         "2023-2024",
		CurrentPromotion:    "2024",
		ApplyStart:          date(2024, time.February, 1),
		ApplyEnd:            date(2024, time.February, 10),
		FileSubmissionStart: date(2024, time.May, 1),
		FileSubmissionEnd:   date(2024, time.May, 20),
		PaperSubmissionEnd:  date(2024, time.June, 1),
	}
}

func TestUpdateSettingsOrderingViolations(t *testing.T) {
	db := newTestDB(t)
	s := sessionAt(db, date(2024, time.January, 1))
	before, err := s.GetSettings()
	require.NoError(t, err)

	cases := []struct {
		mutate  func(*dto.SessionSettingsUpdate)
		message string
	}{
		{func(u *dto.SessionSettingsUpdate) { u.ApplyEnd = date(2024, time.January, 31) },
			"apply end date must not precede apply start date"},
		{func(u *dto.SessionSettingsUpdate) { u.FileSubmissionStart = date(2024, time.January, 15) },
			"file submission start date must not precede apply start date"},
		{func(u *dto.SessionSettingsUpdate) { u.FileSubmissionEnd = date(2024, time.April, 1) },
			"file submission end date must not precede file submission start date"},
		{func(u *dto.SessionSettingsUpdate) { u.PaperSubmissionEnd = date(2024, time.April, 1) },
			"paper submission end date must not precede file submission start date"},
	}
	for _, tc := range cases {
		req := validUpdate()
		tc.mutate(&req)
		_, err := s.UpdateSettings(req)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, tc.message, err.Error())
	}

	// No violation may have committed anything.
	var stored models.SessionSettings
	require.NoError(t, db.First(&stored).Error)
	assert.True(t, stored.ApplyStart.Equal(before.ApplyStart))
	assert.Equal(t, before.SessionName, stored.SessionName)
}

func TestUpdateSettingsRefreshesCache(t *testing.T) {
	db := newTestDB(t)
	s := sessionAt(db, date(2024, time.January, 1))

	updated, err := s.UpdateSettings(validUpdate())
	require.NoError(t, err)
	assert.Equal(t, "2023-2024", updated.SessionName)

	cached := s.Cache.Get()
	require.NotNil(t, cached)
	assert.Equal(t, "2023-2024", cached.SessionName)
}

func TestCanApplyInclusiveWindow(t *testing.T) {
	db := newTestDB(t)
	s := sessionAt(db, date(2024, time.January, 1))
	_, err := s.UpdateSettings(validUpdate())
	require.NoError(t, err)

	cases := []struct {
		now  time.Time
		want bool
	}{
		{date(2024, time.January, 31), false},
		{date(2024, time.February, 1), true},
		{date(2024, time.February, 5), true},
		// The entire calendar day of the end date still counts.
		{time.Date(2024, time.February, 10, 23, 59, 59, 0, time.UTC), true},
		{date(2024, time.February, 11), false},
	}
	for _, tc := range cases {
		s.Now = func() time.Time { return tc.now }
		assert.Equal(t, tc.want, s.CanApply(), "at %s", tc.now)
	}
}

func TestUploadWindows(t *testing.T) {
	db := newTestDB(t)
	s := sessionAt(db, date(2024, time.January, 1))
	_, err := s.UpdateSettings(validUpdate())
	require.NoError(t, err)

	s.Now = func() time.Time { return date(2024, time.May, 10) }
	assert.True(t, s.CanUploadSecretaryFiles())
	assert.True(t, s.CanUploadPaperFiles())

	// After the file window but before the paper deadline.
	s.Now = func() time.Time { return date(2024, time.May, 25) }
	assert.False(t, s.CanUploadSecretaryFiles())
	assert.True(t, s.CanUploadPaperFiles())

	s.Now = func() time.Time { return date(2024, time.June, 2) }
	assert.False(t, s.CanUploadPaperFiles())
}

// seedSessionWorld creates two students with graded papers (one passing,
// one failing) plus the session-scoped records the rollover must purge.
func seedSessionWorld(t *testing.T, db *gorm.DB) (passing, failing models.User) {
	domain := createDomain(t, db, "CS", models.DomainTypeBachelor, models.PaperTypeBachelor)
	t1 := createTeacher(t, db, "ada")
	t2 := createTeacher(t, db, "grace")
	t3 := createTeacher(t, db, "edsger")
	t4 := createTeacher(t, db, "barbara")
	committee := createCommittee(t, db, "C1", []uint{domain.ID}, t1.ID, t2.ID, t3.ID, t4.ID)

	passing = createStudent(t, db, "pass", domain.ID)
	failing = createStudent(t, db, "fail", domain.ID)
	topic := createTopic(t, db, "algorithms")

	p1 := createAssignablePaper(t, db, t1, passing, models.PaperTypeBachelor, topic)
	p2 := createAssignablePaper(t, db, t2, failing, models.PaperTypeBachelor, topic)
	require.NoError(t, db.Model(&models.Paper{}).Where("id IN ?", []uint{p1.ID, p2.ID}).
		Update("committee_id", committee.ID).Error)

	// Average 7 for the passing paper, 4 for the failing one.
	require.NoError(t, db.Create(&models.PaperGrade{
		CommitteeID: committee.ID, TeacherID: t3.ID, PaperID: p1.ID,
		ForPaper: 7, ForPresentation: 7,
	}).Error)
	require.NoError(t, db.Create(&models.PaperGrade{
		CommitteeID: committee.ID, TeacherID: t3.ID, PaperID: p2.ID,
		ForPaper: 4, ForPresentation: 4,
	}).Error)

	require.NoError(t, db.Create(&models.ActivityLog{UserID: t1.ID, Action: "committee.created"}).Error)
	require.NoError(t, db.Create(&models.StudentExtraData{UserID: failing.ID}).Error)
	return passing, failing
}

func TestBeginNewSession(t *testing.T) {
	db := newTestDB(t)
	passing, failing := seedSessionWorld(t, db)
	s := sessionAt(db, date(2024, time.September, 1))

	fresh, err := s.BeginNewSession()
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.September, 1), fresh.ApplyStart)
	assert.False(t, fresh.AllowPaperGrading)

	// The graduating student and their paper are gone.
	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", passing.ID).Count(&userCount).Error)
	assert.Equal(t, int64(0), userCount)
	var paperCount int64
	require.NoError(t, db.Model(&models.Paper{}).Where("student_id = ?", passing.ID).Count(&paperCount).Error)
	assert.Equal(t, int64(0), paperCount)

	// The failing student keeps a cleared paper.
	var paper models.Paper
	require.NoError(t, db.Where("student_id = ?", failing.ID).First(&paper).Error)
	assert.Nil(t, paper.IsValid)
	assert.Nil(t, paper.SubmissionID)
	assert.Nil(t, paper.CommitteeID)

	// Everything session-scoped is purged.
	for name, model := range map[string]interface{}{
		"activity logs": &models.ActivityLog{},
		"submissions":   &models.Submission{},
		"committees":    &models.Committee{},
		"paper grades":  &models.PaperGrade{},
		"extra data":    &models.StudentExtraData{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count, name)
	}

	// Exactly one freshly defaulted settings row.
	var settingsCount int64
	require.NoError(t, db.Model(&models.SessionSettings{}).Count(&settingsCount).Error)
	assert.Equal(t, int64(1), settingsCount)
}

func TestBeginNewSessionRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	_, failing := seedSessionWorld(t, db)
	s := sessionAt(db, date(2024, time.September, 1))

	boom := errors.New("storage gone")
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").
		Register("fail_committee_delete", func(tx *gorm.DB) {
			if tx.Statement.Table == "committees" {
				tx.AddError(boom)
			}
		}))

	_, err := s.BeginNewSession()
	require.ErrorIs(t, err, boom)

	// The previous session's data is fully intact.
	var counts = map[string]interface{}{
		"users":         &models.User{},
		"papers":        &models.Paper{},
		"committees":    &models.Committee{},
		"activity logs": &models.ActivityLog{},
		"paper grades":  &models.PaperGrade{},
	}
	for name, model := range counts {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.NotZero(t, count, name)
	}
	var paper models.Paper
	require.NoError(t, db.Where("student_id = ?", failing.ID).First(&paper).Error)
	assert.NotNil(t, paper.SubmissionID)
	assert.NotNil(t, paper.CommitteeID)
}
