package services

import (
	"testing"

	"github.com/haginus/bachelor-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// assignmentWorld is a small campus: one bachelor domain, one committee of
// four teachers with an offer-derived topic affinity, and a supervising
// teacher outside the committee.
type assignmentWorld struct {
	domain     models.Domain
	committee  models.Committee
	supervisor models.User
	topic      models.Topic
}

func buildAssignmentWorld(t *testing.T, db *gorm.DB) assignmentWorld {
	domain := createDomain(t, db, "CS", models.DomainTypeBachelor, models.PaperTypeBachelor)
	t1 := createTeacher(t, db, "m1")
	t2 := createTeacher(t, db, "m2")
	t3 := createTeacher(t, db, "m3")
	t4 := createTeacher(t, db, "m4")
	committee := createCommittee(t, db, "C1", []uint{domain.ID}, t1.ID, t2.ID, t3.ID, t4.ID)

	topic := createTopic(t, db, "databases")
	offer := models.Offer{TeacherID: t3.ID, DomainID: domain.ID, Limit: 5, Topics: []models.Topic{topic}}
	require.NoError(t, db.Create(&offer).Error)

	supervisor := createTeacher(t, db, "outside")
	return assignmentWorld{domain: domain, committee: committee, supervisor: supervisor, topic: topic}
}

func TestAutoAssignAssignsCompatiblePaper(t *testing.T) {
	db := newTestDB(t)
	w := buildAssignmentWorld(t, db)
	student := createStudent(t, db, "s1", w.domain.ID)
	paper := createAssignablePaper(t, db, w.supervisor, student, models.PaperTypeBachelor, w.topic)

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Updated)
	assert.Zero(t, result.Failed)

	var stored models.Paper
	require.NoError(t, db.First(&stored, paper.ID).Error)
	require.NotNil(t, stored.CommitteeID)
	assert.Equal(t, w.committee.ID, *stored.CommitteeID)
}

func TestAutoAssignNeverPicksOwnTeachersCommittee(t *testing.T) {
	db := newTestDB(t)
	w := buildAssignmentWorld(t, db)

	// The paper's supervisor sits on the only committee.
	var member models.CommitteeMember
	require.NoError(t, db.Where("committee_id = ?", w.committee.ID).First(&member).Error)
	student := createStudent(t, db, "s1", w.domain.ID)
	teacher := models.User{}
	require.NoError(t, db.First(&teacher, member.TeacherID).Error)
	paper := createAssignablePaper(t, db, teacher, student, models.PaperTypeBachelor, w.topic)

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "no compatible committee found", result.Rows[0].Reason)

	var stored models.Paper
	require.NoError(t, db.First(&stored, paper.ID).Error)
	assert.Nil(t, stored.CommitteeID)
}

func TestAutoAssignFiltersDomainAndTopic(t *testing.T) {
	db := newTestDB(t)
	w := buildAssignmentWorld(t, db)

	otherDomain := createDomain(t, db, "Law", models.DomainTypeBachelor, models.PaperTypeBachelor)
	wrongDomainStudent := createStudent(t, db, "wrongdomain", otherDomain.ID)
	createAssignablePaper(t, db, w.supervisor, wrongDomainStudent, models.PaperTypeBachelor, w.topic)

	strangeTopic := createTopic(t, db, "astrology")
	wrongTopicStudent := createStudent(t, db, "wrongtopic", w.domain.ID)
	createAssignablePaper(t, db, w.supervisor, wrongTopicStudent, models.PaperTypeBachelor, strangeTopic)

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Failed)
	for _, row := range result.Rows {
		assert.False(t, row.Assigned)
		assert.Equal(t, "no compatible committee found", row.Reason)
	}
}

func TestAutoAssignAffinityFromSupervisedPapers(t *testing.T) {
	db := newTestDB(t)
	domain := createDomain(t, db, "CS", models.DomainTypeBachelor, models.PaperTypeBachelor)
	t1 := createTeacher(t, db, "m1")
	t2 := createTeacher(t, db, "m2")
	t3 := createTeacher(t, db, "m3")
	t4 := createTeacher(t, db, "m4")
	committee := createCommittee(t, db, "C1", []uint{domain.ID}, t1.ID, t2.ID, t3.ID, t4.ID)

	// No offers at all: the affinity comes from a paper t2 supervises.
	topic := createTopic(t, db, "compilers")
	supervised := createStudent(t, db, "supervised", domain.ID)
	createAssignablePaper(t, db, t2, supervised, models.PaperTypeBachelor, topic)

	outside := createTeacher(t, db, "outside")
	student := createStudent(t, db, "s1", domain.ID)
	paper := createAssignablePaper(t, db, outside, student, models.PaperTypeBachelor, topic)

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)

	var stored models.Paper
	require.NoError(t, db.First(&stored, paper.ID).Error)
	require.NotNil(t, stored.CommitteeID)
	assert.Equal(t, committee.ID, *stored.CommitteeID)

	// t2's own student stays unassigned: the supervisor sits on the only
	// committee.
	var own models.Paper
	require.NoError(t, db.Where("student_id = ?", supervised.ID).First(&own).Error)
	assert.Nil(t, own.CommitteeID)
	assert.Equal(t, 1, result.Failed)
}

func TestAutoAssignBalancesLoadGreedily(t *testing.T) {
	db := newTestDB(t)
	domain := createDomain(t, db, "CS", models.DomainTypeBachelor, models.PaperTypeBachelor)
	topic := createTopic(t, db, "networks")

	// Two equivalent committees, both compatible with every paper.
	var committees []models.Committee
	for _, name := range []string{"C1", "C2"} {
		a := createTeacher(t, db, name+"a")
		b := createTeacher(t, db, name+"b")
		c := createTeacher(t, db, name+"c")
		d := createTeacher(t, db, name+"d")
		committee := createCommittee(t, db, name, []uint{domain.ID}, a.ID, b.ID, c.ID, d.ID)
		offer := models.Offer{TeacherID: a.ID, DomainID: domain.ID, Limit: 10, Topics: []models.Topic{topic}}
		require.NoError(t, db.Create(&offer).Error)
		committees = append(committees, committee)
	}

	supervisor := createTeacher(t, db, "outside")
	for _, name := range []string{"s1", "s2", "s3", "s4"} {
		student := createStudent(t, db, name, domain.ID)
		createAssignablePaper(t, db, supervisor, student, models.PaperTypeBachelor, topic)
	}

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)
	assert.Equal(t, 4, result.Updated)

	// The greedy pass alternates: two papers per committee.
	for _, committee := range committees {
		var count int64
		require.NoError(t, db.Model(&models.Paper{}).Where("committee_id = ?", committee.ID).Count(&count).Error)
		assert.Equal(t, int64(2), count, committee.Name)
	}
}

func TestAutoAssignIsIdempotentForAssignedPapers(t *testing.T) {
	db := newTestDB(t)
	w := buildAssignmentWorld(t, db)
	student := createStudent(t, db, "s1", w.domain.ID)
	paper := createAssignablePaper(t, db, w.supervisor, student, models.PaperTypeBachelor, w.topic)

	s := NewAssignmentService(db)
	first, err := s.AutoAssignPapers()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Updated)

	second, err := s.AutoAssignPapers()
	require.NoError(t, err)
	assert.Zero(t, second.Processed)
	assert.Zero(t, second.Updated)

	var stored models.Paper
	require.NoError(t, db.First(&stored, paper.ID).Error)
	require.NotNil(t, stored.CommitteeID)
	assert.Equal(t, w.committee.ID, *stored.CommitteeID)
}

func TestAutoAssignSkipsIneligiblePapers(t *testing.T) {
	db := newTestDB(t)
	w := buildAssignmentWorld(t, db)

	// Unsubmitted paper.
	unsubmitted := createStudent(t, db, "uns", w.domain.ID)
	paper := models.Paper{
		Type: models.PaperTypeBachelor, Title: "unsubmitted",
		TeacherID: w.supervisor.ID, StudentID: unsubmitted.ID,
		Topics: []models.Topic{w.topic},
	}
	require.NoError(t, db.Create(&paper).Error)

	// Rejected paper.
	rejected := createStudent(t, db, "rej", w.domain.ID)
	rejectedPaper := createAssignablePaper(t, db, w.supervisor, rejected, models.PaperTypeBachelor, w.topic)
	invalid := false
	require.NoError(t, db.Model(&rejectedPaper).Update("is_valid", &invalid).Error)

	// Master papers follow a separate path.
	masterStudent := createStudent(t, db, "master", w.domain.ID)
	createAssignablePaper(t, db, w.supervisor, masterStudent, models.PaperTypeMaster, w.topic)

	result, err := NewAssignmentService(db).AutoAssignPapers()
	require.NoError(t, err)
	assert.Zero(t, result.Processed)
}
