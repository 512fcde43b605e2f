package services

import (
	"log"
	"sync"

	"github.com/haginus/bachelor-backend-sub001/models"

	"gorm.io/gorm"
)

// AssignmentResult summarizes one auto-assignment run.
type AssignmentResult struct {
	Processed int                 `json:"processed"`
	Updated   int                 `json:"updated"`
	Failed    int                 `json:"failed"`
	Rows      []AssignmentRowInfo `json:"rows"`
}

type AssignmentRowInfo struct {
	PaperID     uint   `json:"paperId"`
	Title       string `json:"title"`
	CommitteeID *uint  `json:"committeeId,omitempty"`
	Assigned    bool   `json:"assigned"`
	Reason      string `json:"reason,omitempty"`
}

// AssignmentService allocates submitted papers to compatible committees.
// Runs are serialized with a mutex: two concurrent full runs would race on
// the committee load tallies.
type AssignmentService struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

// committeeCandidate is one committee's working state during a run.
type committeeCandidate struct {
	committee  models.Committee
	teacherIDs map[uint]bool
	domainIDs  map[uint]bool
	// Topic ids from members' offers and supervised papers; approximates
	// the subjects the committee can competently judge.
	affinity   map[uint]bool
	paperCount int64
}

// AutoAssignPapers computes and commits paper-to-committee assignments for
// every assignment-eligible paper: submitted, unassigned, not rejected,
// and of bachelor or diploma type. Selection is a greedy single pass that
// always picks the least-loaded compatible committee, updating the running
// totals so later papers in the same batch see them. All successful
// assignments persist in one transaction; a paper with no compatible
// committee is reported as a failed row and never aborts the batch.
func (s *AssignmentService) AutoAssignPapers() (AssignmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := AssignmentResult{Rows: []AssignmentRowInfo{}}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		candidates, err := loadCandidates(tx)
		if err != nil {
			return err
		}

		var papers []models.Paper
		err = tx.
			Preload("Topics").
			Preload("Student").
			Where("submission_id IS NOT NULL").
			Where("committee_id IS NULL").
			Where("is_valid IS NULL OR is_valid = ?", true).
			Where("type IN ?", []string{models.PaperTypeBachelor, models.PaperTypeDiploma}).
			Order("id ASC").
			Find(&papers).Error
		if err != nil {
			return err
		}

		for _, paper := range papers {
			result.Processed++
			chosen := pickCommittee(paper, candidates)
			if chosen == nil {
				result.Failed++
				result.Rows = append(result.Rows, AssignmentRowInfo{
					PaperID: paper.ID,
					Title:   paper.Title,
					Reason:  "no compatible committee found",
				})
				continue
			}
			committeeID := chosen.committee.ID
			if err := tx.Model(&models.Paper{}).Where("id = ?", paper.ID).
				Update("committee_id", committeeID).Error; err != nil {
				return err
			}
			chosen.paperCount++
			result.Updated++
			result.Rows = append(result.Rows, AssignmentRowInfo{
				PaperID:     paper.ID,
				Title:       paper.Title,
				CommitteeID: &committeeID,
				Assigned:    true,
			})
		}
		return nil
	})
	if err != nil {
		return AssignmentResult{}, err
	}
	log.Printf("[assign] processed=%d updated=%d failed=%d", result.Processed, result.Updated, result.Failed)
	return result, nil
}

// loadCandidates builds the working state for every committee: member and
// domain sets, the topic affinity set, and the current paper count. The
// ascending id order fixes the tie-break for equally loaded committees.
func loadCandidates(tx *gorm.DB) ([]*committeeCandidate, error) {
	var committees []models.Committee
	if err := tx.Preload("Members").Preload("Domains").Order("id ASC").Find(&committees).Error; err != nil {
		return nil, err
	}

	candidates := make([]*committeeCandidate, 0, len(committees))
	for _, committee := range committees {
		c := &committeeCandidate{
			committee:  committee,
			teacherIDs: make(map[uint]bool),
			domainIDs:  make(map[uint]bool),
			affinity:   make(map[uint]bool),
		}
		memberIDs := make([]uint, 0, len(committee.Members))
		for _, m := range committee.Members {
			c.teacherIDs[m.TeacherID] = true
			memberIDs = append(memberIDs, m.TeacherID)
		}
		for _, d := range committee.Domains {
			c.domainIDs[d.ID] = true
		}

		var topicIDs []uint
		err := tx.Table("offer_topics").
			Select("offer_topics.topic_id").
			Joins("JOIN offers ON offers.id = offer_topics.offer_id").
			Where("offers.teacher_id IN ? AND offers.deleted_at IS NULL", memberIDs).
			Scan(&topicIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range topicIDs {
			c.affinity[id] = true
		}
		topicIDs = nil
		err = tx.Table("paper_topics").
			Select("paper_topics.topic_id").
			Joins("JOIN papers ON papers.id = paper_topics.paper_id").
			Where("papers.teacher_id IN ? AND papers.deleted_at IS NULL", memberIDs).
			Scan(&topicIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range topicIDs {
			c.affinity[id] = true
		}

		if err := tx.Model(&models.Paper{}).Where("committee_id = ?", committee.ID).
			Count(&c.paperCount).Error; err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// pickCommittee returns the least-loaded compatible committee for the
// paper, or nil when none qualifies. Compatibility: the paper's own
// teacher must not sit on the committee, the student's domain must be
// among the committee's domains, and the paper's topics must intersect the
// committee's affinity set.
func pickCommittee(paper models.Paper, candidates []*committeeCandidate) *committeeCandidate {
	var best *committeeCandidate
	for _, c := range candidates {
		if c.teacherIDs[paper.TeacherID] {
			continue
		}
		if paper.Student.DomainID == nil || !c.domainIDs[*paper.Student.DomainID] {
			continue
		}
		shared := false
		for _, t := range paper.Topics {
			if c.affinity[t.ID] {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}
		if best == nil || c.paperCount < best.paperCount {
			best = c
		}
	}
	return best
}
