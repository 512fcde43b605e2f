package dto

type CommitteeMemberInput struct {
	TeacherID uint   `json:"teacherId" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=president secretary member"`
}

type CommitteeInput struct {
	Name                  string                 `json:"name" validate:"required"`
	Members               []CommitteeMemberInput `json:"members" validate:"required,min=4,dive"`
	DomainIDs             []uint                 `json:"domainIds" validate:"required,min=1"`
	PaperPresentationTime int                    `json:"paperPresentationTime" validate:"omitempty,min=1"`
	PublicScheduling      bool                   `json:"publicScheduling"`
}
