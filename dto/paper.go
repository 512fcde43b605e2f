package dto

type ApplicationInput struct {
	OfferID     uint   `json:"offerId" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type OfferInput struct {
	DomainID    uint   `json:"domainId" validate:"required"`
	TopicIDs    []uint `json:"topicIds" validate:"required,min=1"`
	Limit       int    `json:"limit" validate:"required,min=1"`
	Description string `json:"description"`
}

type PaperReviewInput struct {
	IsValid bool `json:"isValid"`
}
