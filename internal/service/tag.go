package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/recipe-api/internal/logging"
	"github.com/iliyamo/recipe-api/internal/model"
	"github.com/iliyamo/recipe-api/internal/queue"
	"github.com/iliyamo/recipe-api/internal/repository"
)

const maxTagNameLen = 255

// TagService scopes every tag read and write to the calling user. The owner
// always comes from the resolved identity passed in, never from input.
type TagService struct {
	tags   repository.TagRepository
	events EventPublisher
	log    logging.Logger
}

func NewTagService(tags repository.TagRepository, events EventPublisher, log logging.Logger) *TagService {
	return &TagService{tags: tags, events: events, log: log}
}

// ListTags returns the user's tags ordered by name descending.
func (s *TagService) ListTags(ctx context.Context, user model.User) ([]model.Tag, error) {
	if user.ID == 0 {
		return nil, errNoIdentity
	}
	tags, err := s.tags.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

// CreateTag stores a new tag owned by user.
func (s *TagService) CreateTag(ctx context.Context, user model.User, name string) (model.Tag, error) {
	if user.ID == 0 {
		return model.Tag{}, errNoIdentity
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, invalid("name", "this field may not be blank")
	}
	if utf8.RuneCountInString(name) > maxTagNameLen {
		return model.Tag{}, invalid("name", "ensure this field has no more than 255 characters")
	}

	t := model.Tag{UserID: user.ID, Name: name}
	if err := s.tags.Create(ctx, &t); err != nil {
		return model.Tag{}, err
	}
	publish(ctx, s.events, s.log, queue.NewTagCreated(t))
	return t, nil
}
