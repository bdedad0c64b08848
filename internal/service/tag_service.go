package service

import (
	"hash/fnv"

	"github.com/labstack/gommon/log"

	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/utils"
	"noteapp/internal/utils/apierror"
	"noteapp/internal/utils/uid"
)

// tagPalette is the fixed set of colors new tags are assigned from.
var tagPalette = []string{
	"#DBEAFE", // blue
	"#E0E7FF", // indigo
	"#FCE7F3", // pink
	"#FEF3C7", // amber
	"#D1FAE5", // green
	"#FEE2E2", // red
}

type TagRepository interface {
	FindByOwnerAndName(ownerID int64, name string) (*entity.Tag, error)
	FindAllByOwner(ownerID int64) ([]*entity.Tag, error)
	Save(tag *entity.Tag) error
}

type TagService struct {
	TagRepo TagRepository
}

func NewTagService(tagRepo TagRepository) *TagService {
	return &TagService{TagRepo: tagRepo}
}

// ResolveTags turns free-text tag names into the owner's tag records,
// creating the ones that do not exist yet. Matching is exact and
// case-sensitive, so "Work" and "work" resolve to two different tags.
// Results come back in input order with repeated names collapsed; an
// empty input yields an empty result, never an error.
func (t *TagService) ResolveTags(ownerID int64, names []string) ([]*entity.Tag, apierror.ErrorResponse) {
	resolved := make([]*entity.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := t.TagRepo.FindByOwnerAndName(ownerID, name)
		if err != nil {
			log.Errorf("failed to look up tag %q: %v", name, err)
			return nil, apierror.InternalServerError
		}

		if tag == nil {
			tag = &entity.Tag{
				ID:        uid.Generate(),
				Name:      name,
				Color:     colorForName(name),
				OwnerID:   ownerID,
				CreatedAt: utils.NowUTC(),
			}
			if err := t.TagRepo.Save(tag); err != nil {
				log.Errorf("failed to create tag %q: %v", name, err)
				return nil, apierror.InternalServerError
			}
		}

		resolved = append(resolved, tag)
	}
	return resolved, nil
}

func (t *TagService) GetTags(actor *entity.User) ([]*contract.TagResponse, apierror.ErrorResponse) {
	tags, err := t.TagRepo.FindAllByOwner(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch tags: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.TagResponse, len(tags))
	for i, tag := range tags {
		resp[i] = toTagResponse(tag)
	}
	return resp, nil
}

// colorForName picks a palette color from the name hash, so the same
// name always gets the same color without storing any extra state.
func colorForName(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return tagPalette[h.Sum32()%uint32(len(tagPalette))]
}
