package service

import (
	"noteapp/internal/contract"
	"noteapp/internal/domain/entity"
	"noteapp/internal/utils"
)

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	images := note.Images
	if images == nil {
		images = []string{}
	}

	tags := make([]*contract.TagResponse, len(note.Tags))
	for i, tag := range note.Tags {
		tags[i] = toTagResponse(tag)
	}

	shared := make([]*contract.UserSummary, len(note.SharedWith))
	for i, user := range note.SharedWith {
		shared[i] = toUserSummary(user)
	}

	var owner *contract.UserSummary
	if note.Owner != nil {
		owner = toUserSummary(note.Owner)
	}

	return &contract.NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Images:     images,
		Tags:       tags,
		Owner:      owner,
		SharedWith: shared,
		CreatedAt:  utils.FormatEpoch(note.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(note.UpdatedAt),
	}
}

func toTagResponse(tag *entity.Tag) *contract.TagResponse {
	return &contract.TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Color:     tag.Color,
		OwnerID:   tag.OwnerID,
		CreatedAt: utils.FormatEpoch(tag.CreatedAt),
	}
}

func toUserSummary(user *entity.User) *contract.UserSummary {
	return &contract.UserSummary{
		Uid:         user.Uid,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
}

// interestedUserIDs lists everyone who should hear about a change to the
// note: the owner plus the current shared-with set.
func interestedUserIDs(note *entity.Note) []int64 {
	ids := make([]int64, 0, len(note.SharedWith)+1)
	ids = append(ids, note.OwnerID)
	for _, user := range note.SharedWith {
		ids = append(ids, user.ID)
	}
	return ids
}
