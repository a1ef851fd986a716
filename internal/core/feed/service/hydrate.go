package feedapp

import (
	"time"

	"chirp/internal/core/comment"
	"chirp/internal/core/hashtag"
	"chirp/internal/core/post"
	"chirp/internal/core/user"
	postPort "chirp/internal/ports/post"
)

// Each view shape has its own hydration function:
//   - echo: returned after create/retweet; likers carry only their id
//   - detail: direct single-post fetch; likers carry id and nickname
//   - timeline: feed entries; no hashtags, likers carry only their id

func hydrateEcho(p *post.Post) *postPort.PostDTO {
	dto := hydrateBase(p)
	dto.Hashtags = hashtagDTOs(p.Hashtags)
	dto.Likers = likerIDs(p.Likers)
	return dto
}

func hydrateDetail(p *post.Post) *postPort.PostDTO {
	dto := hydrateBase(p)
	dto.Hashtags = hashtagDTOs(p.Hashtags)
	dto.Likers = likerProfiles(p.Likers)
	return dto
}

func hydrateTimeline(p *post.Post) *postPort.PostDTO {
	dto := hydrateBase(p)
	dto.Likers = likerIDs(p.Likers)
	return dto
}

func hydrateBase(p *post.Post) *postPort.PostDTO {
	dto := &postPort.PostDTO{
		ID:        p.ID.String(),
		Content:   p.Content,
		UserID:    p.UserID.String(),
		User:      authorDTO(p.User),
		Images:    imageDTOs(p.Images),
		Comments:  CommentDTOs(p.Comments),
		CreatedAt: formatTime(p.CreatedAt),
	}
	if p.IsRetweet() {
		rid := p.RetweetID.String()
		dto.RetweetID = &rid
		if p.Retweet != nil {
			dto.Retweet = hydrateOriginal(p.Retweet)
		} else {
			// original was deleted after the retweet was made
			dto.RetweetUnavailable = true
		}
	}
	return dto
}

func hydrateOriginal(p *post.Post) *postPort.OriginalDTO {
	return &postPort.OriginalDTO{
		ID:        p.ID.String(),
		Content:   p.Content,
		UserID:    p.UserID.String(),
		User:      authorDTO(p.User),
		Images:    imageDTOs(p.Images),
		Comments:  CommentDTOs(p.Comments),
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func authorDTO(u user.User) *postPort.AuthorDTO {
	return &postPort.AuthorDTO{ID: u.ID.String(), Nickname: u.Nickname}
}

func imageDTOs(images []post.Image) []postPort.ImageDTO {
	out := make([]postPort.ImageDTO, 0, len(images))
	for _, img := range images {
		out = append(out, postPort.ImageDTO{ID: img.ID.String(), Src: img.Src})
	}
	return out
}

func hashtagDTOs(tags []hashtag.Hashtag) []postPort.HashtagDTO {
	out := make([]postPort.HashtagDTO, 0, len(tags))
	for _, h := range tags {
		out = append(out, postPort.HashtagDTO{ID: h.ID.String(), Name: h.Name})
	}
	return out
}

// CommentDTOs keeps the order the comments were loaded in.
func CommentDTOs(comments []comment.Comment) []postPort.CommentDTO {
	out := make([]postPort.CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, *CommentDTO(&comments[i]))
	}
	return out
}

// CommentDTO exposes the comment with its author's id and nickname only.
func CommentDTO(c *comment.Comment) *postPort.CommentDTO {
	return &postPort.CommentDTO{
		ID:        c.ID.String(),
		Content:   c.Content,
		PostID:    c.PostID.String(),
		UserID:    c.UserID.String(),
		User:      authorDTO(c.User),
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func likerIDs(users []user.User) []postPort.LikerDTO {
	out := make([]postPort.LikerDTO, 0, len(users))
	for _, u := range users {
		out = append(out, postPort.LikerDTO{ID: u.ID.String()})
	}
	return out
}

func likerProfiles(users []user.User) []postPort.LikerDTO {
	out := make([]postPort.LikerDTO, 0, len(users))
	for _, u := range users {
		out = append(out, postPort.LikerDTO{ID: u.ID.String(), Nickname: u.Nickname})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
