package model

import (
	"time"

	"github.com/mdouchement/paperflow/pkg/libpf"
)

// A Paper is the locally cached copy of a portal paper.
type Paper struct {
	ID               string       `json:"uuid"              msgpack:"id"                storm:"id"`
	Title            string       `json:"title"             msgpack:"title"`
	Abstract         string       `json:"abstract"          msgpack:"abstract"`
	Keywords         string       `json:"keywords"          msgpack:"keywords"`
	Authors          string       `json:"authors"           msgpack:"authors"`
	Status           libpf.Status `json:"status"            msgpack:"status"            storm:"index"`
	Version          int          `json:"version"           msgpack:"version"`
	FileURL          string       `json:"file_url"          msgpack:"file_url"`
	AssignedReviewer string       `json:"assigned_reviewer" msgpack:"assigned_reviewer" storm:"index"`
	UploadedAt       time.Time    `json:"uploaded_at"       msgpack:"uploaded_at"       storm:"index"`
	CachedAt         time.Time    `json:"cached_at"         msgpack:"cached_at"         storm:"index"`
}

// PaperFromWire converts a portal paper into its cached form.
func PaperFromWire(p libpf.Paper) Paper {
	return Paper{
		ID:               p.ID,
		Title:            p.Title,
		Abstract:         p.Abstract,
		Keywords:         p.Keywords,
		Authors:          p.Authors,
		Status:           p.Status,
		Version:          p.Version,
		FileURL:          p.FileURL,
		AssignedReviewer: p.AssignedReviewer,
		UploadedAt:       p.UploadedTime(),
	}
}
