package diaries

import (
	"fmt"

	"github.com/wesleyorama2/diaries/internal/http"
)

// Diary is a diary as returned by the service.
type Diary struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Diaries is the list returned by GetAll.
type Diaries []Diary

// Contains reports whether a diary with the given id is in the list.
func (d Diaries) Contains(id string) bool {
	_, ok := d.Find(id)
	return ok
}

// Find returns the diary with the given id.
func (d Diaries) Find(id string) (Diary, bool) {
	for _, diary := range d {
		if diary.ID == id {
			return diary, true
		}
	}
	return Diary{}, false
}

// IDs returns the id of every diary in order.
func (d Diaries) IDs() []string {
	ids := make([]string, 0, len(d))
	for _, diary := range d {
		ids = append(ids, diary.ID)
	}
	return ids
}

// DecodeDiary decodes a single diary payload. A response without a JSON
// payload yields the response's *http.MissingBodyError.
func DecodeDiary(resp *http.Response) (Diary, error) {
	var diary Diary
	if err := resp.DecodeBody(&diary); err != nil {
		return Diary{}, fmt.Errorf("decode diary: %w", err)
	}
	return diary, nil
}

// DecodeDiaries decodes a list payload.
func DecodeDiaries(resp *http.Response) (Diaries, error) {
	var list Diaries
	if err := resp.DecodeBody(&list); err != nil {
		return nil, fmt.Errorf("decode diaries: %w", err)
	}
	return list, nil
}
