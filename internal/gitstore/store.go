package gitstore

import (
	"io"

	"github.com/inkwell/inkwell/internal/content"
)

// ContentStore wraps a content.Store and auto-commits every successful
// mutation. Reads pass straight through.
type ContentStore struct {
	*content.Store
	committer *Committer
}

// NewContentStore wraps store. committer may be nil, in which case writes
// behave exactly like the plain store.
func NewContentStore(store *content.Store, committer *Committer) *ContentStore {
	return &ContentStore{Store: store, committer: committer}
}

func (s *ContentStore) WritePost(filename string, data []byte) error {
	if err := s.Store.WritePost(filename, data); err != nil {
		return err
	}
	s.committer.CommitQuietly("Update " + filename)
	return nil
}

func (s *ContentStore) DeletePost(filename string) error {
	if err := s.Store.DeletePost(filename); err != nil {
		return err
	}
	s.committer.CommitQuietly("Delete " + filename)
	return nil
}

func (s *ContentStore) CreatePost(title string) (string, error) {
	filename, err := s.Store.CreatePost(title)
	if err != nil {
		return "", err
	}
	s.committer.CommitQuietly("Create " + filename)
	return filename, nil
}

func (s *ContentStore) SaveImage(slug, filename string, r io.Reader, maxWidth int) (string, error) {
	saved, err := s.Store.SaveImage(slug, filename, r, maxWidth)
	if err != nil {
		return "", err
	}
	s.committer.CommitQuietly("Add image " + slug + "/" + saved)
	return saved, nil
}

func (s *ContentStore) DeleteImage(slug, filename string) error {
	if err := s.Store.DeleteImage(slug, filename); err != nil {
		return err
	}
	s.committer.CommitQuietly("Delete image " + slug + "/" + filename)
	return nil
}
