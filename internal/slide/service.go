package slide

import "errors"

var ErrMissingURL = errors.New("slide url is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Slide {
	return s.repo.List()
}

func (s *Service) Create(sl Slide) (Slide, error) {
	if sl.URL == "" {
		return Slide{}, ErrMissingURL
	}
	return s.repo.Create(sl)
}

func (s *Service) Update(id int, sl Slide) (Slide, error) {
	if sl.URL == "" {
		return Slide{}, ErrMissingURL
	}
	return s.repo.Update(id, sl)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
