package product

import "time"

// Service provides business logic for the product catalog.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List(false)
}

// ListAll includes archived products; used by the admin grid.
func (s *Service) ListAll() []Product {
	return s.repo.List(true)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	now := nowRFC3339()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	p.UpdatedAt = nowRFC3339()
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) SetArchived(id int, archived bool) error {
	return s.repo.SetArchived(id, archived)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
