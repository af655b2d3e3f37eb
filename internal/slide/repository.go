package slide

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("slide not found")

type Repository interface {
	List() []Slide
	Create(s Slide) (Slide, error)
	Update(id int, s Slide) (Slide, error)
	Delete(id int) error
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	slides map[int]Slide
	nextID int
}

func NewInMemoryRepository(seed []Slide) *InMemoryRepository {
	r := &InMemoryRepository{slides: make(map[int]Slide), nextID: 1}
	for _, s := range seed {
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
		r.slides[s.ID] = s
	}
	return r
}

func (r *InMemoryRepository) List() []Slide {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Slide, 0, len(r.slides))
	for _, s := range r.slides {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *InMemoryRepository) Create(s Slide) (Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.nextID
	r.nextID++
	r.slides[s.ID] = s
	return s, nil
}

func (r *InMemoryRepository) Update(id int, s Slide) (Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slides[id]; !ok {
		return Slide{}, ErrNotFound
	}
	s.ID = id
	r.slides[id] = s
	return s, nil
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slides[id]; !ok {
		return ErrNotFound
	}
	delete(r.slides, id)
	return nil
}
