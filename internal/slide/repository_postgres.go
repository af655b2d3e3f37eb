package slide

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listSlidesQuery = `
		SELECT slide_id, url, alt, display_order
		FROM slides
		ORDER BY display_order, slide_id
	`
	insertSlideQuery = `
		INSERT INTO slides (url, alt, display_order)
		VALUES ($1, $2, $3)
		RETURNING slide_id
	`
	updateSlideQuery = `UPDATE slides SET url = $1, alt = $2, display_order = $3 WHERE slide_id = $4`
	deleteSlideQuery = `DELETE FROM slides WHERE slide_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Slide {
	rows, err := r.db.Query(listSlidesQuery)
	if err != nil {
		return []Slide{}
	}
	defer rows.Close()

	slides := make([]Slide, 0)
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			continue
		}
		slides = append(slides, s)
	}
	return slides
}

func (r *PostgresRepository) Create(s Slide) (Slide, error) {
	err := r.db.QueryRow(insertSlideQuery, s.URL, s.Alt, s.DisplayOrder).Scan(&s.ID)
	if err != nil {
		return Slide{}, err
	}
	return s, nil
}

func (r *PostgresRepository) Update(id int, s Slide) (Slide, error) {
	res, err := r.db.Exec(updateSlideQuery, s.URL, s.Alt, s.DisplayOrder, id)
	if err != nil {
		return Slide{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Slide{}, err
	}
	if affected == 0 {
		return Slide{}, ErrNotFound
	}
	s.ID = id
	return s, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteSlideQuery, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSlide(row rowScanner) (Slide, error) {
	var s Slide
	if err := row.Scan(&s.ID, &s.URL, &s.Alt, &s.DisplayOrder); err != nil {
		return Slide{}, err
	}
	return s, nil
}
