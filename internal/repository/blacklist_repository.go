package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

type BlacklistRepositoryInterface interface {
	Add(e *model.BlacklistEntry) error
	Match(name, phone, website string) (bool, error)
	Remove(id int) error
	ListEntries() ([]model.BlacklistEntry, error)
}

type BlacklistRepository struct {
	DB *sql.DB
}

// normalizePhone keeps digits only so "555-1212" and "5551212" compare equal.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeWebsite(site string) string {
	s := strings.ToLower(strings.TrimSpace(site))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

func (r *BlacklistRepository) Add(e *model.BlacklistEntry) error {
	e.CreatedAt = time.Now()
	query := `
        INSERT INTO blacklist_entries (name, name_key, phone, phone_key, website, website_key, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		e.Name, strings.ToLower(strings.TrimSpace(e.Name)),
		e.Phone, normalizePhone(e.Phone),
		e.Website, normalizeWebsite(e.Website),
		e.Reason, e.CreatedAt,
	).Scan(&e.ID)
}

// Match checks the composite key: a hit on the normalized phone, website
// or name is enough. Name casing alone never defeats the lookup.
func (r *BlacklistRepository) Match(name, phone, website string) (bool, error) {
	query := `
        SELECT COUNT(*)
        FROM blacklist_entries
        WHERE (phone_key <> '' AND phone_key = $1)
           OR (website_key <> '' AND website_key = $2)
           OR (name_key <> '' AND name_key = $3)
    `
	var count int
	err := r.DB.QueryRow(query,
		normalizePhone(phone),
		normalizeWebsite(website),
		strings.ToLower(strings.TrimSpace(name)),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove revives a dismissed entity so later sourcing can surface it again.
func (r *BlacklistRepository) Remove(id int) error {
	_, err := r.DB.Exec(`DELETE FROM blacklist_entries WHERE id=$1`, id)
	return err
}

func (r *BlacklistRepository) ListEntries() ([]model.BlacklistEntry, error) {
	query := `SELECT id, name, phone, website, reason, created_at FROM blacklist_entries ORDER BY id DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.BlacklistEntry{}
	for rows.Next() {
		var e model.BlacklistEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Website, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

var _ BlacklistRepositoryInterface = (*BlacklistRepository)(nil)
