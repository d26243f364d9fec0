package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/brokerbridge-backend/internal/model"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"555-1212", "5551212"},
		{"(555) 12-12", "5551212"},
		{"+1 555 1212", "15551212"},
		{"", ""},
		{"no digits", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePhone(tt.in), "normalizePhone(%q)", tt.in)
	}
}

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://www.Acme.biz/", "acme.biz"},
		{"http://acme.biz", "acme.biz"},
		{"acme.biz", "acme.biz"},
		{" HTTPS://ACME.BIZ ", "acme.biz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeWebsite(tt.in), "normalizeWebsite(%q)", tt.in)
	}
}

func TestMatchQueriesNormalizedKeys(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM blacklist_entries").
		WithArgs("5551212", "acme.biz", "acme cleaning").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := &BlacklistRepository{DB: db}
	blocked, err := repo.Match("ACME Cleaning ", "(555) 1212", "https://www.acme.biz/")
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStoresRawAndKeyedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO blacklist_entries").
		WithArgs(
			"Acme Cleaning", "acme cleaning",
			"555-1212", "5551212",
			"https://acme.biz", "acme.biz",
			"dismissed during sourcing review", sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	repo := &BlacklistRepository{DB: db}
	entry := &model.BlacklistEntry{
		Name:    "Acme Cleaning",
		Phone:   "555-1212",
		Website: "https://acme.biz",
		Reason:  "dismissed during sourcing review",
	}
	require.NoError(t, repo.Add(entry))
	assert.Equal(t, 3, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
