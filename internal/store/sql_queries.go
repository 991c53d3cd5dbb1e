package store

import (
	"strings"

	"github.com/MKhiriev/go-contact-book/models"
	sq "github.com/Masterminds/squirrel"
)

const userColumns = `id, name, email, password_hash, refresh_token, email_confirmed, avatar, created_at`

const (
	createUser = `INSERT INTO users (name, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING ` + userColumns + `;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	saveUser = `UPDATE users
    SET name = $2, avatar = $3
    WHERE id = $1
    RETURNING ` + userColumns + `;`

	setRefreshToken = `UPDATE users
    SET refresh_token = $2
    WHERE id = $1;`

	// rotateRefreshToken compares and swaps in one statement, so of two
	// concurrent rotations with the same token only one can match.
	rotateRefreshToken = `UPDATE users
    SET refresh_token = $3
    WHERE id = $1 AND refresh_token = $2;`

	markEmailConfirmed = `UPDATE users
    SET email_confirmed = TRUE
    WHERE email = $1 AND email_confirmed = FALSE;`
)

const contactsTable = "contacts"

var contactColumns = []string{"id", "name", "soname", "email", "phone", "birthday", "info", "user_id"}

// returningContact is the RETURNING suffix of contact DML statements.
var returningContact = "RETURNING " + strings.Join(contactColumns, ", ")

// buildListContactsQuery selects the contacts of filter.UserID narrowed by the
// optional exact-match filters, ordered by id and paginated.
func buildListContactsQuery(filter models.ContactFilter) (string, []any, error) {
	q := psql.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"user_id": filter.UserID})

	if filter.Name != "" {
		q = q.Where(sq.Eq{"name": filter.Name})
	}
	if filter.Soname != "" {
		q = q.Where(sq.Eq{"soname": filter.Soname})
	}
	if filter.Email != "" {
		q = q.Where(sq.Eq{"email": filter.Email})
	}

	q = q.OrderBy("id").Offset(filter.Skip)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q.ToSql()
}

func buildListAllContactsQuery(userID int64) (string, []any, error) {
	return psql.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
}

func buildGetContactQuery(userID, contactID int64) (string, []any, error) {
	return psql.Select(contactColumns...).
		From(contactsTable).
		Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildCreateContactQuery(c models.Contact) (string, []any, error) {
	return psql.Insert(contactsTable).
		Columns("name", "soname", "email", "phone", "birthday", "info", "user_id").
		Values(c.Name, c.Soname, c.Email, c.Phone, c.Birthday.Time, c.Info, c.UserID).
		Suffix(returningContact).
		ToSql()
}

func buildUpdateContactQuery(c models.Contact) (string, []any, error) {
	return psql.Update(contactsTable).
		Set("name", c.Name).
		Set("soname", c.Soname).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("birthday", c.Birthday.Time).
		Set("info", c.Info).
		Where(sq.Eq{"id": c.ID}).
		Where(sq.Eq{"user_id": c.UserID}).
		Suffix(returningContact).
		ToSql()
}

func buildDeleteContactQuery(userID, contactID int64) (string, []any, error) {
	return psql.Delete(contactsTable).
		Where(sq.Eq{"id": contactID}).
		Where(sq.Eq{"user_id": userID}).
		Suffix(returningContact).
		ToSql()
}
