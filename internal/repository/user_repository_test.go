package repository

import (
    "context"
    "database/sql"
    "errors"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestUpdateAgencyCredentialsMissingAgency(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    // No row matches the id+role pair: the update must not read as success.
    mock.ExpectExec("UPDATE users SET username=").
        WillReturnResult(sqlmock.NewResult(0, 0))

    err = repo.UpdateAgencyCredentials(context.Background(), 404, "fresh_name", "secret99", bcrypt.MinCost)
    assert.ErrorIs(t, err, sql.ErrNoRows)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAgencyCredentialsSuccess(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    mock.ExpectExec("UPDATE users SET username=").
        WillReturnResult(sqlmock.NewResult(0, 1))

    err = repo.UpdateAgencyCredentials(context.Background(), 7, "metro_media", "secret99", bcrypt.MinCost)
    assert.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAgencyCredentialsDuplicateUsername(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewUserRepo(db)

    mock.ExpectExec("UPDATE users SET username=").
        WillReturnError(errors.New("Error 1062: Duplicate entry 'metro_media' for key 'users.uq_users_username'"))

    err = repo.UpdateAgencyCredentials(context.Background(), 7, "metro_media", "secret99", bcrypt.MinCost)
    assert.ErrorIs(t, err, ErrUsernameExists)
    assert.NoError(t, mock.ExpectationsWereMet())
}
