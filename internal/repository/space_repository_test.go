package repository

import (
    "context"
    "database/sql"
    "testing"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestSpaceUpdateMissingSpace(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewSpaceRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM spaces").
        WillReturnError(sql.ErrNoRows)

    title := "Highway Hoarding"
    err = repo.Update(context.Background(), 99, 0, SpaceUpdate{Title: &title})
    assert.ErrorIs(t, err, sql.ErrNoRows)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceUpdateWrongOwner(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewSpaceRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM spaces").
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(5))

    title := "Highway Hoarding"
    err = repo.Update(context.Background(), 12, 8, SpaceUpdate{Title: &title})
    assert.ErrorIs(t, err, ErrForbidden)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceUpdateAdminBypassesOwnership(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewSpaceRepo(db)

    // ownerID 0 still checks existence but skips the ownership compare.
    mock.ExpectQuery("SELECT owner_id FROM spaces").
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(5))
    mock.ExpectExec("UPDATE spaces SET title=").
        WillReturnResult(sqlmock.NewResult(0, 1))

    title := "Highway Hoarding"
    err = repo.Update(context.Background(), 12, 0, SpaceUpdate{Title: &title})
    assert.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpaceUpdateNoFieldsIsNoop(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewSpaceRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM spaces").
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(5))

    err = repo.Update(context.Background(), 12, 5, SpaceUpdate{})
    assert.NoError(t, err)
    assert.NoError(t, mock.ExpectationsWereMet())
}
