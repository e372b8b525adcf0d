package usecase

import (
	"context"
	"errors"
	"strings"

	"careerpath/internal/domain/store"
	"careerpath/internal/domain/user"
)

type UserUsecase interface {
	GetUser(ctx context.Context, userID string) (store.Row, error)
	ProfessionResults(ctx context.Context, userID string) ([]store.Row, error)
	Progress(ctx context.Context, userID string) ([]store.Row, error)
	UpdateNickname(ctx context.Context, userID, nickname string) (store.Row, error)
}

type User struct {
	tables store.Tables
}

func NewUserUsecase(tables store.Tables) *User {
	return &User{tables: tables}
}

func (u *User) GetUser(ctx context.Context, userID string) (store.Row, error) {
	q := store.Query{Table: user.TableUsers}.Where(store.Eq(user.ColID, userID))
	row, err := store.SelectOne(ctx, u.tables, q)
	if errors.Is(err, store.ErrNoRows) {
		return nil, notFound("User not found", err)
	}
	return row, err
}

func (u *User) ProfessionResults(ctx context.Context, userID string) ([]store.Row, error) {
	return u.listByUser(ctx, user.TableProfessionResults, userID)
}

func (u *User) Progress(ctx context.Context, userID string) ([]store.Row, error) {
	return u.listByUser(ctx, user.TableProgress, userID)
}

func (u *User) UpdateNickname(ctx context.Context, userID, nickname string) (store.Row, error) {
	if strings.TrimSpace(nickname) == "" {
		return nil, invalidInput("Nickname is required")
	}

	rows, err := u.tables.Update(ctx, user.TableUsers,
		[]store.Filter{store.Eq(user.ColID, userID)},
		store.Row{user.ColNickname: nickname},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("User not found", store.ErrNoRows)
	}
	return rows[0], nil
}

func (u *User) listByUser(ctx context.Context, table, userID string) ([]store.Row, error) {
	rows, err := u.tables.Select(ctx, store.Query{Table: table}.Where(store.Eq(user.ColUserID, userID)))
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []store.Row{}
	}
	return rows, nil
}
