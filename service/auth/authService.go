package authsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Aniyone/case-4-bookstore/model"
	userrepo "github.com/Aniyone/case-4-bookstore/repository/user"
	"github.com/Aniyone/case-4-bookstore/util/hash"
	jwtutil "github.com/Aniyone/case-4-bookstore/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput      ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func wrap(c ErrCode, msg string) error {
	return fmt.Errorf("%s: %w", msg, makeErr(c))
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Account, error)
	Login(ctx context.Context, req model.LoginReq) (*model.Account, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service {
	return &service{ur: ur, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Account, error) {
	username := strings.TrimSpace(req.Username)
	// rune count, to agree with the validator's min=2,max=20
	if n := utf8.RuneCountInString(username); n < 2 || n > 20 || req.Password == "" {
		return nil, makeErr(ErrBadInput)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.Account{
		Username:     username,
		PasswordHash: hashed,
		IsAdmin:      false,
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "accounts_username") || strings.Contains(msg, "username") {
			return makeErr(ErrUsernameTaken)
		}
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.Account, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}

	u, err := s.ur.ByUsername(ctx, username)
	if err != nil || u == nil {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}

	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	token, err := jwtutil.Issue(s.secret, u.ID, role, 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
