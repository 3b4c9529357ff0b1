package service

import (
	"context"
	"fmt"
	"strings"

	"apartment_rent/repository"
	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"golang.org/x/crypto/bcrypt"
)

type AccountService struct {
	Repo *repository.Repo
}

func validateCredential(cred string, credName string) (err error) {
	if strings.ContainsAny(cred, "\r\n\x00") {
		return fmt.Errorf("%w: credential %v contains invalid newline characters", errDefs.ErrBadRequest, credName)
	}
	if cred != strings.Trim(cred, " \t\u00A0\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007") {
		return fmt.Errorf("%w: credential %v must not start or end with a space or tab", errDefs.ErrBadRequest, credName)
	}
	return
}

func hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedBytes), err
}

func (s *AccountService) CreateAccount(ctx context.Context, obj *types.AccountPostData) (*types.Account, error) {
	if err := validateCredential(obj.Login, "Login"); err != nil {
		return nil, err
	}
	if err := validateCredential(obj.Password, "Password"); err != nil {
		return nil, err
	}
	if obj.Password != obj.SamePassword {
		return nil, fmt.Errorf("%w: field `Password` differs from field `SamePassword`", errDefs.ErrBadRequest)
	}
	hash, err := hashPassword(obj.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDefs.ErrInternalServerError, err)
	}
	account := &types.Account{
		Login:     obj.Login,
		Password:  hash,
		FirstName: obj.FirstName,
		LastName:  obj.LastName,
		Role:      types.UserRole,
		State:     true,
	}
	if err = validate(account); err != nil {
		return nil, err
	}

	err = inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		existing, err := s.Repo.Accounts.GetByLogin(ctx, tx, account.Login)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w; account with login %s", errDefs.ErrDoesExist, account.Login)
		}
		ok, err := s.Repo.Accounts.Insert(ctx, tx, account)
		if err == nil && !ok {
			err = fmt.Errorf("%w: account %s was not stored", errDefs.ErrInternalServerError, account.Login)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) IsAccountExist(ctx context.Context, id int64) (bool, error) {
	account, err := repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Account, error) {
		return s.Repo.Accounts.Get(ctx, tx, id)
	})
	return account != nil && account.Id == id, err
}

func (s *AccountService) FindAccountByField(ctx context.Context, field string, value any) (*types.Account, error) {
	account, err := repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Account, error) {
		return s.Repo.Accounts.GetByField(ctx, tx, field, value)
	})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account with %s %v", errDefs.ErrNotFound, field, value)
	}
	return account, nil
}

func (s *AccountService) FindAccountByLogin(ctx context.Context, login string) (*types.Account, error) {
	return s.FindAccountByField(ctx, repository.AccountLogin, login)
}

// ConfirmCredentials returns the active account the login and password belong to.
func (s *AccountService) ConfirmCredentials(ctx context.Context, login string, password string) (*types.Account, error) {
	account, err := repository.Run(ctx, s.Repo.Tx, func(ctx context.Context, tx repository.Executor) (*types.Account, error) {
		return s.Repo.Accounts.GetByLogin(ctx, tx, login)
	})
	if err != nil {
		return nil, err
	}
	if account == nil || !account.State {
		return nil, fmt.Errorf("%w: unable to find user with given login", errDefs.ErrBadRequest)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: password does not match", errDefs.ErrBadRequest)
	}
	return account, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, account *types.Account) error {
	if err := validate(account); err != nil {
		return err
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Accounts.Update(ctx, tx, account)
		return stored(ok, err, "account", account.Id)
	})
}

// ChangePassword stores the bcrypt hash of password for the account with the given id.
// UpdateAccount writes Password as given, so new passwords go through here.
func (s *AccountService) ChangePassword(ctx context.Context, id int64, password string) error {
	if err := validateCredential(password, "Password"); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", errDefs.ErrInternalServerError, err)
	}
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		account, err := s.Repo.Accounts.Get(ctx, tx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: account %v", errDefs.ErrNotFound, id)
		}
		account.Password = hash
		ok, err := s.Repo.Accounts.Update(ctx, tx, account)
		return stored(ok, err, "account", id)
	})
}

func (s *AccountService) DeleteAccount(ctx context.Context, id int64) error {
	return inTransaction(ctx, s.Repo, func(ctx context.Context, tx repository.Executor) error {
		ok, err := s.Repo.Accounts.Delete(ctx, tx, id)
		return stored(ok, err, "account", id)
	})
}
