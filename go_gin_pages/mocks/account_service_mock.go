package mocks

import (
	"context"

	"apartment_rent/types"
)

type AccountServiceMock struct {
	CreateAccountFn      func(*types.AccountPostData) (*types.Account, error)
	FindAccountByLoginFn func(string) (*types.Account, error)
	ConfirmCredentialsFn func(login, password string) (*types.Account, error)
}

func (m *AccountServiceMock) CreateAccount(_ context.Context, obj *types.AccountPostData) (*types.Account, error) {
	return m.CreateAccountFn(obj)
}

func (m *AccountServiceMock) FindAccountByLogin(_ context.Context, login string) (*types.Account, error) {
	return m.FindAccountByLoginFn(login)
}

func (m *AccountServiceMock) ConfirmCredentials(_ context.Context, login, password string) (*types.Account, error) {
	return m.ConfirmCredentialsFn(login, password)
}

type TokenIssuerMock struct {
	IssueFn func(*types.Account) (string, error)
}

func (m *TokenIssuerMock) Issue(account *types.Account) (string, error) {
	return m.IssueFn(account)
}
