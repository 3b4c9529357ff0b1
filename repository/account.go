package repository

import (
	"context"
	"database/sql"

	"apartment_rent/types"
	"apartment_rent/utils/querybuilder"

	"github.com/sirupsen/logrus"
)

const (
	AccountLogin     = "login"
	AccountPassword  = "password"
	AccountFirstName = "first_name"
	AccountLastName  = "last_name"
	AccountRole      = "role"
)

func bindAccount(a *types.Account) []any {
	return []any{a.Login, a.Password, a.FirstName, a.LastName, string(a.Role), a.State}
}

var accountMapping = Mapping[types.Account]{
	Table:      "account",
	IDColumn:   EntityId,
	Columns:    []string{AccountLogin, AccountPassword, AccountFirstName, AccountLastName, AccountRole, EntityState},
	BindInsert: bindAccount,
	BindUpdate: func(a *types.Account) []any {
		return append(bindAccount(a), a.Id)
	},
	Extract: func(row Scanner) (*types.Account, error) {
		a := new(types.Account)
		var role sql.NullString
		if err := row.Scan(&a.Id, &a.Login, &a.Password, &a.FirstName, &a.LastName, &role, &a.State); err != nil {
			return nil, err
		}
		a.Role = types.Role(role.String)
		return a, nil
	},
	ApplyGeneratedKey: func(id int64, a *types.Account) {
		a.Id = id
	},
}

type AccountDAO struct {
	*Engine[types.Account]
}

func NewAccountDAO(dialect querybuilder.Dialect, log logrus.FieldLogger, metrics *Metrics) *AccountDAO {
	return &AccountDAO{Engine: NewEngine(accountMapping, dialect, log, metrics)}
}

func (d *AccountDAO) GetByLogin(ctx context.Context, ex Executor, login string) (*types.Account, error) {
	return d.GetByField(ctx, ex, AccountLogin, login)
}
