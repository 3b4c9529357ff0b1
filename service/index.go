package service

import (
	"context"
	"fmt"

	"apartment_rent/repository"
	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/go-playground/validator"
)

var entityValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(orderStructLevelValidation, types.Order{})
	return v
}

// an apartment is only assigned to an order together with the manager's answer
func orderStructLevelValidation(sl validator.StructLevel) {
	order := sl.Current().Interface().(types.Order)
	if order.ApartmentId != nil && order.ManagerResponse == "" {
		sl.ReportError(order.ManagerResponse, "ManagerResponse", "ManagerResponse", "required_with", "ApartmentId")
	}
}

func validate(entity any) error {
	if err := entityValidator.Struct(entity); err != nil {
		return fmt.Errorf("%w: %v", errDefs.ErrBadRequest, err)
	}
	return nil
}

// inTransaction runs fn as one unit of work when only the error matters.
func inTransaction(ctx context.Context, repo *repository.Repo, fn func(ctx context.Context, tx repository.Executor) error) error {
	_, err := repository.Run(ctx, repo.Tx, func(ctx context.Context, tx repository.Executor) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}

func notFound(what string, id int64) error {
	return fmt.Errorf("%w: %s with id %d", errDefs.ErrNotFound, what, id)
}

// stored turns a false insert or update result into an error.
func stored(ok bool, err error, what string, id int64) error {
	if err != nil {
		return err
	}
	if !ok {
		return notFound(what, id)
	}
	return nil
}
